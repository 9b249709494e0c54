// User HTTP handlers.
//
//   - GET    /users            (list)
//   - GET    /users/me         (acting user)
//   - GET    /users/{id}       (one profile)
//   - POST   /users            (create)
//   - PATCH  /users/me         (name/about)
//   - PATCH  /users/me/avatar  (avatar)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-cards-backend/internal/domain"
	"github.com/tbourn/go-cards-backend/internal/services"
)

// CreateUserRequest is the JSON payload for creating a user. Omitted profile
// fields take defaults.
type CreateUserRequest struct {
	Name     *string `json:"name" example:"Jacques-Yves Cousteau"`
	About    *string `json:"about" example:"Explorer"`
	Avatar   *string `json:"avatar" example:"https://pictures.s3.yandex.net/resources/jacques-cousteau_1604399756.png"`
	Email    string  `json:"email" example:"jacques@example.com"`
	Password string  `json:"password" example:"s3cret"`
}

func (r CreateUserRequest) input() services.CreateUserInput {
	return services.CreateUserInput{
		Name: r.Name, About: r.About, Avatar: r.Avatar,
		Email: r.Email, Password: r.Password,
	}
}

// UpdateProfileRequest carries the profile text fields. Omitted fields stay
// unchanged.
type UpdateProfileRequest struct {
	Name  *string `json:"name" example:"Jacques"`
	About *string `json:"about" example:"Oceanographer"`
}

// UpdateAvatarRequest carries the new avatar URL.
type UpdateAvatarRequest struct {
	Avatar *string `json:"avatar" example:"https://example.com/avatar.png"`
}

// ListUsersResponse wraps all profiles.
type ListUsersResponse struct {
	Users []domain.User `json:"users"`
}

// ListUsers godoc
// @ID          listUsers
// @Summary     List users
// @Tags        Users
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.ListUsersResponse
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.userSvc.ListUsers(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListUsersResponse{Users: users})
}

// GetSelf godoc
// @ID          getSelf
// @Summary     Current user's profile
// @Tags        Users
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  domain.User
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /users/me [get]
func (h *Handlers) GetSelf(c *gin.Context) {
	u, err := h.userSvc.GetSelf(c.Request.Context(), actingID(c))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}

// GetUser godoc
// @ID          getUser
// @Summary     Get a user by id
// @Tags        Users
// @Produce     json
// @Security    BearerAuth
// @Param       id   path      string  true  "User ID (UUID)"  format(uuid)
// @Success     200  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed id"
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /users/{id} [get]
func (h *Handlers) GetUser(c *gin.Context) {
	u, err := h.userSvc.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}

// CreateUser godoc
// @ID          createUser
// @Summary     Create a user
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.CreateUserRequest  true  "Profile"
// @Success     201   {object}  domain.User
// @Failure     400   {object}  handlers.ErrorResponse
// @Failure     409   {object}  handlers.ErrorResponse  "Email taken"
// @Router      /users [post]
func (h *Handlers) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req, services.MsgUserCreateInvalid) {
		return
	}
	u, err := h.userSvc.CreateUser(c.Request.Context(), req.input())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, u)
}

// UpdateProfile godoc
// @ID          updateProfile
// @Summary     Update name and/or about of the current user
// @Tags        Users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body      handlers.UpdateProfileRequest  true  "Fields to change"
// @Success     200   {object}  domain.User
// @Failure     400   {object}  handlers.ErrorResponse
// @Failure     404   {object}  handlers.ErrorResponse
// @Router      /users/me [patch]
func (h *Handlers) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if !bindJSON(c, &req, services.MsgUserUpdateInvalid) {
		return
	}
	u, err := h.userSvc.UpdateProfile(c.Request.Context(), actingID(c),
		services.ProfilePatch{Name: req.Name, About: req.About})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}

// UpdateAvatar godoc
// @ID          updateAvatar
// @Summary     Update the current user's avatar
// @Tags        Users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body      handlers.UpdateAvatarRequest  true  "Avatar URL"
// @Success     200   {object}  domain.User
// @Failure     400   {object}  handlers.ErrorResponse
// @Failure     404   {object}  handlers.ErrorResponse
// @Router      /users/me/avatar [patch]
func (h *Handlers) UpdateAvatar(c *gin.Context) {
	var req UpdateAvatarRequest
	if !bindJSON(c, &req, services.MsgAvatarUpdateInvalid) {
		return
	}
	avatar := ""
	if req.Avatar != nil {
		avatar = *req.Avatar
	}
	u, err := h.userSvc.UpdateAvatar(c.Request.Context(), actingID(c), avatar)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}
