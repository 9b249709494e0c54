// Auth HTTP handlers: POST /signup and POST /signin.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-cards-backend/internal/services"
)

// SigninRequest carries credentials.
type SigninRequest struct {
	Email    string `json:"email" example:"jacques@example.com"`
	Password string `json:"password" example:"s3cret"`
}

// TokenResponse carries a bearer token.
type TokenResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// Signup godoc
// @ID          signup
// @Summary     Register with email and password
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.CreateUserRequest  true  "Profile and credentials"
// @Success     201   {object}  domain.User
// @Failure     400   {object}  handlers.ErrorResponse
// @Failure     409   {object}  handlers.ErrorResponse
// @Router      /signup [post]
func (h *Handlers) Signup(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req, services.MsgUserCreateInvalid) {
		return
	}
	u, err := h.authSvc.Signup(c.Request.Context(), req.input())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, u)
}

// Signin godoc
// @ID          signin
// @Summary     Exchange credentials for a bearer token
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.SigninRequest  true  "Credentials"
// @Success     200   {object}  handlers.TokenResponse
// @Failure     400   {object}  handlers.ErrorResponse
// @Failure     401   {object}  handlers.ErrorResponse  "Incorrect email or password"
// @Router      /signin [post]
func (h *Handlers) Signin(c *gin.Context) {
	var req SigninRequest
	if !bindJSON(c, &req, services.MsgInvalidData) {
		return
	}
	tok, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, TokenResponse{Token: tok})
}
