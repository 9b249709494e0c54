// Card HTTP handlers.
//
//   - GET    /cards                  (list)
//   - POST   /cards                  (create)
//   - DELETE /cards/{cardId}         (owner only)
//   - PUT    /cards/{cardId}/likes   (like)
//   - DELETE /cards/{cardId}/likes   (dislike)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-cards-backend/internal/domain"
	"github.com/tbourn/go-cards-backend/internal/services"
)

// CreateCardRequest is the JSON payload for creating a card.
type CreateCardRequest struct {
	Name string `json:"name" example:"Lake Baikal"`
	Link string `json:"link" example:"https://example.com/baikal.jpg"`
}

// ListCardsResponse wraps all cards, newest first.
type ListCardsResponse struct {
	Cards []domain.Card `json:"cards"`
}

// DeleteCardResponse carries the card as it was before deletion.
type DeleteCardResponse struct {
	Data *domain.Card `json:"data"`
}

// ListCards godoc
// @ID          listCards
// @Summary     List cards
// @Tags        Cards
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.ListCardsResponse
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /cards [get]
func (h *Handlers) ListCards(c *gin.Context) {
	cards, err := h.cardSvc.ListCards(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListCardsResponse{Cards: cards})
}

// CreateCard godoc
// @ID          createCard
// @Summary     Create a card owned by the current user
// @Tags        Cards
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body      handlers.CreateCardRequest  true  "Card"
// @Success     201   {object}  domain.Card
// @Failure     400   {object}  handlers.ErrorResponse
// @Router      /cards [post]
func (h *Handlers) CreateCard(c *gin.Context) {
	var req CreateCardRequest
	if !bindJSON(c, &req, services.MsgCardCreateInvalid) {
		return
	}
	card, err := h.cardSvc.CreateCard(c.Request.Context(),
		services.CreateCardInput{Name: req.Name, Link: req.Link}, actingID(c))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, card)
}

// DeleteCard godoc
// @ID          deleteCard
// @Summary     Delete one of the current user's cards
// @Tags        Cards
// @Produce     json
// @Security    BearerAuth
// @Param       cardId  path      string  true  "Card ID (UUID)"  format(uuid)
// @Success     200     {object}  handlers.DeleteCardResponse
// @Failure     400     {object}  handlers.ErrorResponse  "Malformed id"
// @Failure     404     {object}  handlers.ErrorResponse  "Missing or not owned"
// @Router      /cards/{cardId} [delete]
func (h *Handlers) DeleteCard(c *gin.Context) {
	card, err := h.cardSvc.DeleteCard(c.Request.Context(), c.Param("cardId"), actingID(c))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, DeleteCardResponse{Data: card})
}

// LikeCard godoc
// @ID          likeCard
// @Summary     Like a card
// @Description Adds the current user to the card's likes. Repeating it changes nothing.
// @Tags        Cards
// @Produce     json
// @Security    BearerAuth
// @Param       cardId  path      string  true  "Card ID (UUID)"  format(uuid)
// @Success     200     {object}  domain.Card
// @Failure     400     {object}  handlers.ErrorResponse
// @Failure     404     {object}  handlers.ErrorResponse
// @Router      /cards/{cardId}/likes [put]
func (h *Handlers) LikeCard(c *gin.Context) {
	card, err := h.cardSvc.LikeCard(c.Request.Context(), c.Param("cardId"), actingID(c))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, card)
}

// DislikeCard godoc
// @ID          dislikeCard
// @Summary     Remove a like
// @Tags        Cards
// @Produce     json
// @Security    BearerAuth
// @Param       cardId  path      string  true  "Card ID (UUID)"  format(uuid)
// @Success     200     {object}  domain.Card
// @Failure     400     {object}  handlers.ErrorResponse
// @Failure     404     {object}  handlers.ErrorResponse
// @Router      /cards/{cardId}/likes [delete]
func (h *Handlers) DislikeCard(c *gin.Context) {
	card, err := h.cardSvc.DislikeCard(c.Request.Context(), c.Param("cardId"), actingID(c))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, card)
}
