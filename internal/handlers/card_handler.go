package handlers

import (
	"mesto/internal/middleware"
	"mesto/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CardHandler handles HTTP requests for cards.
type CardHandler struct {
	service  *services.CardService
	validate *requestValidator
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(service *services.CardService) *CardHandler {
	return &CardHandler{
		service:  service,
		validate: newRequestValidator(),
	}
}

// RegisterRoutes registers the card routes with the Fiber app.
func (h *CardHandler) RegisterRoutes(router fiber.Router) {
	cardRoutes := router.Group("/cards")
	cardRoutes.Get("/", h.HandleGetCards)
	cardRoutes.Post("/", h.HandleCreateCard)
	cardRoutes.Delete("/:cardId", h.HandleDeleteCard)
	cardRoutes.Put("/:cardId/likes", h.HandleLikeCard)
	cardRoutes.Delete("/:cardId/likes", h.HandleUnlikeCard)
}

// CardIDParams binds the :cardId route parameter.
type CardIDParams struct {
	CardID string `params:"cardId" validate:"required,uuid"`
}

// CardRequest represents the request body for card creation.
type CardRequest struct {
	Name string `json:"name" validate:"required,min=2,max=30"`
	Link string `json:"link" validate:"required,http_url"`
}

// HandleGetCards retrieves all cards.
func (h *CardHandler) HandleGetCards(c *fiber.Ctx) error {
	cards, err := h.service.GetAllCards(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(cards)
}

// HandleCreateCard creates a card owned by the authenticated user.
func (h *CardHandler) HandleCreateCard(c *fiber.Ctx) error {
	var req CardRequest
	if err := h.validate.body(c, &req); err != nil {
		return err
	}
	card, err := h.service.CreateCard(c.UserContext(), middleware.UserID(c), req.Name, req.Link)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(card)
}

// HandleDeleteCard deletes a card of the authenticated user.
func (h *CardHandler) HandleDeleteCard(c *fiber.Ctx) error {
	var params CardIDParams
	if err := h.validate.params(c, &params); err != nil {
		return err
	}
	if err := h.service.DeleteCard(c.UserContext(), params.CardID, middleware.UserID(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": services.MsgCardDeleted})
}

// HandleLikeCard adds the authenticated user to the card's likes.
func (h *CardHandler) HandleLikeCard(c *fiber.Ctx) error {
	var params CardIDParams
	if err := h.validate.params(c, &params); err != nil {
		return err
	}
	card, err := h.service.LikeCard(c.UserContext(), params.CardID, middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(card)
}

// HandleUnlikeCard removes the authenticated user from the card's likes.
func (h *CardHandler) HandleUnlikeCard(c *fiber.Ctx) error {
	var params CardIDParams
	if err := h.validate.params(c, &params); err != nil {
		return err
	}
	card, err := h.service.UnlikeCard(c.UserContext(), params.CardID, middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(card)
}
