package handlers

import (
	"mesto/internal/middleware"
	"mesto/internal/models"
	"mesto/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user profiles.
type UserHandler struct {
	service  *services.UserService
	validate *requestValidator
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: newRequestValidator(),
	}
}

// RegisterRoutes registers the user routes. /users/me must precede /users/:userId.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Get("/me", h.HandleGetCurrentUser)
	userRoutes.Patch("/me", h.HandleUpdateProfile)
	userRoutes.Patch("/me/avatar", h.HandleUpdateAvatar)
	userRoutes.Get("/:userId", h.HandleGetUserByID)
}

// UserIDParams binds the :userId route parameter.
type UserIDParams struct {
	UserID string `params:"userId" validate:"required,uuid"`
}

// ProfileRequest represents the request body for a profile update.
type ProfileRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=30"`
	About string `json:"about" validate:"required,min=2,max=30"`
}

// AvatarRequest represents the request body for an avatar update.
type AvatarRequest struct {
	Avatar string `json:"avatar" validate:"required,http_url"`
}

// HandleGetUsers retrieves all users.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetAllUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// HandleGetCurrentUser retrieves the authenticated user.
func (h *UserHandler) HandleGetCurrentUser(c *fiber.Ctx) error {
	user, err := h.service.GetUserByID(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// HandleGetUserByID retrieves a single user by its ID.
func (h *UserHandler) HandleGetUserByID(c *fiber.Ctx) error {
	var params UserIDParams
	if err := h.validate.params(c, &params); err != nil {
		return err
	}
	user, err := h.service.GetUserByID(c.UserContext(), params.UserID)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// HandleUpdateProfile changes the name and about of the authenticated user.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req ProfileRequest
	if err := h.validate.body(c, &req); err != nil {
		return err
	}
	user, err := h.service.UpdateProfile(c.UserContext(), middleware.UserID(c), models.ProfilePatch{
		Name:  req.Name,
		About: req.About,
	})
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// HandleUpdateAvatar changes the avatar of the authenticated user.
func (h *UserHandler) HandleUpdateAvatar(c *fiber.Ctx) error {
	var req AvatarRequest
	if err := h.validate.body(c, &req); err != nil {
		return err
	}
	user, err := h.service.UpdateAvatar(c.UserContext(), middleware.UserID(c), models.AvatarPatch{
		Avatar: req.Avatar,
	})
	if err != nil {
		return err
	}
	return c.JSON(user)
}
