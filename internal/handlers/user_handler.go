package handlers

import (
	"errors"
	"log"

	"litlog/internal/middleware"
	"litlog/internal/repositories"
	"litlog/internal/services"
	"litlog/pkg/imagestore"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles profile pages, profile updates, account deletion and
// per-user review listings.
type UserHandler struct {
	userService   *services.UserService
	reviewService *services.ReviewService
	validate      *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, reviewService *services.ReviewService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		reviewService: reviewService,
		validate:      validator.New(),
	}
}

// RegisterRoutes registers the user routes.
func (h *UserHandler) RegisterRoutes(router fiber.Router, loginRequired fiber.Handler) {
	router.Get("/profile", loginRequired, h.HandleProfile)
	router.Post("/profile", loginRequired, h.HandleUpdateProfile)
	router.Post("/profile/:username/delete", loginRequired, h.HandleDeleteAccount)
	router.Get("/user/:username", h.HandleUserReviews)
}

// ProfileRequest is the profile update payload. Empty fields keep their
// current values.
type ProfileRequest struct {
	Username string `json:"username" form:"username" validate:"omitempty,min=2,max=20"`
	Email    string `json:"email" form:"email" validate:"omitempty,email"`
}

// HandleProfile returns the current user together with one page of their
// reviews; username and email double as the update form defaults.
func (h *UserHandler) HandleProfile(c *fiber.Ctx) error {
	user, err := h.userService.GetUser(middleware.CurrentUserID(c))
	if err != nil {
		log.Printf("Error loading profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load profile",
		})
	}
	reviews, err := h.reviewService.ListUserReviews(user.ID, c.QueryInt("page", 1))
	if err != nil {
		log.Printf("Error listing profile reviews: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list reviews",
		})
	}
	return c.JSON(fiber.Map{
		"user":    user,
		"reviews": reviews,
	})
}

// HandleUpdateProfile updates username/email and ingests a new profile
// picture when one was uploaded.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrors(err),
		})
	}

	update := services.ProfileUpdate{
		Username: req.Username,
		Email:    req.Email,
	}
	// The picture part is optional; FormFile errors when it is absent.
	if picture, err := c.FormFile("picture"); err == nil {
		update.Picture = picture
	}

	user, err := h.userService.UpdateProfile(middleware.CurrentUserID(c), update)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Update failed",
				"errors":  fiber.Map{"username": "Username already exists"},
			})
		case errors.Is(err, services.ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Update failed",
				"errors":  fiber.Map{"email": "Email already exists"},
			})
		case errors.Is(err, imagestore.ErrUnsupportedFormat):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Update failed",
				"errors":  fiber.Map{"picture": "Only jpg and png images are allowed"},
			})
		}
		log.Printf("Error updating profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update profile",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Profile updated",
		"user":    user,
	})
}

// HandleDeleteAccount deletes the account named in the path and everything it
// owns. Users may only delete themselves.
func (h *UserHandler) HandleDeleteAccount(c *fiber.Ctx) error {
	err := h.userService.DeleteAccount(middleware.CurrentUserID(c), c.Params("username"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Forbidden",
			})
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		log.Printf("Error deleting account: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete account",
		})
	}
	return c.JSON(fiber.Map{
		"message": "User has been deleted",
	})
}

// HandleUserReviews lists one page of a user's reviews, newest first.
func (h *UserHandler) HandleUserReviews(c *fiber.Ctx) error {
	user, err := h.userService.GetUserByUsername(c.Params("username"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		log.Printf("Error loading user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load user",
		})
	}
	reviews, err := h.reviewService.ListUserReviews(user.ID, c.QueryInt("page", 1))
	if err != nil {
		log.Printf("Error listing user reviews: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list reviews",
		})
	}
	return c.JSON(fiber.Map{
		"user":    user,
		"reviews": reviews,
	})
}
