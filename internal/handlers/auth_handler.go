package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"litlog/internal/middleware"
	"litlog/internal/models"
	"litlog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/register", h.HandleRegisterForm)
	router.Post("/register", h.HandleRegister)
	router.Get("/login", h.HandleLoginForm)
	router.Post("/login", h.HandleLogin)
	router.Get("/logout", h.HandleLogout)
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username        string `json:"username" form:"username" validate:"required,min=2,max=20"`
	FirstName       string `json:"first_name" form:"first_name" validate:"required,max=35"`
	LastName        string `json:"last_name" form:"last_name" validate:"required,max=35"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"required,eqfield=Password"`
}

// HandleRegisterForm serves the registration form endpoint. Logged-in users
// are sent home, as on the original site.
func (h *AuthHandler) HandleRegisterForm(c *fiber.Ctx) error {
	if h.isAuthenticated(c) {
		return c.Redirect("/home")
	}
	return c.JSON(fiber.Map{
		"fields": []string{"username", "first_name", "last_name", "email", "password", "confirm_password"},
	})
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
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

	user := models.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}
	if err := h.authService.RegisterUser(&user); err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Registration failed",
				"errors":  fiber.Map{"username": "Username already exists"},
			})
		case errors.Is(err, services.ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Registration failed",
				"errors":  fiber.Map{"email": "Email already exists"},
			})
		}
		log.Printf("Error registering user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not register user",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("profile created for %s", user.Username),
		"user":    user,
	})
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
	Remember bool   `json:"remember" form:"remember"`
}

// HandleLoginForm serves the login form endpoint, sending logged-in users
// home.
func (h *AuthHandler) HandleLoginForm(c *fiber.Ctx) error {
	if h.isAuthenticated(c) {
		return c.Redirect("/home")
	}
	return c.JSON(fiber.Map{
		"fields": []string{"username", "password", "remember"},
	})
}

// HandleLogin authenticates the user, sets the session cookie and redirects
// to the page the user was headed to, or home.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
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

	token, _, err := h.authService.LoginUser(req.Username, req.Password, req.Remember)
	if err != nil {
		// One message for every failure mode; do not leak which part was wrong.
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Login unsuccessful. Please check username and password",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(h.authService.SessionTTL(req.Remember)),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	next := c.Query("next")
	if !strings.HasPrefix(next, "/") {
		next = "/home"
	}
	return c.Redirect(next)
}

// HandleLogout clears the session cookie and redirects home.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.Redirect("/")
}

func (h *AuthHandler) isAuthenticated(c *fiber.Ctx) bool {
	token := middleware.TokenFromRequest(c)
	if token == "" {
		return false
	}
	_, err := h.authService.ValidateToken(token)
	return err == nil
}
