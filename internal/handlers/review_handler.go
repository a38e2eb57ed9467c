package handlers

import (
	"errors"
	"log"
	"net/url"
	"strconv"

	"litlog/internal/middleware"
	"litlog/internal/repositories"
	"litlog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ratingChoices mirrors the rating select on the review form. 0 is the
// placeholder and never a valid stored value.
var ratingChoices = []fiber.Map{
	{"value": 0, "label": "---"},
	{"value": 1, "label": "1-Hated it"},
	{"value": 2, "label": "2-It was okay"},
	{"value": 3, "label": "3-Liked it"},
	{"value": 4, "label": "4-Really liked it"},
	{"value": 5, "label": "5-LOVED IT"},
}

// ReviewHandler handles posting, viewing, editing, deleting and listing
// reviews.
type ReviewHandler struct {
	reviewService *services.ReviewService
	validate      *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validate:      validator.New(),
	}
}

// RegisterRoutes registers the review routes. Literal routes are registered
// before the /review/:key catch-all so they win the match.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router, loginRequired fiber.Handler) {
	router.Get("/", h.HandleHome)
	router.Post("/", h.HandleHome)
	router.Get("/home", h.HandleHome)
	router.Post("/home", h.HandleHome)
	router.Get("/review/new", loginRequired, h.HandleNewReviewForm)
	router.Post("/review/new", loginRequired, h.HandleCreateReview)
	router.Get("/review/:id/update", loginRequired, h.HandleEditReviewForm)
	router.Post("/review/:id/update", loginRequired, h.HandleUpdateReview)
	router.Post("/review/:id/delete", loginRequired, h.HandleDeleteReview)
	router.Get("/review/:key", h.HandleReviewOrTitle)
	router.Post("/review/:key", h.HandleReviewOrTitle)
}

// ReviewRequest is the payload for creating or updating a review.
type ReviewRequest struct {
	Title   string `json:"title" form:"title" validate:"required,max=100"`
	Author  string `json:"author" form:"author" validate:"required,max=100"`
	Rating  int    `json:"rating" form:"rating" validate:"required,min=1,max=5"`
	Content string `json:"content" form:"content" validate:"required"`
}

// HandleHome lists all reviews, newest first, five per page.
func (h *ReviewHandler) HandleHome(c *fiber.Ctx) error {
	page, err := h.reviewService.ListReviews(c.QueryInt("page", 1))
	if err != nil {
		log.Printf("Error listing reviews: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list reviews",
		})
	}
	return c.JSON(page)
}

// HandleNewReviewForm serves the review form endpoint.
func (h *ReviewHandler) HandleNewReviewForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"fields":         []string{"title", "author", "rating", "content"},
		"rating_choices": ratingChoices,
	})
}

// HandleCreateReview posts a new review owned by the current user.
func (h *ReviewHandler) HandleCreateReview(c *fiber.Ctx) error {
	input, ok := h.parseReviewRequest(c)
	if !ok {
		return nil
	}
	review, err := h.reviewService.CreateReview(middleware.CurrentUserID(c), input)
	if err != nil {
		if errors.Is(err, repositories.ErrRatingRange) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  fiber.Map{"rating": "Rating must be between 1 and 5"},
			})
		}
		log.Printf("Error creating review: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create review",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Review added",
		"review":  review,
	})
}

// HandleReviewOrTitle resolves the /review/:key route: an all-digit key is a
// review id, anything else lists every review sharing that exact title.
func (h *ReviewHandler) HandleReviewOrTitle(c *fiber.Ctx) error {
	key, err := url.PathUnescape(c.Params("key"))
	if err != nil {
		key = c.Params("key")
	}

	if id, convErr := strconv.ParseUint(key, 10, 32); convErr == nil {
		review, err := h.reviewService.GetReview(uint(id))
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"message": "Review not found",
				})
			}
			log.Printf("Error getting review %d: %v", id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not get review",
			})
		}
		return c.JSON(review)
	}

	page, err := h.reviewService.ListReviewsByTitle(key, c.QueryInt("page", 1))
	if err != nil {
		log.Printf("Error listing reviews titled %q: %v", key, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list reviews",
		})
	}
	return c.JSON(page)
}

// HandleEditReviewForm returns the review's current fields as form defaults.
// Non-owners get a forbidden response, same as on submit.
func (h *ReviewHandler) HandleEditReviewForm(c *fiber.Ctx) error {
	id, ok := h.parseReviewID(c)
	if !ok {
		return nil
	}
	review, err := h.reviewService.GetReview(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Review not found",
			})
		}
		log.Printf("Error getting review %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not get review",
		})
	}
	if review.UserID != middleware.CurrentUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Forbidden",
		})
	}
	return c.JSON(fiber.Map{
		"review":         review,
		"rating_choices": ratingChoices,
	})
}

// HandleUpdateReview replaces the editable fields of the current user's
// review.
func (h *ReviewHandler) HandleUpdateReview(c *fiber.Ctx) error {
	id, ok := h.parseReviewID(c)
	if !ok {
		return nil
	}
	input, ok := h.parseReviewRequest(c)
	if !ok {
		return nil
	}
	review, err := h.reviewService.UpdateReview(middleware.CurrentUserID(c), id, input)
	if err != nil {
		return h.mutationError(c, err, "update")
	}
	return c.JSON(fiber.Map{
		"message": "Review has been updated",
		"review":  review,
	})
}

// HandleDeleteReview permanently deletes the current user's review.
func (h *ReviewHandler) HandleDeleteReview(c *fiber.Ctx) error {
	id, ok := h.parseReviewID(c)
	if !ok {
		return nil
	}
	if err := h.reviewService.DeleteReview(middleware.CurrentUserID(c), id); err != nil {
		return h.mutationError(c, err, "delete")
	}
	return c.JSON(fiber.Map{
		"message": "Review has been deleted",
	})
}

// parseReviewRequest parses and validates the body, writing the error
// response itself when the payload is bad.
func (h *ReviewHandler) parseReviewRequest(c *fiber.Ctx) (services.ReviewInput, bool) {
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return services.ReviewInput{}, false
	}
	if err := h.validate.Struct(req); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrors(err),
		})
		return services.ReviewInput{}, false
	}
	return services.ReviewInput{
		Title:   req.Title,
		Author:  req.Author,
		Rating:  req.Rating,
		Content: req.Content,
	}, true
}

func (h *ReviewHandler) parseReviewID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Review not found",
		})
		return 0, false
	}
	return uint(id), true
}

func (h *ReviewHandler) mutationError(c *fiber.Ctx, err error, op string) error {
	switch {
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Forbidden",
		})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Review not found",
		})
	case errors.Is(err, repositories.ErrRatingRange):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  fiber.Map{"rating": "Rating must be between 1 and 5"},
		})
	}
	log.Printf("Error on review %s: %v", op, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not " + op + " review",
	})
}
