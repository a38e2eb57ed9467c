package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"litlog/internal/models"
	"litlog/internal/repositories"
	"litlog/pkg/rabbitmq"
)

// ErrForbidden is returned when the acting user is not allowed to mutate the
// target record.
var ErrForbidden = errors.New("forbidden")

// ReviewsPerPage is the fixed page size for every review listing.
const ReviewsPerPage = 5

// ReviewPage is one page of a review listing.
type ReviewPage struct {
	Items      []models.Review `json:"items"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
	Total      int64           `json:"total"`
	TotalPages int             `json:"total_pages"`
}

// ReviewInput carries the user-editable review fields.
type ReviewInput struct {
	Title   string
	Author  string
	Rating  int
	Content string
}

// ReviewService handles business logic for posting, editing, deleting and
// listing reviews, including the owner-only mutation policy.
type ReviewService struct {
	reviewRepo repositories.ReviewRepository
	mqClient   *rabbitmq.Client // nil disables review events
}

// NewReviewService creates a new ReviewService. mqClient may be nil.
func NewReviewService(reviewRepo repositories.ReviewRepository, mqClient *rabbitmq.Client) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		mqClient:   mqClient,
	}
}

// CreateReview stores a new review owned by userID, timestamped now.
func (s *ReviewService) CreateReview(userID uint, input ReviewInput) (*models.Review, error) {
	review := &models.Review{
		Title:      input.Title,
		Author:     input.Author,
		Rating:     input.Rating,
		Content:    input.Content,
		DatePosted: time.Now(),
		UserID:     userID,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	// Review events are best effort; a broker outage must not fail the post.
	if s.mqClient != nil {
		event := map[string]interface{}{
			"review_id": review.ID,
			"user_id":   review.UserID,
			"title":     review.Title,
			"rating":    review.Rating,
			"posted_at": review.DatePosted.Format(time.RFC3339),
		}
		if err := s.mqClient.PublishReviewCreated(event); err != nil {
			log.Printf("Failed to publish review created event for review %d: %v", review.ID, err)
		}
	}
	return review, nil
}

// GetReview retrieves a single review by id.
func (s *ReviewService) GetReview(id uint) (*models.Review, error) {
	return s.reviewRepo.GetByID(id)
}

// UpdateReview replaces the editable fields of a review. Only the owner may
// update; id, owner and timestamp are preserved.
func (s *ReviewService) UpdateReview(userID, reviewID uint, input ReviewInput) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, fmt.Errorf("update review %d: %w", reviewID, ErrForbidden)
	}
	review.Title = input.Title
	review.Author = input.Author
	review.Rating = input.Rating
	review.Content = input.Content
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview permanently removes a review. Only the owner may delete.
func (s *ReviewService) DeleteReview(userID, reviewID uint) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return err
	}
	if review.UserID != userID {
		return fmt.Errorf("delete review %d: %w", reviewID, ErrForbidden)
	}
	return s.reviewRepo.Delete(reviewID)
}

// ListReviews returns one page of all reviews, newest first.
func (s *ReviewService) ListReviews(page int) (*ReviewPage, error) {
	items, total, err := s.reviewRepo.ListAll(page, ReviewsPerPage)
	if err != nil {
		return nil, err
	}
	return newReviewPage(items, page, total), nil
}

// ListUserReviews returns one page of the reviews owned by userID.
func (s *ReviewService) ListUserReviews(userID uint, page int) (*ReviewPage, error) {
	items, total, err := s.reviewRepo.ListByUser(userID, page, ReviewsPerPage)
	if err != nil {
		return nil, err
	}
	return newReviewPage(items, page, total), nil
}

// ListReviewsByTitle returns one page of the reviews sharing an exact title.
func (s *ReviewService) ListReviewsByTitle(title string, page int) (*ReviewPage, error) {
	items, total, err := s.reviewRepo.ListByTitle(title, page, ReviewsPerPage)
	if err != nil {
		return nil, err
	}
	return newReviewPage(items, page, total), nil
}

func newReviewPage(items []models.Review, page int, total int64) *ReviewPage {
	if page < 1 {
		page = 1
	}
	if items == nil {
		items = []models.Review{}
	}
	return &ReviewPage{
		Items:      items,
		Page:       page,
		PerPage:    ReviewsPerPage,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(ReviewsPerPage))),
	}
}
