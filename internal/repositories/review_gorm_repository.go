package repositories

import (
	"errors"
	"fmt"

	"litlog/internal/models"

	"gorm.io/gorm"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{db: db}
}

// Create persists a new review after checking the rating bounds.
func (r *GORMReviewRepository) Create(review *models.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return fmt.Errorf("create review: %w", ErrRatingRange)
	}
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// GetByID retrieves a single review by primary key.
func (r *GORMReviewRepository) GetByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("review %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get review by ID %d: %w", id, err)
	}
	return &review, nil
}

// Update saves all fields of an existing review after checking the rating
// bounds.
func (r *GORMReviewRepository) Update(review *models.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return fmt.Errorf("update review %d: %w", review.ID, ErrRatingRange)
	}
	res := r.db.Save(review)
	if res.Error != nil {
		return fmt.Errorf("failed to update review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("review %d for update: %w", review.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a review permanently.
func (r *GORMReviewRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Review{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete review %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("review %d for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// ListAll returns one page of all reviews, newest first.
func (r *GORMReviewRepository) ListAll(page, perPage int) ([]models.Review, int64, error) {
	return r.list(func(db *gorm.DB) *gorm.DB { return db }, page, perPage)
}

// ListByUser returns one page of the reviews owned by userID, newest first.
func (r *GORMReviewRepository) ListByUser(userID uint, page, perPage int) ([]models.Review, int64, error) {
	return r.list(func(db *gorm.DB) *gorm.DB { return db.Where("user_id = ?", userID) }, page, perPage)
}

// ListByTitle returns one page of the reviews whose title matches exactly,
// newest first.
func (r *GORMReviewRepository) ListByTitle(title string, page, perPage int) ([]models.Review, int64, error) {
	return r.list(func(db *gorm.DB) *gorm.DB { return db.Where("title = ?", title) }, page, perPage)
}

// list applies count + newest-first ordering + offset pagination to a scoped
// query. The id tiebreak keeps pages stable when timestamps collide.
func (r *GORMReviewRepository) list(scope func(*gorm.DB) *gorm.DB, page, perPage int) ([]models.Review, int64, error) {
	if page < 1 {
		page = 1
	}
	var total int64
	if err := scope(r.db.Model(&models.Review{})).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	var reviews []models.Review
	err := scope(r.db.Model(&models.Review{})).
		Order("date_posted DESC, id DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, total, nil
}
