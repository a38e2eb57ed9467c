package repositories

import "litlog/internal/models"

// ReviewRepository defines the interface for review data access. Listing
// methods return the requested page newest-first together with the total
// number of matching reviews.
type ReviewRepository interface {
	Create(review *models.Review) error
	GetByID(id uint) (*models.Review, error)
	Update(review *models.Review) error
	Delete(id uint) error
	ListAll(page, perPage int) ([]models.Review, int64, error)
	ListByUser(userID uint, page, perPage int) ([]models.Review, int64, error)
	ListByTitle(title string, page, perPage int) ([]models.Review, int64, error)
}
