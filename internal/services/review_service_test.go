package services_test

import (
	"testing"
	"time"

	"litlog/internal/models"
	"litlog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockReviewRepository is a mock implementation of repositories.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(id uint) (*models.Review, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) Update(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockReviewRepository) ListAll(page, perPage int) ([]models.Review, int64, error) {
	args := m.Called(page, perPage)
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) ListByUser(userID uint, page, perPage int) ([]models.Review, int64, error) {
	args := m.Called(userID, page, perPage)
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) ListByTitle(title string, page, perPage int) ([]models.Review, int64, error) {
	args := m.Called(title, page, perPage)
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func TestReviewService_CreateReview(t *testing.T) {
	mockRepo := new(MockReviewRepository)
	service := services.NewReviewService(mockRepo, nil)

	mockRepo.On("Create", mock.AnythingOfType("*models.Review")).Return(nil).Once()

	before := time.Now()
	review, err := service.CreateReview(42, services.ReviewInput{
		Title:   "Dune",
		Author:  "Frank Herbert",
		Rating:  5,
		Content: "A classic.",
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(42), review.UserID)
	assert.Equal(t, "Dune", review.Title)
	assert.False(t, review.DatePosted.Before(before))
	mockRepo.AssertExpectations(t)
}

func TestReviewService_UpdateReview_OwnerOnly(t *testing.T) {
	mockRepo := new(MockReviewRepository)
	service := services.NewReviewService(mockRepo, nil)

	posted := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	owned := &models.Review{ID: 10, Title: "Old", Author: "A", Rating: 2, Content: "old", DatePosted: posted, UserID: 1}

	// A non-owner gets forbidden and no write happens.
	mockRepo.On("GetByID", uint(10)).Return(owned, nil).Once()
	_, err := service.UpdateReview(2, 10, services.ReviewInput{Title: "Hacked", Author: "B", Rating: 1, Content: "x"})
	assert.ErrorIs(t, err, services.ErrForbidden)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)

	// The owner can update; id, owner and timestamp are preserved.
	mockRepo.On("GetByID", uint(10)).Return(owned, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Review")).Return(nil).Once()
	updated, err := service.UpdateReview(1, 10, services.ReviewInput{Title: "New", Author: "B", Rating: 4, Content: "new"})
	assert.NoError(t, err)
	assert.Equal(t, uint(10), updated.ID)
	assert.Equal(t, uint(1), updated.UserID)
	assert.Equal(t, posted, updated.DatePosted)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, 4, updated.Rating)
	mockRepo.AssertExpectations(t)
}

func TestReviewService_DeleteReview_OwnerOnly(t *testing.T) {
	mockRepo := new(MockReviewRepository)
	service := services.NewReviewService(mockRepo, nil)

	owned := &models.Review{ID: 11, UserID: 1}

	mockRepo.On("GetByID", uint(11)).Return(owned, nil).Once()
	err := service.DeleteReview(2, 11)
	assert.ErrorIs(t, err, services.ErrForbidden)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything)

	mockRepo.On("GetByID", uint(11)).Return(owned, nil).Once()
	mockRepo.On("Delete", uint(11)).Return(nil).Once()
	err = service.DeleteReview(1, 11)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestReviewService_ListReviews_PageMath(t *testing.T) {
	mockRepo := new(MockReviewRepository)
	service := services.NewReviewService(mockRepo, nil)

	items := []models.Review{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}}
	mockRepo.On("ListAll", 2, services.ReviewsPerPage).Return(items, int64(12), nil).Once()

	page, err := service.ListReviews(2)
	assert.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, services.ReviewsPerPage, page.PerPage)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 3, page.TotalPages) // ceil(12/5)
	assert.Len(t, page.Items, 5)
	mockRepo.AssertExpectations(t)

	// An empty listing has zero pages and a non-nil item slice.
	mockRepo.On("ListByTitle", "Nothing", 1, services.ReviewsPerPage).Return([]models.Review{}, int64(0), nil).Once()
	page, err = service.ListReviewsByTitle("Nothing", 1)
	assert.NoError(t, err)
	assert.Equal(t, 0, page.TotalPages)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	mockRepo.AssertExpectations(t)
}
