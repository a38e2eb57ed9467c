package services

import (
	"errors"
	"fmt"
	"mime/multipart"

	"litlog/internal/models"
	"litlog/internal/repositories"
	"litlog/pkg/imagestore"
)

// ProfileUpdate carries the user-editable profile fields. Picture is
// optional; when nil the current image is kept.
type ProfileUpdate struct {
	Username string
	Email    string
	Picture  *multipart.FileHeader
}

// UserService handles profile management and account deletion.
type UserService struct {
	userRepo repositories.UserRepository
	images   *imagestore.Store
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, images *imagestore.Store) *UserService {
	return &UserService{
		userRepo: userRepo,
		images:   images,
	}
}

// GetUser retrieves a user by primary key.
func (s *UserService) GetUser(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// GetUserByUsername retrieves a user by exact username match.
func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	return s.userRepo.GetByUsername(username)
}

// UpdateProfile changes username and/or email, and ingests a new profile
// picture when one was uploaded. A username or email that differs from the
// current value must not collide with another account. All changes land in a
// single user update.
func (s *UserService) UpdateProfile(userID uint, update ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if update.Username != "" && update.Username != user.Username {
		if _, err := s.userRepo.GetByUsername(update.Username); err == nil {
			return nil, fmt.Errorf("username %q: %w", update.Username, ErrUsernameTaken)
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		user.Username = update.Username
	}
	if update.Email != "" && update.Email != user.Email {
		if _, err := s.userRepo.GetByEmail(update.Email); err == nil {
			return nil, fmt.Errorf("email %q: %w", update.Email, ErrEmailTaken)
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		user.Email = update.Email
	}

	if update.Picture != nil {
		if s.images == nil {
			return nil, errors.New("picture uploads are not configured")
		}
		filename, err := s.images.SavePicture(update.Picture)
		if err != nil {
			return nil, err
		}
		user.ImageFile = filename
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the account named by targetUsername and all its
// reviews. Only the account owner may delete it; the original site deleted
// whichever username was in the URL, which was an authorization hole.
func (s *UserService) DeleteAccount(actingUserID uint, targetUsername string) error {
	target, err := s.userRepo.GetByUsername(targetUsername)
	if err != nil {
		return err
	}
	if target.ID != actingUserID {
		return fmt.Errorf("delete account %q: %w", targetUsername, ErrForbidden)
	}
	return s.userRepo.Delete(target.ID)
}
