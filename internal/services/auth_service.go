package services

import (
	"errors"
	"fmt"
	"time"

	"litlog/internal/models"
	"litlog/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUsernameTaken is returned when registering or renaming to a
	// username that already belongs to another account.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken is returned when registering or changing to an email
	// that already belongs to another account.
	ErrEmailTaken = errors.New("email already exists")
	// ErrInvalidCredentials is the single login failure error. It does not
	// distinguish an unknown username from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService handles registration, login and session token validation.
type AuthService struct {
	userRepo    repositories.UserRepository
	jwtSecret   []byte
	tokenTTL    time.Duration // session lifetime
	rememberTTL time.Duration // session lifetime with the remember flag set
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    24 * time.Hour,
		rememberTTL: 30 * 24 * time.Hour,
	}
}

// RegisterUser registers a new user, hashing the password before it is
// stored. Username and email must both be free; nothing is written when
// either check fails.
func (s *AuthService) RegisterUser(user *models.User) error {
	if _, err := s.userRepo.GetByUsername(user.Username); err == nil {
		return fmt.Errorf("username %q: %w", user.Username, ErrUsernameTaken)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if _, err := s.userRepo.GetByEmail(user.Email); err == nil {
		return fmt.Errorf("email %q: %w", user.Email, ErrEmailTaken)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// LoginUser authenticates a user and returns a signed session token. The
// remember flag extends the token lifetime.
func (s *AuthService) LoginUser(username, password string, remember bool) (string, *models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	ttl := s.tokenTTL
	if remember {
		ttl = s.rememberTTL
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"jti":      uuid.New().String(),
		"exp":      time.Now().Add(ttl).Unix(),
		"iat":      time.Now().Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, user, nil
}

// SessionTTL returns how long a token issued with the given remember flag
// stays valid. Handlers use it to set the cookie expiry.
func (s *AuthService) SessionTTL(remember bool) time.Duration {
	if remember {
		return s.rememberTTL
	}
	return s.tokenTTL
}

// ValidateToken parses and validates a session token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
