package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yukikurage/student-task-tracker/internal/models"
	"github.com/yukikurage/student-task-tracker/internal/repository"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles registration and login.
type AuthService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
	hashCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, log *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		log:      log,
		hashCost: bcrypt.DefaultCost,
	}
}

// WithHashCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func (s *AuthService) WithHashCost(cost int) *AuthService {
	s.hashCost = cost
	return s
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Name            string `validate:"username" label:"username"`
	Password        string `validate:"password" label:"password"`
	ConfirmPassword string `validate:"required,eqfield=Password" label:"password confirmation"`
}

// Register creates a new user. It fails with ErrUsernameTaken when the name
// is already registered.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByName(ctx, input.Name); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, persistenceError(s.log, "check username", err, zap.String("name", input.Name))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Name:     input.Name,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, persistenceError(s.log, "create user", err, zap.String("name", input.Name))
	}

	s.log.Info("user registered", zap.Uint64("user_id", user.ID))
	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Name     string
	Password string
}

// Login returns the user only when the password matches.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByName(ctx, strings.TrimSpace(input.Name))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, persistenceError(s.log, "find user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, persistenceError(s.log, "find user", err, zap.Uint64("user_id", id))
	}

	return user, nil
}
