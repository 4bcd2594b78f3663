package users

import (
	"context"
	"fmt"
	"time"

	"commerce/internal/auctionerrors"
	"commerce/internal/models"
	"commerce/internal/repository"
	"commerce/internal/validation"
	"commerce/utils"

	"golang.org/x/crypto/bcrypt"
)

// UserService registers and looks up accounts
type UserService struct {
	repo repository.AuctionDB
	cost int
}

// NewUserService creates a UserService hashing passwords at bcrypt.DefaultCost
func NewUserService(repo repository.AuctionDB) *UserService {
	return &UserService{repo: repo, cost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost; tests use bcrypt.MinCost
func (s *UserService) WithHashCost(cost int) *UserService {
	s.cost = cost
	return s
}

// RegisterInput carries a sign-up request
type RegisterInput struct {
	Username     string
	Email        string
	Password     string
	Confirmation string
}

// Register creates an account with a unique username
func (s *UserService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	username, err := validation.Username(in.Username)
	if err != nil {
		return models.User{}, fmt.Errorf("service: %w", err)
	}
	email, err := validation.Email(in.Email)
	if err != nil {
		return models.User{}, fmt.Errorf("service: %w", err)
	}
	if err := validation.Password(in.Password, in.Confirmation); err != nil {
		return models.User{}, fmt.Errorf("service: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("service: %w - %v", auctionerrors.ErrInvalidAccount, err)
	}

	user := models.User{
		ID:           utils.GenerateID(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.CreateUser(ctx, &user); err != nil {
		return models.User{}, fmt.Errorf("service: failed to register %q: %w", username, err)
	}

	utils.Info("user registered", map[string]any{"user_id": user.ID, "username": username})
	return user, nil
}

// GetUser returns the user with the given ID
func (s *UserService) GetUser(ctx context.Context, userID string) (models.User, error) {
	if userID == "" {
		return models.User{}, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidAccount)
	}

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("service: failed to get user %s: %w", userID, err)
	}
	return *user, nil
}
