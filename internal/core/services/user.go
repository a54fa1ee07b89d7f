package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/covenant-labs/covenant-core/internal/core/domain"
	"github.com/covenant-labs/covenant-core/internal/core/ports/driven"
	"github.com/covenant-labs/covenant-core/internal/core/ports/driving"
)

// Ensure userService implements UserService
var _ driving.UserService = (*userService)(nil)

// userService implements the UserService interface
type userService struct {
	userStore   driven.UserStore
	authAdapter driven.AuthAdapter
}

// NewUserService creates a new UserService
func NewUserService(userStore driven.UserStore, authAdapter driven.AuthAdapter) driving.UserService {
	return &userService{
		userStore:   userStore,
		authAdapter: authAdapter,
	}
}

// Setup creates the initial admin user. Refused once any user exists,
// so a deployed instance cannot be taken over through this path.
func (s *userService) Setup(ctx context.Context, req driving.SetupRequest) (*driving.SetupResponse, error) {
	count, err := s.userStore.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, domain.ErrAlreadyExists
	}

	user, err := s.create(ctx, driving.CreateUserRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		return nil, err
	}

	return &driving.SetupResponse{
		User:    user.ToSummary(),
		Message: "initial admin user created",
	}, nil
}

// Create creates a new user (admin only)
func (s *userService) Create(ctx context.Context, req driving.CreateUserRequest) (*domain.User, error) {
	return s.create(ctx, req)
}

func (s *userService) create(ctx context.Context, req driving.CreateUserRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidInput
	}
	if len(req.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	if req.Role != domain.RoleAdmin && req.Role != domain.RoleMember {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.userStore.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrAlreadyExists
	}

	hash, err := s.authAdapter.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         req.Role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userStore.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get retrieves a user by ID
func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.userStore.Get(ctx, id)
}

// List retrieves all users
func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userStore.List(ctx)
}

// Delete deletes a user (admin only)
func (s *userService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return s.userStore.Delete(ctx, id)
}
