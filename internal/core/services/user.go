package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bhaktikarche/eureka/internal/core/domain"
	"github.com/bhaktikarche/eureka/internal/core/ports/driven"
	"github.com/bhaktikarche/eureka/internal/core/ports/driving"
)

// Ensure userService implements UserService
var _ driving.UserService = (*userService)(nil)

// userService implements the UserService interface
type userService struct {
	userStore    driven.UserStore
	sessionStore driven.SessionStore
	authAdapter  driven.AuthAdapter
}

// NewUserService creates a new UserService
func NewUserService(
	userStore driven.UserStore,
	sessionStore driven.SessionStore,
	authAdapter driven.AuthAdapter,
) driving.UserService {
	return &userService{
		userStore:    userStore,
		sessionStore: sessionStore,
		authAdapter:  authAdapter,
	}
}

// NeedsSetup reports whether no users exist yet
func (s *userService) NeedsSetup(ctx context.Context) (bool, error) {
	count, err := s.userStore.Count(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// Setup creates the first admin account
func (s *userService) Setup(ctx context.Context, email, name, password string) (*domain.UserSummary, error) {
	count, err := s.userStore.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, domain.ErrAlreadyExists
	}
	return s.Create(ctx, email, name, password, domain.RoleAdmin)
}

// Create creates a user
func (s *userService) Create(ctx context.Context, email, name, password string, role domain.Role) (*domain.UserSummary, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || name == "" || len(password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	if role != domain.RoleAdmin && role != domain.RoleMember {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.userStore.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrAlreadyExists
	}

	hash, err := s.authAdapter.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userStore.Save(ctx, user); err != nil {
		return nil, err
	}
	return user.ToSummary(), nil
}

// Get retrieves a user by ID
func (s *userService) Get(ctx context.Context, id string) (*domain.UserSummary, error) {
	user, err := s.userStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.ToSummary(), nil
}

// List retrieves all users
func (s *userService) List(ctx context.Context) ([]*domain.UserSummary, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]*domain.UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, user.ToSummary())
	}
	return summaries, nil
}

// Delete removes a user and their sessions
func (s *userService) Delete(ctx context.Context, id string) error {
	if err := s.userStore.Delete(ctx, id); err != nil {
		return err
	}
	return s.sessionStore.DeleteByUser(ctx, id)
}
