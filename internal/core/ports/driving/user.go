package driving

import (
	"context"

	"github.com/bhaktikarche/eureka/internal/core/domain"
)

// UserService manages user accounts
type UserService interface {
	// NeedsSetup reports whether no users exist yet
	NeedsSetup(ctx context.Context) (bool, error)

	// Setup creates the first admin account. Fails with
	// ErrAlreadyExists once any user exists.
	Setup(ctx context.Context, email, name, password string) (*domain.UserSummary, error)

	// Create creates a user (admin only)
	Create(ctx context.Context, email, name, password string, role domain.Role) (*domain.UserSummary, error)

	// Get retrieves a user by ID
	Get(ctx context.Context, id string) (*domain.UserSummary, error)

	// List retrieves all users
	List(ctx context.Context) ([]*domain.UserSummary, error)

	// Delete removes a user and their sessions
	Delete(ctx context.Context, id string) error
}
