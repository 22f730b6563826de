package driving

import (
	"context"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
)

// ProvisionUserRequest is the identity-provider webhook payload subset
// this service consumes
type ProvisionUserRequest struct {
	ExternalID string `json:"external_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
}

// CreateUserRequest represents an admin creating a user directly
type CreateUserRequest struct {
	Email    string      `json:"email"`
	Name     string      `json:"name"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// UserService manages user accounts
type UserService interface {
	// Provision creates a user from an identity-provider webhook event.
	// Idempotent: an existing external ID returns the existing user.
	Provision(ctx context.Context, req ProvisionUserRequest) (*domain.User, error)

	// Create creates a user with credentials (admin only)
	Create(ctx context.Context, req CreateUserRequest) (*domain.UserSummary, error)

	// Get retrieves a user by ID
	Get(ctx context.Context, id string) (*domain.UserSummary, error)

	// List retrieves all users
	List(ctx context.Context) ([]*domain.UserSummary, error)

	// Delete deletes a user and their sessions
	Delete(ctx context.Context, id string) error
}
