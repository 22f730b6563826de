package services

import (
	"context"
	"strings"
	"time"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driving"
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

// Provision creates a user from an identity-provider webhook event.
// Webhook deliveries can repeat, so an already-provisioned external ID
// returns the existing account unchanged.
func (s *userService) Provision(ctx context.Context, req driving.ProvisionUserRequest) (*domain.User, error) {
	if req.ExternalID == "" || req.Email == "" {
		return nil, domain.ErrInvalidInput
	}

	if existing, err := s.userStore.GetByExternalID(ctx, req.ExternalID); err == nil {
		return existing, nil
	}

	now := time.Now()
	user := &domain.User{
		ID:         generateID(),
		ExternalID: req.ExternalID,
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Name:       strings.TrimSpace(req.Name),
		Role:       domain.RoleMember,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.userStore.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Create creates a user with credentials (admin only)
func (s *userService) Create(ctx context.Context, req driving.CreateUserRequest) (*domain.UserSummary, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	// Check if email already exists
	existing, _ := s.userStore.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if existing != nil {
		return nil, domain.ErrAlreadyExists
	}

	passwordHash, err := s.authAdapter.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           generateID(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: passwordHash,
		Name:         strings.TrimSpace(req.Name),
		Role:         req.Role,
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

// Delete deletes a user and invalidates their sessions
func (s *userService) Delete(ctx context.Context, id string) error {
	if err := s.userStore.Delete(ctx, id); err != nil {
		return err
	}
	return s.sessionStore.DeleteByUser(ctx, id)
}

func (s *userService) validateCreateRequest(req driving.CreateUserRequest) error {
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return domain.ErrInvalidInput
	}
	if len(req.Password) < 8 {
		return domain.ErrInvalidInput
	}
	if req.Role != domain.RoleAdmin && req.Role != domain.RoleMember {
		return domain.ErrInvalidInput
	}
	return nil
}
