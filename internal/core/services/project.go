package services

import (
	"context"
	"strings"
	"time"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driving"
)

// Ensure projectService implements ProjectService
var _ driving.ProjectService = (*projectService)(nil)

// projectService implements the ProjectService interface
type projectService struct {
	projectStore  driven.ProjectStore
	settingsStore driven.RetrievalSettingsStore
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectStore driven.ProjectStore,
	settingsStore driven.RetrievalSettingsStore,
) driving.ProjectService {
	return &projectService{
		projectStore:  projectStore,
		settingsStore: settingsStore,
	}
}

// Create creates a project together with its default retrieval
// settings. Every project has exactly one settings record, so a failed
// settings insert rolls the project back.
func (s *projectService) Create(ctx context.Context, userID string, req driving.CreateProjectRequest) (*domain.Project, error) {
	name := strings.TrimSpace(req.Name)
	if userID == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	project := &domain.Project{
		ID:          generateID(),
		UserID:      userID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projectStore.Save(ctx, project); err != nil {
		return nil, err
	}

	settings := domain.DefaultRetrievalSettings(project.ID)
	if err := s.settingsStore.Save(ctx, settings); err != nil {
		// Roll back the orphaned project
		_ = s.projectStore.Delete(ctx, project.ID)
		return nil, err
	}

	return project, nil
}

// Get retrieves a project owned by the user
func (s *projectService) Get(ctx context.Context, userID, projectID string) (*domain.Project, error) {
	project, err := s.projectStore.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return project, nil
}

// List retrieves all projects owned by a user
func (s *projectService) List(ctx context.Context, userID string) ([]*domain.Project, error) {
	return s.projectStore.ListByUser(ctx, userID)
}

// Delete deletes a project the user owns, along with its settings
func (s *projectService) Delete(ctx context.Context, userID, projectID string) (*domain.Project, error) {
	project, err := s.Get(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	if err := s.projectStore.Delete(ctx, projectID); err != nil {
		return nil, err
	}

	// Settings rows follow their project
	_ = s.settingsStore.Delete(ctx, projectID)

	return project, nil
}
