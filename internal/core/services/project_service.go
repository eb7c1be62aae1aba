package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/uneural/treasury_backend/internal/core/domain"
	portsrepo "github.com/uneural/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/uneural/treasury_backend/internal/core/ports/services"
	"github.com/uneural/treasury_backend/internal/dto"
)

// projectService manages project reference data. The core only ever
// consumes projects through projectID matching.
type projectService struct {
	projectRepo portsrepo.ProjectRepository
}

// NewProjectService creates a new ProjectSvcFacade.
func NewProjectService(projectRepo portsrepo.ProjectRepository) portssvc.ProjectSvcFacade {
	return &projectService{projectRepo: projectRepo}
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

func (s *projectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error) {
	now := time.Now().UTC()
	project := domain.Project{
		ProjectID: uuid.NewString(),
		Name:      req.Name,
		Lead:      req.Lead,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *projectService) GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	return s.projectRepo.FindProjectByID(ctx, projectID)
}

func (s *projectService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return s.projectRepo.ListProjects(ctx)
}
