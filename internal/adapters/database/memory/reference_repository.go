package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/uneural/treasury_backend/internal/apperrors"
	"github.com/uneural/treasury_backend/internal/core/domain"
	portsrepo "github.com/uneural/treasury_backend/internal/core/ports/repositories"
)

// ProjectRepository is the in-memory project store.
type ProjectRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Project
	ordered []string
}

// NewProjectRepository creates a new in-memory project repository.
func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{byID: make(map[string]*domain.Project)}
}

var _ portsrepo.ProjectRepository = (*ProjectRepository)(nil)

func (r *ProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[project.ProjectID]; exists {
		return fmt.Errorf("%w: project %s", apperrors.ErrDuplicate, project.ProjectID)
	}
	projectCopy := project
	r.byID[project.ProjectID] = &projectCopy
	r.ordered = append(r.ordered, project.ProjectID)
	return nil
}

func (r *ProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	project, exists := r.byID[projectID]
	if !exists {
		return nil, fmt.Errorf("%w: project %s", apperrors.ErrNotFound, projectID)
	}
	projectCopy := *project
	return &projectCopy, nil
}

func (r *ProjectRepository) ListProjects(ctx context.Context) ([]domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Project, 0, len(r.ordered))
	for _, id := range r.ordered {
		result = append(result, *r.byID[id])
	}
	return result, nil
}

// UserRepository is the in-memory user store.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	ordered []string
}

// NewUserRepository creates a new in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{byID: make(map[string]*domain.User)}
}

var _ portsrepo.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[user.UserID]; exists {
		return fmt.Errorf("%w: user %s", apperrors.ErrDuplicate, user.UserID)
	}
	userCopy := user
	r.byID[user.UserID] = &userCopy
	r.ordered = append(r.ordered, user.UserID)
	return nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.byID[userID]
	if !exists {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	userCopy := *user
	return &userCopy, nil
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.User, 0, len(r.ordered))
	for _, id := range r.ordered {
		result = append(result, *r.byID[id])
	}
	return result, nil
}

// NewRepositoryProvider bundles a complete in-memory store.
func NewRepositoryProvider() *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		Transaction: NewTransactionRepository(),
		Budget:      NewBudgetRepository(),
		Project:     NewProjectRepository(),
		User:        NewUserRepository(),
	}
}
