package dto

import (
	"github.com/uneural/treasury_backend/internal/core/domain"
)

// CreateProjectRequest defines the data needed to create a project.
type CreateProjectRequest struct {
	Name string `json:"name" binding:"required"`
	Lead string `json:"lead" binding:"required"` // UserID of the project lead
}

// ProjectResponse defines the data returned for a project.
type ProjectResponse struct {
	ProjectID string `json:"projectID"`
	Name      string `json:"name"`
	Lead      string `json:"lead"`
}

// ListProjectsResponse wraps the list of projects.
type ListProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

// CreateUserRequest defines the data needed to create a user.
type CreateUserRequest struct {
	Name  string      `json:"name" binding:"required"`
	Email string      `json:"email" binding:"required,email"`
	Role  domain.Role `json:"role" binding:"required,oneof=admin accountant lead member viewer"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID string      `json:"userID"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
}

// ToProjectResponse converts a domain.Project to ProjectResponse DTO
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{ProjectID: p.ProjectID, Name: p.Name, Lead: p.Lead}
}

// ToListProjectsResponse converts a slice of domain.Project to ListProjectsResponse DTO
func ToListProjectsResponse(projects []domain.Project) ListProjectsResponse {
	res := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		res[i] = ToProjectResponse(&p)
	}
	return ListProjectsResponse{Projects: res}
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{UserID: u.UserID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// ToListUsersResponse converts a slice of domain.User to a list DTO
func ToListUsersResponse(users []domain.User) []UserResponse {
	res := make([]UserResponse, len(users))
	for i, u := range users {
		res[i] = ToUserResponse(&u)
	}
	return res
}
