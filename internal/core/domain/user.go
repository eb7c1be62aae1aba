package domain

// Role determines what a user is allowed to see in the presentation
// layer. The core never branches on it.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleAccountant Role = "accountant"
	RoleLead       Role = "lead"
	RoleMember     Role = "member"
	RoleViewer     Role = "viewer"
)

// User represents a member of the organization.
type User struct {
	UserID string `json:"userID"` // Primary Key (UUID)
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	AuditFields
}
