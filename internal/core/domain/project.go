package domain

// Project is reference data; the policy engine only touches it through
// projectID matching.
type Project struct {
	ProjectID string `json:"projectID"` // Primary Key (UUID)
	Name      string `json:"name"`
	Lead      string `json:"lead"` // UserID Reference
	AuditFields
}
