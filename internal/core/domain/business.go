package domain

// BusinessType distinguishes personal workspaces from business ones.
type BusinessType string

const (
	BusinessPersonal BusinessType = "personal"
	BusinessCompany  BusinessType = "business"
)

// Business is a workspace grouping books owned by one member.
type Business struct {
	BusinessID string       `json:"businessId"`
	Name       string       `json:"name"`
	OwnerID    string       `json:"ownerId"`
	Type       BusinessType `json:"type"`
	SortOrder  int          `json:"sortOrder"` // Display order, member-controlled
	AuditFields
}
