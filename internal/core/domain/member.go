package domain

import "time"

// Role defines what a member may do, globally or within a book.
type Role string

const (
	RoleOwner        Role = "owner"
	RoleAdmin        Role = "admin"
	RoleViewer       Role = "viewer"
	RoleDataOperator Role = "data-operator" // Restricted: may only add entries, subject to DataOperatorSettings
)

// rolePrecedence orders roles from least to most privileged.
var rolePrecedence = map[Role]int{
	RoleViewer:       1,
	RoleDataOperator: 1,
	RoleAdmin:        2,
	RoleOwner:        3,
}

// Satisfies reports whether r grants at least the privileges of required.
// Viewer and data-operator sit at the same level; data-operator restrictions
// are enforced separately through DataOperatorSettings.
func (r Role) Satisfies(required Role) bool {
	return rolePrecedence[r] >= rolePrecedence[required]
}

// Member is an authenticated identity. Members log in with a numeric PIN;
// repeated failures lock the account for a cooldown window.
type Member struct {
	MemberID             string                `json:"memberId"`
	Name                 string                `json:"name"`
	PinHash              string                `json:"-"` // bcrypt hash, never serialized
	Role                 Role                  `json:"role"`
	OwnerID              string                `json:"ownerId,omitempty"` // Owning member for sub-members; empty for owners
	LastViewedBookID     string                `json:"lastViewedBookId,omitempty"`
	FailedPinAttempts    int                   `json:"failedPinAttempts"`
	LockedUntil          *time.Time            `json:"lockedUntil,omitempty"`
	DataOperatorSettings *DataOperatorSettings `json:"dataOperatorSettings,omitempty"` // Only meaningful on data-operator records
	AuditFields
}

// BackdatePolicy controls how far back a data operator may date new entries.
type BackdatePolicy string

const (
	BackdateAlways       BackdatePolicy = "always"
	BackdateNever        BackdatePolicy = "never"
	BackdateOneDayBefore BackdatePolicy = "one-day-before"
)

// DataOperatorSettings constrains members holding RoleDataOperator.
type DataOperatorSettings struct {
	AllowBackdatedEntries     BackdatePolicy `json:"allowBackdatedEntries"`
	HideNetBalanceAndReports  bool           `json:"hideNetBalanceAndReports"`
	HideEntriesByOtherMembers bool           `json:"hideEntriesByOtherMembers"`
	AllowEntryEditing         bool           `json:"allowEntryEditing"`
}

// DefaultDataOperatorSettings are applied when an owner has never configured them.
func DefaultDataOperatorSettings() DataOperatorSettings {
	return DataOperatorSettings{
		AllowBackdatedEntries:     BackdateAlways,
		HideNetBalanceAndReports:  false,
		HideEntriesByOtherMembers: false,
		AllowEntryEditing:         true,
	}
}
