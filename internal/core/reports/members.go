package reports

import "github.com/rupeebook/rupeebook_backend/internal/core/domain"

// LegacyOwnerName is the display identity attributed to entries created before
// per-entry authorship existed (absent memberId). It is the single place this
// fallback lives; the ledger view and generated reports both resolve through
// it so exported reports can never disagree with on-screen attribution.
const LegacyOwnerName = "JATIN GADHIYA"

// legacyOwnerAlias is the pre-rename spelling of the owner account; it is
// normalized to LegacyOwnerName wherever it still appears in stored data.
const legacyOwnerAlias = "GADHIYAJATIN"

// MemberResolver maps member IDs to display names, applying the legacy
// fallback rule for absent or unknown IDs.
type MemberResolver struct {
	names map[string]string
}

// NewMemberResolver builds a resolver from a member snapshot.
func NewMemberResolver(members []domain.Member) MemberResolver {
	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.MemberID] = m.Name
	}
	return MemberResolver{names: names}
}

// DisplayName resolves a member ID to its display name. An empty or unknown
// ID resolves to LegacyOwnerName, as does the legacy alias spelling.
func (r MemberResolver) DisplayName(memberID string) string {
	if memberID == "" {
		return LegacyOwnerName
	}
	name, ok := r.names[memberID]
	if !ok || name == "" || name == legacyOwnerAlias {
		return LegacyOwnerName
	}
	return name
}
