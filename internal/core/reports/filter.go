package reports

import (
	"strings"
	"time"

	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
)

// TypeFilter narrows entries by direction. TypeAll matches everything.
type TypeFilter string

const (
	TypeAll TypeFilter = "all"
	TypeIn  TypeFilter = "in"
	TypeOut TypeFilter = "out"
)

// Filter is the value object describing a ledger filter. Empty slices and
// strings mean "no constraint": absence of selection is inclusive, never
// exclusive. All populated predicates must hold (logical AND).
type Filter struct {
	Type          TypeFilter
	Categories    []string
	Subcategories []string
	Members       []string
	DateFrom      *time.Time // Inclusive from start of the calendar day
	DateTo        *time.Time // Inclusive through end of the calendar day
	SearchTerm    string
}

// Matches reports whether a single transaction satisfies every predicate.
func (f Filter) Matches(t domain.Transaction) bool {
	if f.Type != "" && f.Type != TypeAll && string(f.Type) != string(t.Type) {
		return false
	}
	if len(f.Categories) > 0 && !contains(f.Categories, t.Category) {
		return false
	}
	// Entries lacking a subcategory never match a non-empty subcategory filter.
	if len(f.Subcategories) > 0 && (t.Subcategory == "" || !contains(f.Subcategories, t.Subcategory)) {
		return false
	}
	if len(f.Members) > 0 && (t.MemberID == "" || !contains(f.Members, t.MemberID)) {
		return false
	}
	if f.DateFrom != nil && t.Date.Before(startOfDay(*f.DateFrom)) {
		return false
	}
	if f.DateTo != nil && t.Date.After(endOfDay(*f.DateTo)) {
		return false
	}
	if f.SearchTerm != "" {
		term := strings.ToLower(f.SearchTerm)
		remarkMatch := strings.Contains(strings.ToLower(t.Remark), term)
		amountMatch := strings.Contains(t.Amount.String(), f.SearchTerm)
		if !remarkMatch && !amountMatch {
			return false
		}
	}
	return true
}

// FilterEntries applies the filter to a transaction collection. It is pure
// and order-preserving; downstream consumers re-sort for display.
func FilterEntries(txns []domain.Transaction, f Filter) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txns))
	for _, t := range txns {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// IsZero reports whether the filter constrains nothing, in which case
// FilterEntries returns its input unchanged (identity).
func (f Filter) IsZero() bool {
	return (f.Type == "" || f.Type == TypeAll) &&
		len(f.Categories) == 0 && len(f.Subcategories) == 0 && len(f.Members) == 0 &&
		f.DateFrom == nil && f.DateTo == nil && f.SearchTerm == ""
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
