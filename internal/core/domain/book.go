package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book is a named cash ledger with its own category vocabulary and membership.
type Book struct {
	BookID        string          `json:"bookId"`
	Name          string          `json:"name"`
	BusinessID    string          `json:"businessId,omitempty"` // Workspace the book belongs to
	OwnerID       string          `json:"ownerId"`
	Categories    []string        `json:"categories"`    // Controlled vocabulary for filter option sets, not enforced on entries
	Subcategories []string        `json:"subcategories"` // Secondary vocabulary
	Balance       decimal.Decimal `json:"balance"`       // Maintained net of all entries; denormalized for listings
	BalanceBefore decimal.Decimal `json:"balanceBefore"` // Opening balance carried from before the tracked window
	AuditFields
}

// BookMember represents one member's role in a book.
type BookMember struct {
	BookID     string    `json:"bookId"`
	MemberID   string    `json:"memberId"`
	Role       Role      `json:"role"`
	LastViewed time.Time `json:"lastViewed"`
}
