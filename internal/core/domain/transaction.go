package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType indicates the direction of a cash entry.
type EntryType string

const (
	CashIn  EntryType = "in"
	CashOut EntryType = "out"
)

// Transaction represents a single cash-in or cash-out entry in a book.
// Amount is always positive; direction is carried only by Type.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	BookID        string          `json:"bookID"`        // FK -> Book.BookID (Not Null)
	Date          time.Time       `json:"date"`          // When the entry occurred; drives chronological ordering, independent of CreatedAt
	Type          EntryType       `json:"type"`          // in or out (Not Null)
	Amount        decimal.Decimal `json:"amount"`        // Positive value; precise decimal type
	Category      string          `json:"category"`      // Free-text label; empty means uncategorized
	Subcategory   string          `json:"subcategory"`   // Optional secondary label
	Remark        string          `json:"remark"`        // Optional free-text note
	AttachmentURL string          `json:"attachmentUrl"` // Optional external resource reference
	MemberID      string          `json:"memberId"`      // Author; empty implies the legacy owner identity
	AuditFields
}
