package dto

import (
	"time"

	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
	"github.com/rupeebook/rupeebook_backend/internal/core/reports"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest records a cash entry in a book.
type CreateTransactionRequest struct {
	Date          time.Time       `json:"date" binding:"required"`
	Type          string          `json:"type" binding:"required,oneof=in out"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Category      string          `json:"category,omitempty"`
	Subcategory   string          `json:"subcategory,omitempty"`
	Remark        string          `json:"remark,omitempty" binding:"max=500"`
	AttachmentURL string          `json:"attachmentUrl,omitempty" binding:"omitempty,url"`
}

// UpdateTransactionRequest edits an existing entry. Nil fields are left
// unchanged.
type UpdateTransactionRequest struct {
	Date          *time.Time       `json:"date,omitempty"`
	Type          *string          `json:"type,omitempty" binding:"omitempty,oneof=in out"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Category      *string          `json:"category,omitempty"`
	Subcategory   *string          `json:"subcategory,omitempty"`
	Remark        *string          `json:"remark,omitempty" binding:"omitempty,max=500"`
	AttachmentURL *string          `json:"attachmentUrl,omitempty" binding:"omitempty,url"`
}

// DeleteTransactionsRequest deletes a set of entries from a book.
type DeleteTransactionsRequest struct {
	TransactionIDs []string `json:"transactionIds" binding:"required,min=1,dive,required"`
}

// TransferTransactionsRequest copies or moves entries to another book.
type TransferTransactionsRequest struct {
	TransactionIDs []string `json:"transactionIds" binding:"required,min=1,dive,required"`
	TargetBookID   string   `json:"targetBookId" binding:"required"`
}

// LedgerFilterQuery holds the query-string filters of the interactive ledger
// view. The same dimensions feed report generation via the request body.
type LedgerFilterQuery struct {
	Type          string   `form:"type" binding:"omitempty,oneof=all in out"`
	Categories    []string `form:"category"`
	Subcategories []string `form:"subcategory"`
	Members       []string `form:"member"`
	DateFrom      string   `form:"dateFrom" binding:"omitempty,datetime=2006-01-02"`
	DateTo        string   `form:"dateTo" binding:"omitempty,datetime=2006-01-02"`
	Search        string   `form:"search"`
}

// TransactionResponse is the wire representation of a cash entry with its
// running balance attached.
type TransactionResponse struct {
	TransactionID string          `json:"transactionId"`
	BookID        string          `json:"bookId"`
	Date          time.Time       `json:"date"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category,omitempty"`
	Subcategory   string          `json:"subcategory,omitempty"`
	Remark        string          `json:"remark,omitempty"`
	AttachmentURL string          `json:"attachmentUrl,omitempty"`
	MemberID      string          `json:"memberId"`
	MemberName    string          `json:"memberName"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// LedgerResponse is the interactive ledger view: filtered entries newest
// first, each with its running balance, plus totals over the filtered subset.
type LedgerResponse struct {
	Entries      []TransactionResponse `json:"entries"`
	TotalCashIn  decimal.Decimal       `json:"totalCashIn"`
	TotalCashOut decimal.Decimal       `json:"totalCashOut"`
	NetBalance   decimal.Decimal       `json:"netBalance"`
}

// DeleteTransactionsResponse reports how many entries were removed.
type DeleteTransactionsResponse struct {
	Deleted int `json:"deleted"`
}

// ToTransactionResponse maps an engine entry row to the wire form.
func ToTransactionResponse(row reports.EntryRow) TransactionResponse {
	return TransactionResponse{
		TransactionID: row.TransactionID,
		BookID:        row.BookID,
		Date:          row.Date,
		Type:          string(row.Type),
		Amount:        row.Amount,
		Category:      row.Category,
		Subcategory:   row.Subcategory,
		Remark:        row.Remark,
		AttachmentURL: row.AttachmentURL,
		MemberID:      row.MemberID,
		MemberName:    row.MemberName,
		Balance:       row.Balance,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.LastUpdatedAt,
	}
}

// ToLedgerResponse maps entry rows and their summary to the wire form.
func ToLedgerResponse(rows []reports.EntryRow, summary reports.Summary) LedgerResponse {
	out := LedgerResponse{
		Entries:      make([]TransactionResponse, 0, len(rows)),
		TotalCashIn:  summary.TotalCashIn,
		TotalCashOut: summary.TotalCashOut,
		NetBalance:   summary.NetBalance,
	}
	for _, row := range rows {
		out.Entries = append(out.Entries, ToTransactionResponse(row))
	}
	return out
}

// ToFilter converts query-string filters to the engine's filter value.
// Date bounds are interpreted as whole days in the given location.
func (q LedgerFilterQuery) ToFilter(loc *time.Location) (reports.Filter, error) {
	f := reports.Filter{
		Categories:    q.Categories,
		Subcategories: q.Subcategories,
		Members:       q.Members,
		SearchTerm:    q.Search,
	}
	switch q.Type {
	case "in":
		f.Type = reports.TypeIn
	case "out":
		f.Type = reports.TypeOut
	default:
		f.Type = reports.TypeAll
	}
	if q.DateFrom != "" {
		t, err := time.ParseInLocation("2006-01-02", q.DateFrom, loc)
		if err != nil {
			return reports.Filter{}, err
		}
		f.DateFrom = &t
	}
	if q.DateTo != "" {
		t, err := time.ParseInLocation("2006-01-02", q.DateTo, loc)
		if err != nil {
			return reports.Filter{}, err
		}
		f.DateTo = &t
	}
	return f, nil
}

// ToTransaction builds a domain transaction from a create request.
func (r CreateTransactionRequest) ToTransaction(bookID, memberID string) domain.Transaction {
	return domain.Transaction{
		BookID:        bookID,
		Date:          r.Date,
		Type:          domain.EntryType(r.Type),
		Amount:        r.Amount,
		Category:      r.Category,
		Subcategory:   r.Subcategory,
		Remark:        r.Remark,
		AttachmentURL: r.AttachmentURL,
		MemberID:      memberID,
	}
}
