package dto

import (
	"time"

	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBookRequest creates a new cash book inside a business.
type CreateBookRequest struct {
	Name          string   `json:"name" binding:"required,min=1,max=100"`
	Categories    []string `json:"categories,omitempty"`
	Subcategories []string `json:"subcategories,omitempty"`
}

// UpdateBookRequest renames a book or replaces its category lists. Nil fields
// are left unchanged.
type UpdateBookRequest struct {
	Name          *string   `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Categories    *[]string `json:"categories,omitempty"`
	Subcategories *[]string `json:"subcategories,omitempty"`
}

// MoveBookRequest moves a book to another business owned by the same member.
type MoveBookRequest struct {
	TargetBusinessID string `json:"targetBusinessId" binding:"required"`
}

// UpsertBookMemberRequest adds a member to a book or changes their role.
type UpsertBookMemberRequest struct {
	MemberID string `json:"memberId" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=owner admin viewer data-operator"`
}

// BookMemberResponse is the wire representation of a book membership.
type BookMemberResponse struct {
	MemberID   string    `json:"memberId"`
	Name       string    `json:"name,omitempty"`
	Role       string    `json:"role"`
	LastViewed time.Time `json:"lastViewed,omitempty"`
}

// BookResponse is the wire representation of a book.
type BookResponse struct {
	BookID        string          `json:"bookId"`
	BusinessID    string          `json:"businessId"`
	Name          string          `json:"name"`
	Categories    []string        `json:"categories"`
	Subcategories []string        `json:"subcategories"`
	Balance       decimal.Decimal `json:"balance"`
	BalanceBefore decimal.Decimal `json:"balanceBefore"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ListBooksResponse wraps a book collection.
type ListBooksResponse struct {
	Books []BookResponse `json:"books"`
}

// ListBookMembersResponse wraps a book's membership rows.
type ListBookMembersResponse struct {
	Members []BookMemberResponse `json:"members"`
}

// ToBookResponse maps a domain book to its wire form.
func ToBookResponse(b domain.Book) BookResponse {
	return BookResponse{
		BookID:        b.BookID,
		BusinessID:    b.BusinessID,
		Name:          b.Name,
		Categories:    b.Categories,
		Subcategories: b.Subcategories,
		Balance:       b.Balance,
		BalanceBefore: b.BalanceBefore,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.LastUpdatedAt,
	}
}

// ToListBooksResponse maps a book slice to the wire form.
func ToListBooksResponse(books []domain.Book) ListBooksResponse {
	out := ListBooksResponse{Books: make([]BookResponse, 0, len(books))}
	for _, b := range books {
		out.Books = append(out.Books, ToBookResponse(b))
	}
	return out
}

// ToBookMemberResponse maps a membership row to the wire form, attaching the
// member's display name when known.
func ToBookMemberResponse(bm domain.BookMember, name string) BookMemberResponse {
	return BookMemberResponse{
		MemberID:   bm.MemberID,
		Name:       name,
		Role:       string(bm.Role),
		LastViewed: bm.LastViewed,
	}
}
