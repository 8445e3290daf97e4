package domain

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 1000
)

const (
	SortByCreatedAt   = "createdAt"
	SortByBaseAmount  = "base_amount"
	SortByTaxRate     = "tax_rate"
	SortByDescription = "description"
	SortByCategory    = "category"
)

var sortFields = map[string]struct{}{
	SortByCreatedAt:   {},
	SortByBaseAmount:  {},
	SortByTaxRate:     {},
	SortByDescription: {},
	SortByCategory:    {},
}

// ListQuery carries the filters, ordering and page window of a list request.
type ListQuery struct {
	Category      string
	PaymentStatus string
	Search        string
	SortBy        string
	SortOrder     string
	Page          int
	Limit         int
}

// Normalize resolves defaults: unknown sort keys fall back to createdAt, any order other
// than asc is desc, and out of range page/limit values take their defaults. Pages too
// large to address are clamped to the last addressable one.
func (q ListQuery) Normalize() ListQuery {
	if _, ok := sortFields[q.SortBy]; !ok {
		q.SortBy = SortByCreatedAt
	}
	if q.SortOrder != "asc" {
		q.SortOrder = "desc"
	}
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	// keeps (Page-1)*Limit within int range
	if maxPage := math.MaxInt / q.Limit; q.Page > maxPage {
		q.Page = maxPage
	}
	return q
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

type Pagination struct {
	CurrentPage   int  `json:"currentPage"`
	Limit         int  `json:"limit"`
	TotalExpenses int  `json:"totalExpenses"`
	TotalPages    int  `json:"totalPages"`
	HasPrevPage   bool `json:"hasPrevPage"`
	HasNextPage   bool `json:"hasNextPage"`
}

func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		CurrentPage:   page,
		Limit:         limit,
		TotalExpenses: total,
		TotalPages:    totalPages,
		HasPrevPage:   page > 1,
		HasNextPage:   page < totalPages,
	}
}

type ExpensePage struct {
	Expenses   []ExpenseDTO `json:"expenses"`
	Pagination Pagination   `json:"pagination"`
}
