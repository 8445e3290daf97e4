package domain

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expense/errors"
)

type ExpenseRepository interface {
	Create(ctx context.Context, expense *Expense) error
	FindByID(ctx context.Context, expenseID uuid.UUID) (*Expense, error)
	Update(ctx context.Context, expenseID uuid.UUID, userID string, update ExpenseUpdate) (int64, error)
	Delete(ctx context.Context, expenseID uuid.UUID, userID string) (int64, error)
	FindByUser(ctx context.Context, userID string, query ListQuery) ([]Expense, error)
	CountByUser(ctx context.Context, userID string, query ListQuery) (int, error)
	FindAllByUser(ctx context.Context, userID string) ([]Expense, error)
}

type Category string

const (
	CategoryFood   Category = "Food"
	CategoryTravel Category = "Travel"
	CategoryOffice Category = "Office"
	CategoryOther  Category = "Other"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryFood, CategoryTravel, CategoryOffice, CategoryOther:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPaid         PaymentStatus = "Paid"
	PaymentStatusPending      PaymentStatus = "Pending"
	PaymentStatusReimbursable PaymentStatus = "Reimbursable"
	PaymentStatusRecurring    PaymentStatus = "Recurring"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusPending, PaymentStatusReimbursable, PaymentStatusRecurring:
		return true
	}
	return false
}

type Expense struct {
	ID            uuid.UUID     `json:"id"`
	UserID        string        `json:"userId"` // user UUID
	Description   string        `json:"description"`
	BaseAmount    float64       `json:"base_amount"`
	TaxRate       float64       `json:"tax_rate"`
	Category      Category      `json:"category"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Total is the tax-inclusive amount. It is never stored.
func (e Expense) Total() float64 {
	return e.BaseAmount + e.BaseAmount*e.TaxRate
}

// ExpenseDTO is the read model returned to clients.
type ExpenseDTO struct {
	Expense
	TotalAmount float64 `json:"total_amount"`
}

func (e Expense) ToDTO() ExpenseDTO {
	return ExpenseDTO{Expense: e, TotalAmount: e.Total()}
}

func ToDTOs(expenses []Expense) []ExpenseDTO {
	dtos := make([]ExpenseDTO, len(expenses))
	for i, e := range expenses {
		dtos[i] = e.ToDTO()
	}
	return dtos
}

// NewExpense holds the client supplied fields of a create request.
// Totals are always computed, so there is no total amount field.
type NewExpense struct {
	Description   string
	BaseAmount    *float64
	TaxRate       *float64
	Category      Category
	PaymentStatus PaymentStatus
}

func (n NewExpense) Validate() error {
	if strings.TrimSpace(n.Description) == "" || n.BaseAmount == nil || n.TaxRate == nil || n.Category == "" {
		return expenseErrors.ErrMissingRequiredFields
	}
	if !isFinite(*n.BaseAmount) || !isFinite(*n.TaxRate) {
		return expenseErrors.ErrInvalidAmount
	}
	if *n.BaseAmount < 0 {
		return expenseErrors.ErrNegativeBaseAmount
	}
	if !n.Category.IsValid() {
		return expenseErrors.ErrInvalidCategory
	}
	if n.PaymentStatus != "" && !n.PaymentStatus.IsValid() {
		return expenseErrors.ErrInvalidPaymentStatus
	}
	return nil
}

// ToExpense builds the record to persist, applying the default payment status.
func (n NewExpense) ToExpense(userID string) Expense {
	status := n.PaymentStatus
	if status == "" {
		status = PaymentStatusPending
	}
	return Expense{
		UserID:        userID,
		Description:   n.Description,
		BaseAmount:    *n.BaseAmount,
		TaxRate:       *n.TaxRate,
		Category:      n.Category,
		PaymentStatus: status,
	}
}

// ExpenseUpdate is a partial update; nil fields are left untouched.
type ExpenseUpdate struct {
	Description   *string
	BaseAmount    *float64
	TaxRate       *float64
	Category      *Category
	PaymentStatus *PaymentStatus
}

func (u ExpenseUpdate) Validate() error {
	if u.Description != nil && strings.TrimSpace(*u.Description) == "" {
		return expenseErrors.ErrEmptyDescription
	}
	if (u.BaseAmount != nil && !isFinite(*u.BaseAmount)) || (u.TaxRate != nil && !isFinite(*u.TaxRate)) {
		return expenseErrors.ErrInvalidAmount
	}
	if u.BaseAmount != nil && *u.BaseAmount < 0 {
		return expenseErrors.ErrNegativeBaseAmount
	}
	if u.Category != nil && !u.Category.IsValid() {
		return expenseErrors.ErrInvalidCategory
	}
	if u.PaymentStatus != nil && !u.PaymentStatus.IsValid() {
		return expenseErrors.ErrInvalidPaymentStatus
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
