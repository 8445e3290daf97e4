package infrastructure

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/ExpenseTracker/internal/expense/domain"
)

// MockExpenseRepository is an in-memory ExpenseRepository used by service and handler tests.
type MockExpenseRepository struct {
	mu       sync.Mutex
	Expenses []domain.Expense
	Err      error
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Expenses = append(m.Expenses, *expense)
	return nil
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, expenseID uuid.UUID) (*domain.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, e := range m.Expenses {
		if e.ID == expenseID {
			found := e
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MockExpenseRepository) Update(ctx context.Context, expenseID uuid.UUID, userID string, update domain.ExpenseUpdate) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	for i := range m.Expenses {
		e := &m.Expenses[i]
		if e.ID != expenseID || e.UserID != userID {
			continue
		}
		if update.Description != nil {
			e.Description = *update.Description
		}
		if update.BaseAmount != nil {
			e.BaseAmount = *update.BaseAmount
		}
		if update.TaxRate != nil {
			e.TaxRate = *update.TaxRate
		}
		if update.Category != nil {
			e.Category = *update.Category
		}
		if update.PaymentStatus != nil {
			e.PaymentStatus = *update.PaymentStatus
		}
		e.UpdatedAt = time.Now().UTC()
		return 1, nil
	}
	return 0, nil
}

func (m *MockExpenseRepository) Delete(ctx context.Context, expenseID uuid.UUID, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	for i, e := range m.Expenses {
		if e.ID == expenseID && e.UserID == userID {
			m.Expenses = append(m.Expenses[:i], m.Expenses[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *MockExpenseRepository) FindByUser(ctx context.Context, userID string, query domain.ListQuery) ([]domain.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	filtered := m.filter(userID, query)
	sortExpenses(filtered, query.SortBy, query.SortOrder == "asc")

	start := query.Offset()
	if start >= len(filtered) {
		return []domain.Expense{}, nil
	}
	end := start + query.Limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], nil
}

func (m *MockExpenseRepository) CountByUser(ctx context.Context, userID string, query domain.ListQuery) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.filter(userID, query)), nil
}

func (m *MockExpenseRepository) FindAllByUser(ctx context.Context, userID string) ([]domain.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	all := m.filter(userID, domain.ListQuery{})
	sortExpenses(all, domain.SortByCreatedAt, false)
	return all, nil
}

func (m *MockExpenseRepository) filter(userID string, query domain.ListQuery) []domain.Expense {
	search := strings.ToLower(query.Search)
	result := make([]domain.Expense, 0)
	for _, e := range m.Expenses {
		if e.UserID != userID {
			continue
		}
		if query.Category != "" && string(e.Category) != query.Category {
			continue
		}
		if query.PaymentStatus != "" && string(e.PaymentStatus) != query.PaymentStatus {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(e.Description), search) {
			continue
		}
		result = append(result, e)
	}
	return result
}

func sortExpenses(expenses []domain.Expense, sortBy string, asc bool) {
	compare := func(a, b domain.Expense) int {
		switch sortBy {
		case domain.SortByBaseAmount:
			return compareFloat(a.BaseAmount, b.BaseAmount)
		case domain.SortByTaxRate:
			return compareFloat(a.TaxRate, b.TaxRate)
		case domain.SortByDescription:
			return strings.Compare(a.Description, b.Description)
		case domain.SortByCategory:
			return strings.Compare(string(a.Category), string(b.Category))
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		c := compare(expenses[i], expenses[j])
		if c == 0 {
			c = strings.Compare(expenses[i].ID.String(), expenses[j].ID.String())
		}
		if asc {
			return c < 0
		}
		return c > 0
	})
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
