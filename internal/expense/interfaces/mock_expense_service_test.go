package interfaces

import (
	"context"

	"github.com/google/uuid"
	"github.com/sebuszqo/ExpenseTracker/internal/expense/application"
	"github.com/sebuszqo/ExpenseTracker/internal/expense/domain"
)

// failingExpenseService returns err from every call.
type failingExpenseService struct {
	err error
}

func (m *failingExpenseService) CreateExpense(ctx context.Context, userID string, input domain.NewExpense) (*domain.ExpenseDTO, error) {
	return nil, m.err
}

func (m *failingExpenseService) GetExpense(ctx context.Context, userID string, expenseID uuid.UUID) (*domain.ExpenseDTO, error) {
	return nil, m.err
}

func (m *failingExpenseService) UpdateExpense(ctx context.Context, userID string, expenseID uuid.UUID, update domain.ExpenseUpdate) (*domain.ExpenseDTO, error) {
	return nil, m.err
}

func (m *failingExpenseService) DeleteExpense(ctx context.Context, userID string, expenseID uuid.UUID) error {
	return m.err
}

func (m *failingExpenseService) ListExpenses(ctx context.Context, userID string, query domain.ListQuery) (*domain.ExpensePage, error) {
	return nil, m.err
}

func (m *failingExpenseService) GetExpenseSummary(ctx context.Context, userID string) (*application.Summary, error) {
	return nil, m.err
}
