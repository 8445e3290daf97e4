package application

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/ExpenseTracker/internal/expense/domain"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expense/errors"
	"github.com/sebuszqo/ExpenseTracker/internal/logger"
	"golang.org/x/sync/errgroup"
)

type ExpenseService struct {
	repo   domain.ExpenseRepository
	logger *slog.Logger
}

func NewExpenseService(repo domain.ExpenseRepository, log *slog.Logger) *ExpenseService {
	return &ExpenseService{repo: repo, logger: logger.WithComponent(log, "expense_service")}
}

func (s *ExpenseService) CreateExpense(ctx context.Context, userID string, input domain.NewExpense) (*domain.ExpenseDTO, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	expense := input.ToExpense(userID)
	now := time.Now().UTC()
	expense.ID = uuid.New()
	expense.CreatedAt = now
	expense.UpdatedAt = now

	if err := s.repo.Create(ctx, &expense); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}

	s.logger.Debug("expense created", "expense_id", expense.ID, "user_id", userID)
	dto := expense.ToDTO()
	return &dto, nil
}

func (s *ExpenseService) GetExpense(ctx context.Context, userID string, expenseID uuid.UUID) (*domain.ExpenseDTO, error) {
	expense, err := s.findOwned(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}
	dto := expense.ToDTO()
	return &dto, nil
}

// UpdateExpense writes only the supplied fields. The write is filtered by both id and owner,
// so a missing record and a record owned by someone else are reported the same way.
func (s *ExpenseService) UpdateExpense(ctx context.Context, userID string, expenseID uuid.UUID, update domain.ExpenseUpdate) (*domain.ExpenseDTO, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	affected, err := s.repo.Update(ctx, expenseID, userID, update)
	if err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	if affected == 0 {
		return nil, expenseErrors.ErrExpenseNotFoundOrForbidden
	}

	expense, err := s.repo.FindByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// deleted between the update and the re-read
			return nil, expenseErrors.ErrExpenseNotFoundOrForbidden
		}
		return nil, fmt.Errorf("reload expense: %w", err)
	}
	dto := expense.ToDTO()
	return &dto, nil
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, userID string, expenseID uuid.UUID) error {
	if _, err := s.findOwned(ctx, userID, expenseID); err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, expenseID, userID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if affected == 0 {
		return expenseErrors.ErrExpenseNotFound
	}
	s.logger.Debug("expense deleted", "expense_id", expenseID, "user_id", userID)
	return nil
}

func (s *ExpenseService) ListExpenses(ctx context.Context, userID string, query domain.ListQuery) (*domain.ExpensePage, error) {
	query = query.Normalize()

	var (
		expenses []domain.Expense
		total    int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if expenses, err = s.repo.FindByUser(gctx, userID, query); err != nil {
			return fmt.Errorf("list expenses: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if total, err = s.repo.CountByUser(gctx, userID, query); err != nil {
			return fmt.Errorf("count expenses: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.ExpensePage{
		Expenses:   domain.ToDTOs(expenses),
		Pagination: domain.NewPagination(query.Page, query.Limit, total),
	}, nil
}

// GetExpenseSummary aggregates every expense of the user, newest first.
func (s *ExpenseService) GetExpenseSummary(ctx context.Context, userID string) (*Summary, error) {
	expenses, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load expenses for summary: %w", err)
	}
	summary := Summarize(domain.ToDTOs(expenses))
	return &summary, nil
}

func (s *ExpenseService) findOwned(ctx context.Context, userID string, expenseID uuid.UUID) (*domain.Expense, error) {
	expense, err := s.repo.FindByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, expenseErrors.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("find expense: %w", err)
	}
	if expense.UserID != userID {
		s.logger.Warn("expense ownership mismatch", "expense_id", expenseID, "user_id", userID)
		return nil, expenseErrors.ErrForbidden
	}
	return expense, nil
}
