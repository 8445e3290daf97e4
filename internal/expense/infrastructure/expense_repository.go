package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sebuszqo/ExpenseTracker/internal/expense/domain"
)

const expenseColumns = `id, user_id, description, base_amount, tax_rate, category, payment_status, created_at, updated_at`

var sortColumns = map[string]string{
	domain.SortByCreatedAt:   "created_at",
	domain.SortByBaseAmount:  "base_amount",
	domain.SortByTaxRate:     "tax_rate",
	domain.SortByDescription: "description",
	domain.SortByCategory:    "category",
}

type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (domain.Expense, error) {
	var e domain.Expense
	err := row.Scan(&e.ID, &e.UserID, &e.Description, &e.BaseAmount, &e.TaxRate,
		&e.Category, &e.PaymentStatus, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	query := `INSERT INTO expenses (` + expenseColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		expense.ID, expense.UserID, expense.Description, expense.BaseAmount, expense.TaxRate,
		expense.Category, expense.PaymentStatus, expense.CreatedAt, expense.UpdatedAt,
	)
	return err
}

// FindByID returns sql.ErrNoRows when the expense does not exist.
func (r *ExpenseRepository) FindByID(ctx context.Context, expenseID uuid.UUID) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	expense, err := scanExpense(r.db.QueryRowContext(ctx, query, expenseID))
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// Update applies the supplied fields only and reports the number of rows written.
// Rows owned by another user are never touched.
func (r *ExpenseRepository) Update(ctx context.Context, expenseID uuid.UUID, userID string, update domain.ExpenseUpdate) (int64, error) {
	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.BaseAmount != nil {
		add("base_amount", *update.BaseAmount)
	}
	if update.TaxRate != nil {
		add("tax_rate", *update.TaxRate)
	}
	if update.Category != nil {
		add("category", *update.Category)
	}
	if update.PaymentStatus != nil {
		add("payment_status", *update.PaymentStatus)
	}
	sets = append(sets, "updated_at = NOW()")

	args = append(args, expenseID, userID)
	query := fmt.Sprintf(`UPDATE expenses SET %s WHERE id = $%d AND user_id = $%d`,
		strings.Join(sets, ", "), len(args)-1, len(args))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *ExpenseRepository) Delete(ctx context.Context, expenseID uuid.UUID, userID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1 AND user_id = $2`, expenseID, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *ExpenseRepository) FindByUser(ctx context.Context, userID string, query domain.ListQuery) ([]domain.Expense, error) {
	where, args := buildListFilter(userID, query)

	column, ok := sortColumns[query.SortBy]
	if !ok {
		column = sortColumns[domain.SortByCreatedAt]
	}
	direction := "DESC"
	if query.SortOrder == "asc" {
		direction = "ASC"
	}

	args = append(args, query.Limit, query.Offset())
	stmt := fmt.Sprintf(`SELECT %s FROM expenses WHERE %s ORDER BY %s %s, id %s LIMIT $%d OFFSET $%d`,
		expenseColumns, where, column, direction, direction, len(args)-1, len(args))

	return r.queryExpenses(ctx, stmt, args...)
}

func (r *ExpenseRepository) CountByUser(ctx context.Context, userID string, query domain.ListQuery) (int, error) {
	where, args := buildListFilter(userID, query)
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses WHERE `+where, args...).Scan(&count)
	return count, err
}

func (r *ExpenseRepository) FindAllByUser(ctx context.Context, userID string) ([]domain.Expense, error) {
	stmt := `SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	return r.queryExpenses(ctx, stmt, userID)
}

func (r *ExpenseRepository) queryExpenses(ctx context.Context, stmt string, args ...any) ([]domain.Expense, error) {
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]domain.Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

// buildListFilter returns the WHERE clause shared by the page and count queries.
func buildListFilter(userID string, query domain.ListQuery) (string, []any) {
	conditions := []string{"user_id = $1"}
	args := []any{userID}

	if query.Category != "" {
		args = append(args, query.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if query.PaymentStatus != "" {
		args = append(args, query.PaymentStatus)
		conditions = append(conditions, fmt.Sprintf("payment_status = $%d", len(args)))
	}
	if query.Search != "" {
		args = append(args, "%"+escapeLike(query.Search)+"%")
		conditions = append(conditions, fmt.Sprintf(`description ILIKE $%d ESCAPE '\'`, len(args)))
	}
	return strings.Join(conditions, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
