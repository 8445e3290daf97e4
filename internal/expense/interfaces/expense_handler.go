package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/sebuszqo/ExpenseTracker/internal/auth"
	"github.com/sebuszqo/ExpenseTracker/internal/expense/application"
	"github.com/sebuszqo/ExpenseTracker/internal/expense/domain"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expense/errors"
	"github.com/sebuszqo/ExpenseTracker/internal/logger"
)

const maxRequestBodyBytes = 1 << 20

type ExpenseServiceInterface interface {
	CreateExpense(ctx context.Context, userID string, input domain.NewExpense) (*domain.ExpenseDTO, error)
	GetExpense(ctx context.Context, userID string, expenseID uuid.UUID) (*domain.ExpenseDTO, error)
	UpdateExpense(ctx context.Context, userID string, expenseID uuid.UUID, update domain.ExpenseUpdate) (*domain.ExpenseDTO, error)
	DeleteExpense(ctx context.Context, userID string, expenseID uuid.UUID) error
	ListExpenses(ctx context.Context, userID string, query domain.ListQuery) (*domain.ExpensePage, error)
	GetExpenseSummary(ctx context.Context, userID string) (*application.Summary, error)
}

type ExpenseHandler struct {
	service      ExpenseServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewExpenseHandler(
	service ExpenseServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *ExpenseHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	if respondJSON == nil {
		log.Fatal("RespondJSON function must not be nil")
		return nil
	}
	if respondError == nil {
		log.Fatal("RespondError function must not be nil")
		return nil
	}
	return &ExpenseHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createExpenseRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	expense, err := h.service.CreateExpense(r.Context(), userID, req.toNewExpense())
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to create expense")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Expense created successfully",
		"expense": expense,
	})
}

func (h *ExpenseHandler) GetExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	page, err := h.service.ListExpenses(r.Context(), userID, parseListQuery(r.URL.Query()))
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to retrieve expenses")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"expenses":   page.Expenses,
		"pagination": page.Pagination,
	})
}

func (h *ExpenseHandler) GetExpense(w http.ResponseWriter, r *http.Request) {
	userID, expenseID, ok := h.requestIDs(w, r)
	if !ok {
		return
	}

	expense, err := h.service.GetExpense(r.Context(), userID, expenseID)
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to retrieve expense")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"expense": expense,
	})
}

func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID, expenseID, ok := h.requestIDs(w, r)
	if !ok {
		return
	}

	var req updateExpenseRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	expense, err := h.service.UpdateExpense(r.Context(), userID, expenseID, req.toExpenseUpdate())
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to update expense")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Expense updated successfully",
		"expense": expense,
	})
}

func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, expenseID, ok := h.requestIDs(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteExpense(r.Context(), userID, expenseID); err != nil {
		h.handleServiceError(w, r, err, "Failed to delete expense")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ExpenseHandler) GetExpenseSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	summary, err := h.service.GetExpenseSummary(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to retrieve expense summary")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}

func (h *ExpenseHandler) requestIDs(w http.ResponseWriter, r *http.Request) (string, uuid.UUID, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return "", uuid.Nil, false
	}

	expenseID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid expense ID")
		return "", uuid.Nil, false
	}
	return userID, expenseID, true
}

func (h *ExpenseHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case expenseErrors.IsValidationError(err):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, expenseErrors.ErrExpenseNotFoundOrForbidden), errors.Is(err, expenseErrors.ErrExpenseNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, expenseErrors.ErrForbidden):
		h.respondError(w, http.StatusForbidden, err.Error())
	default:
		logger.FromContext(r.Context()).Error(fallback, "error", err)
		h.respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
