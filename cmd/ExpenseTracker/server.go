package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sebuszqo/ExpenseTracker/internal/auth"
	"github.com/sebuszqo/ExpenseTracker/internal/expense/interfaces"
	"github.com/sebuszqo/ExpenseTracker/internal/user"
)

const readyCheckTimeout = 2 * time.Second

type Response struct {
	Message string `json:"message"`
}

type healthChecker interface {
	Health(ctx context.Context) map[string]string
}

type Server struct {
	router         *http.ServeMux
	authHandler    *auth.Handler
	userHandler    *user.Handler
	authService    auth.Service
	expenseHandler *interfaces.ExpenseHandler
	health         healthChecker
}

func NewServer(authHandler *auth.Handler, authService auth.Service, userHandler *user.Handler, expenseHandler *interfaces.ExpenseHandler, health healthChecker) *Server {
	return &Server{
		authHandler:    authHandler,
		userHandler:    userHandler,
		authService:    authService,
		expenseHandler: expenseHandler,
		health:         health,
		router:         http.NewServeMux(),
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
	defer cancel()

	if s.health != nil {
		if stats := s.health.Health(ctx); stats["status"] != "up" {
			interfaces.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
			})
			return
		}
	}
	interfaces.RespondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

func (s *Server) RegisterRoutes() {
	protected := s.authService.JWTAccessTokenMiddleware()
	router := http.NewServeMux()

	// Public routes
	router.Handle("POST /api/auth/register", http.HandlerFunc(s.userHandler.HandleRegister))
	router.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	router.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// EXPENSES API
	router.Handle("GET /api/expenses", protected(http.HandlerFunc(s.expenseHandler.GetExpenses)))
	router.Handle("POST /api/expenses", protected(http.HandlerFunc(s.expenseHandler.CreateExpense)))
	router.Handle("GET /api/expenses/summary", protected(http.HandlerFunc(s.expenseHandler.GetExpenseSummary)))
	router.Handle("GET /api/expenses/{id}", protected(http.HandlerFunc(s.expenseHandler.GetExpense)))
	router.Handle("PUT /api/expenses/{id}", protected(http.HandlerFunc(s.expenseHandler.UpdateExpense)))
	router.Handle("DELETE /api/expenses/{id}", protected(http.HandlerFunc(s.expenseHandler.DeleteExpense)))

	router.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = router
}
