package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sebuszqo/ExpenseTracker/internal/logger"
	"github.com/sebuszqo/ExpenseTracker/internal/user"
)

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (s *service) JWTAccessTokenMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := s.VerifyToken(r.Header.Get("Authorization"))
			if err != nil {
				switch {
				case errors.Is(err, ErrMissingAuthHeader), errors.Is(err, ErrInvalidTokenFormat):
					writeJSONError(w, http.StatusUnauthorized, err.Error())
				default:
					writeJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
				}
				return
			}

			_, err = s.userService.GetUserByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					writeJSONError(w, http.StatusUnauthorized, ErrUserNotFound.Error())
					return
				}
				logger.FromContext(r.Context()).Error("could not load authenticated user", "error", err)
				writeJSONError(w, http.StatusInternalServerError, ErrInternalError.Error())
				return
			}

			ctx := ContextWithUserID(r.Context(), userID)
			ctx = logger.WithContext(ctx, logger.FromContext(ctx).With("user_id", userID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeJSONError writes an error response in JSON format
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Status:  "error",
		Message: message,
		Code:    statusCode,
	})
}
