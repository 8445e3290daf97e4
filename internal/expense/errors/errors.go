package errors

import "errors"

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

var ErrMissingRequiredFields = NewValidationError("Missing required fields: description, base_amount, tax_rate, category")
var ErrInvalidCategory = NewValidationError("Invalid category. Must be one of: Food, Travel, Office, Other")
var ErrInvalidPaymentStatus = NewValidationError("Invalid payment_status. Must be one of: Paid, Pending, Reimbursable, Recurring")
var ErrInvalidAmount = NewValidationError("base_amount and tax_rate must be valid numbers")
var ErrNegativeBaseAmount = NewValidationError("base_amount must not be negative")
var ErrEmptyDescription = NewValidationError("Description must not be empty")

var (
	ErrExpenseNotFound            = errors.New("Expense not found")
	ErrForbidden                  = errors.New("Forbidden - You can only access your own expenses")
	ErrExpenseNotFoundOrForbidden = errors.New("Expense not found or you do not have permission to update it")
)
