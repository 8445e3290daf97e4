package application

import "github.com/sebuszqo/ExpenseTracker/internal/expense/domain"

const RecentExpensesCount = 5

type Bucket struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

type Summary struct {
	TotalExpenses   int                             `json:"totalExpenses"`
	TotalAmount     float64                         `json:"totalAmount"`
	ByCategory      map[domain.Category]Bucket      `json:"byCategory"`
	ByPaymentStatus map[domain.PaymentStatus]Bucket `json:"byPaymentStatus"`
	RecentExpenses  []domain.ExpenseDTO             `json:"recentExpenses"`
}

// Summarize aggregates expenses in a single pass. The input order is kept, so the recent
// list is only newest first when the input is.
func Summarize(expenses []domain.ExpenseDTO) Summary {
	summary := Summary{
		TotalExpenses:   len(expenses),
		ByCategory:      make(map[domain.Category]Bucket),
		ByPaymentStatus: make(map[domain.PaymentStatus]Bucket),
		RecentExpenses:  make([]domain.ExpenseDTO, 0, RecentExpensesCount),
	}

	for i, expense := range expenses {
		summary.TotalAmount += expense.TotalAmount

		category := summary.ByCategory[expense.Category]
		category.Count++
		category.Amount += expense.TotalAmount
		summary.ByCategory[expense.Category] = category

		status := summary.ByPaymentStatus[expense.PaymentStatus]
		status.Count++
		status.Amount += expense.TotalAmount
		summary.ByPaymentStatus[expense.PaymentStatus] = status

		if i < RecentExpensesCount {
			summary.RecentExpenses = append(summary.RecentExpenses, expense)
		}
	}
	return summary
}
