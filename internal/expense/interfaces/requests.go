package interfaces

import (
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/sebuszqo/ExpenseTracker/internal/expense/domain"
)

// flexibleFloat accepts a JSON number or a numeric string. Anything else decodes to NaN so
// that validation reports it instead of the decoder.
type flexibleFloat float64

func (f *flexibleFloat) UnmarshalJSON(data []byte) error {
	var number float64
	if err := json.Unmarshal(data, &number); err == nil {
		*f = flexibleFloat(number)
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
			*f = flexibleFloat(parsed)
			return nil
		}
	}

	*f = flexibleFloat(math.NaN())
	return nil
}

func (f *flexibleFloat) toFloat() *float64 {
	if f == nil {
		return nil
	}
	v := float64(*f)
	return &v
}

type createExpenseRequest struct {
	Description   string         `json:"description"`
	BaseAmount    *flexibleFloat `json:"base_amount"`
	TaxRate       *flexibleFloat `json:"tax_rate"`
	Category      string         `json:"category"`
	PaymentStatus string         `json:"payment_status"`
}

func (r createExpenseRequest) toNewExpense() domain.NewExpense {
	return domain.NewExpense{
		Description:   r.Description,
		BaseAmount:    r.BaseAmount.toFloat(),
		TaxRate:       r.TaxRate.toFloat(),
		Category:      domain.Category(r.Category),
		PaymentStatus: domain.PaymentStatus(r.PaymentStatus),
	}
}

// updateExpenseRequest treats absent and null fields alike: neither is written.
type updateExpenseRequest struct {
	Description   *string        `json:"description"`
	BaseAmount    *flexibleFloat `json:"base_amount"`
	TaxRate       *flexibleFloat `json:"tax_rate"`
	Category      *string        `json:"category"`
	PaymentStatus *string        `json:"payment_status"`
}

func (r updateExpenseRequest) toExpenseUpdate() domain.ExpenseUpdate {
	update := domain.ExpenseUpdate{
		Description: r.Description,
		BaseAmount:  r.BaseAmount.toFloat(),
		TaxRate:     r.TaxRate.toFloat(),
	}
	if r.Category != nil {
		category := domain.Category(*r.Category)
		update.Category = &category
	}
	if r.PaymentStatus != nil {
		status := domain.PaymentStatus(*r.PaymentStatus)
		update.PaymentStatus = &status
	}
	return update
}

func parseListQuery(values url.Values) domain.ListQuery {
	return domain.ListQuery{
		Category:      values.Get("category"),
		PaymentStatus: values.Get("payment_status"),
		Search:        strings.TrimSpace(values.Get("search")),
		SortBy:        values.Get("sortBy"),
		SortOrder:     values.Get("sortOrder"),
		Page:          parsePositiveInt(values.Get("page")),
		Limit:         parsePositiveInt(values.Get("limit")),
	}
}

// parsePositiveInt returns 0 for anything that is not a positive integer, letting the
// query defaults apply.
func parsePositiveInt(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0
	}
	return n
}
