package models

import "fmt"

// Report is an aggregate of transaction amounts grouped by kind within a
// calendar window: a whole year, or a single month of a year when Month > 0.
// Groups with no transactions default to zero.
type Report struct {
	// Year is the four-digit report year.
	Year int `json:"year"`

	// Month is the report month in the range 1..12, or 0 for a yearly report.
	Month int `json:"month,omitempty"`

	// TotalIncome is the sum of all Income amounts in the window.
	TotalIncome float64 `json:"total_income"`

	// TotalExpense is the sum of all Expense amounts in the window.
	TotalExpense float64 `json:"total_expense"`
}

// Savings is income minus expenses. It may be negative.
func (r Report) Savings() float64 {
	return r.TotalIncome - r.TotalExpense
}

// Period returns the report window as "2006" or "2006-01".
// It implements the [fmt.Stringer]-style label used in report headers.
func (r Report) Period() string {
	if r.Month == 0 {
		return fmt.Sprintf("%04d", r.Year)
	}
	return fmt.Sprintf("%04d-%02d", r.Year, r.Month)
}
