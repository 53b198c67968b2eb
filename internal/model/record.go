// Package model defines the core data structures for the ecard importer.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one parsed bill row before account classification and sign
// resolution.
type Record struct {
	Date      time.Time       // calendar date, midnight UTC
	Time      time.Time       // time of day on the zero reference day
	Payee     string          // "" marks a bank transfer, not an unknown payee
	Narration string
	Amount    decimal.Decimal // non-negative magnitude; sign lives in IsIncome
	IsIncome  bool
}

// PayTime combines the record's date and time of day in the given zone.
func (r Record) PayTime(zone *time.Location) time.Time {
	return time.Date(
		r.Date.Year(), r.Date.Month(), r.Date.Day(),
		r.Time.Hour(), r.Time.Minute(), r.Time.Second(), 0,
		zone,
	)
}

// SignedAmount resolves the record's magnitude into a signed change on the
// card account: positive for income, negative for spending.
func (r Record) SignedAmount() decimal.Decimal {
	if r.IsIncome {
		return r.Amount
	}
	return r.Amount.Neg()
}
