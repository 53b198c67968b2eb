package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FlagOkay marks a transaction as cleared. Entries produced by this importer
// are never flagged for review.
const FlagOkay = "*"

// MetaPayTime is the metadata key carrying the formatted payment timestamp.
const MetaPayTime = "payTime"

// Posting is one leg of a double-entry transaction.
type Posting struct {
	Account  string
	Amount   decimal.Decimal
	Currency string
}

// SourceLocation records where a transaction came from, for traceability.
// Index is the position among retained records of the source document.
type SourceLocation struct {
	Filename string
	Index    int
}

// Transaction is a balanced double-entry record ready for the ledger writer.
// The two postings always sum to zero and share one currency.
type Transaction struct {
	Date      time.Time
	Flag      string
	Payee     string
	Narration string
	Meta      map[string]string
	Postings  []Posting
	Source    SourceLocation
}

// Balanced reports whether the transaction's postings sum to zero in a single
// currency.
func (t Transaction) Balanced() bool {
	if len(t.Postings) == 0 {
		return false
	}
	sum := decimal.Zero
	currency := t.Postings[0].Currency
	for _, p := range t.Postings {
		if p.Currency != currency {
			return false
		}
		sum = sum.Add(p.Amount)
	}
	return sum.IsZero()
}
