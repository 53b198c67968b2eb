// Package ledger renders transactions as beancount text directives.
package ledger

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rennsax/beancount-importer-sjtu-ecard/internal/model"
)

// Writer serializes transactions to a plain-text ledger stream.
type Writer struct {
	out io.Writer
}

// NewWriter creates a writer targeting out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Write renders the transactions in order, separated by blank lines. Output
// is deterministic for a given transaction list.
func (w *Writer) Write(transactions []model.Transaction) error {
	for i, tx := range transactions {
		if i > 0 {
			if _, err := fmt.Fprintln(w.out); err != nil {
				return fmt.Errorf("failed to write ledger entry: %w", err)
			}
		}
		if _, err := io.WriteString(w.out, Render(tx)); err != nil {
			return fmt.Errorf("failed to write ledger entry: %w", err)
		}
	}
	return nil
}

// Render formats one transaction as a beancount directive.
func Render(tx model.Transaction) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s %q %q\n",
		tx.Date.Format("2006-01-02"), tx.Flag, tx.Payee, tx.Narration)

	keys := make([]string, 0, len(tx.Meta))
	for k := range tx.Meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s: %q\n", k, tx.Meta[k])
	}

	for _, p := range tx.Postings {
		fmt.Fprintf(&b, "  %s  %s %s\n", p.Account, p.Amount.String(), p.Currency)
	}

	return b.String()
}
