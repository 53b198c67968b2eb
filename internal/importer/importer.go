// Package importer drives end-to-end extraction of ecard bills.
package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/rennsax/beancount-importer-sjtu-ecard/internal/bill"
	"github.com/rennsax/beancount-importer-sjtu-ecard/internal/model"
	"github.com/rennsax/beancount-importer-sjtu-ecard/internal/rules"
)

// payTimeLayout renders timestamps like "2025-03-11 12:34:56 +0800 CST".
const payTimeLayout = "2006-01-02 15:04:05 -0700 MST"

// Config carries the fixed constants of one importer instance.
type Config struct {
	// CardAccount is the asset account backing the campus card.
	CardAccount string
	// Currency tags every posting amount.
	Currency string
	// Zone is the civil-time zone bill timestamps are interpreted in.
	Zone *time.Location
}

// DefaultConfig returns the stock SJTU meal-card configuration.
func DefaultConfig() Config {
	return Config{
		CardAccount: "Assets:SJTU:Meal-Card",
		Currency:    "CNY",
		Zone:        time.FixedZone("CST", 8*60*60),
	}
}

// Importer converts one HTML bill into ordered ledger transactions.
type Importer struct {
	cfg        Config
	parser     *bill.Parser
	classifier *rules.Classifier
}

// New creates an importer with the given configuration and classifier.
func New(cfg Config, classifier *rules.Classifier) *Importer {
	return &Importer{
		cfg:        cfg,
		parser:     bill.NewParser(),
		classifier: classifier,
	}
}

// Identify reports whether this importer handles the named file.
func (imp *Importer) Identify(name string) bool {
	return strings.HasSuffix(name, ".html")
}

// Extract converts one bill document into ledger transactions, in document
// order. Any invalid row or unrecognized payee fails the whole document; no
// partial list is returned. existing is the hook ledger drivers pass for
// deduplication against prior entries; it is accepted and unused.
func (imp *Importer) Extract(ctx context.Context, document io.Reader, sourceName string, existing []model.Transaction) ([]model.Transaction, error) {
	records, err := imp.parser.ParseDocument(ctx, document)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bill %s: %w", sourceName, err)
	}

	transactions := make([]model.Transaction, 0, len(records))
	for i, rec := range records {
		tx, err := imp.buildTransaction(rec, sourceName, i)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	slog.Info("Extracted bill",
		"source", sourceName,
		"transactions", len(transactions))

	return transactions, nil
}

// buildTransaction turns one record into a balanced two-posting transaction.
// index is the record's position among retained records of its document.
func (imp *Importer) buildTransaction(rec model.Record, filename string, index int) (model.Transaction, error) {
	account, err := imp.classifier.Classify(rec.Payee)
	if err != nil {
		return model.Transaction{}, err
	}

	signed := rec.SignedAmount()

	return model.Transaction{
		Date:      rec.Date,
		Flag:      model.FlagOkay,
		Payee:     rec.Payee,
		Narration: rec.Narration,
		Meta: map[string]string{
			model.MetaPayTime: rec.PayTime(imp.cfg.Zone).Format(payTimeLayout),
		},
		Postings: []model.Posting{
			{Account: account, Amount: signed.Neg(), Currency: imp.cfg.Currency},
			{Account: imp.cfg.CardAccount, Amount: signed, Currency: imp.cfg.Currency},
		},
		Source: model.SourceLocation{Filename: filename, Index: index},
	}, nil
}
