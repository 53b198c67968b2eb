// Package bill parses exported SJTU ecard HTML bills into records.
package bill

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"golang.org/x/net/html"

	"github.com/rennsax/beancount-importer-sjtu-ecard/internal/common"
	"github.com/rennsax/beancount-importer-sjtu-ecard/internal/model"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// Parser implements ecard bill HTML parsing.
type Parser struct{}

// NewParser creates a new bill parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseDocument parses an exported bill and returns its transaction records
// in document order. Parsing stops at the first structurally invalid row.
func (p *Parser) ParseDocument(ctx context.Context, reader io.Reader) ([]model.Record, error) {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML document: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, common.ErrNoTable
	}

	rows := table.Find("tr")
	// The first row is the header; the last three rows are spacer and
	// summary. This is a fixed property of the export format.
	if rows.Length() <= 4 {
		return nil, nil
	}

	var records []model.Record
	var rowErr error
	rows.Slice(1, rows.Length()-3).EachWithBreak(func(_ int, row *goquery.Selection) bool {
		rec, err := p.parseRow(row)
		if err != nil {
			rowErr = err
			return false
		}
		if rec != nil {
			records = append(records, *rec)
		}
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	slog.Debug("Parsed bill document", "records", len(records))

	return records, nil
}

// rowShape is the cell-0 content of one row, resolved once: bank-transfer
// rows carry no payee and always credit the card; standard rows name their
// payee.
type rowShape struct {
	dateTime  string
	payee     string
	narration string
	isIncome  bool
}

func splitRowShape(fragments []string) (rowShape, error) {
	switch len(fragments) {
	case 2:
		return rowShape{dateTime: fragments[0], narration: fragments[1], isIncome: true}, nil
	case 3:
		return rowShape{dateTime: fragments[0], payee: fragments[1], narration: fragments[2]}, nil
	default:
		return rowShape{}, fmt.Errorf("unexpected text fragment count: %d", len(fragments))
	}
}

// parseRow converts one table row into a record. Rows without cells are
// decoration and yield (nil, nil).
func (p *Parser) parseRow(row *goquery.Selection) (*model.Record, error) {
	cells := row.Find("td")
	if cells.Length() == 0 {
		// Some exports contain empty spacer rows.
		return nil, nil
	}
	if cells.Length() != 3 {
		return nil, fmt.Errorf("unexpected cell count: %d", cells.Length())
	}

	shape, err := splitRowShape(textFragments(cells.Eq(0)))
	if err != nil {
		return nil, err
	}

	dateToken, timeToken, ok := strings.Cut(shape.dateTime, " ")
	if !ok {
		return nil, fmt.Errorf("malformed date-time field: %q", shape.dateTime)
	}
	date, err := time.Parse(dateLayout, dateToken)
	if err != nil {
		return nil, fmt.Errorf("malformed date %q: %w", dateToken, err)
	}
	clock, err := time.Parse(timeLayout, timeToken)
	if err != nil {
		return nil, fmt.Errorf("malformed time %q: %w", timeToken, err)
	}

	amountText := strings.TrimSpace(cells.Eq(1).Text())
	amount, err := decimal.NewFromString(amountText)
	if err != nil {
		return nil, fmt.Errorf("malformed amount %q: %w", amountText, err)
	}

	return &model.Record{
		Date:      date,
		Time:      clock,
		Payee:     shape.payee,
		Narration: shape.narration,
		// The printed sign is discarded; direction lives in IsIncome.
		Amount:   amount.Abs(),
		IsIncome: shape.isIncome,
	}, nil
}

// textFragments collects the non-blank text nodes under a cell, in document
// order. The export separates the date-time, payee, and narration of a row
// with markup rather than delimiters, so each text node is one field.
func textFragments(cell *goquery.Selection) []string {
	var fragments []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				fragments = append(fragments, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range cell.Nodes {
		walk(n)
	}
	return fragments
}
