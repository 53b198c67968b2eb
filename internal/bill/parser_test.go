package bill

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rennsax/beancount-importer-sjtu-ecard/internal/common"
)

// Sample bill for testing: one header row, four data rows (one of them an
// empty spacer), and the three trailing spacer/summary rows the export
// always appends.
const sampleBillHTML = `<html><body>
<table>
<tr><td>交易信息</td><td>交易金额</td><td>账户余额</td></tr>
<tr><td>2025-03-11 12:00:00<br>第二餐饮大楼<br>闵行二餐大众风味小吃</td><td>-15</td><td>85.50</td></tr>
<tr><td>2025-03-12 08:30:00<br>银行转账</td><td>200</td><td>285.50</td></tr>
<tr></tr>
<tr><td>2025-03-12 18:05:10<br>六期水控<br>浴室热水</td><td>-3.75</td><td>281.75</td></tr>
<tr></tr>
<tr><td>小计</td><td></td><td></td></tr>
<tr><td>导出时间：2025-03-13 09:00:00</td><td></td><td></td></tr>
</table>
</body></html>`

// billDoc wraps data rows in the fixed header/trailer structure of a bill.
func billDoc(rows string) string {
	return `<html><body><table>` +
		`<tr><td>交易信息</td><td>交易金额</td><td>账户余额</td></tr>` +
		rows +
		`<tr></tr>` +
		`<tr><td>小计</td><td></td><td></td></tr>` +
		`<tr><td>导出时间</td><td></td><td></td></tr>` +
		`</table></body></html>`
}

func TestParser_ParseDocument(t *testing.T) {
	parser := NewParser()

	records, err := parser.ParseDocument(context.Background(), strings.NewReader(sampleBillHTML))
	require.NoError(t, err)
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, 12, first.Time.Hour())
	assert.Equal(t, 0, first.Time.Minute())
	assert.Equal(t, "第二餐饮大楼", first.Payee)
	assert.Equal(t, "闵行二餐大众风味小吃", first.Narration)
	assert.True(t, first.Amount.Equal(decimal.NewFromInt(15)), "sign must be stripped from the amount")
	assert.False(t, first.IsIncome)

	transfer := records[1]
	assert.Equal(t, "", transfer.Payee)
	assert.Equal(t, "银行转账", transfer.Narration)
	assert.True(t, transfer.Amount.Equal(decimal.NewFromInt(200)))
	assert.True(t, transfer.IsIncome)

	water := records[2]
	assert.Equal(t, "六期水控", water.Payee)
	assert.True(t, water.Amount.Equal(decimal.RequireFromString("3.75")))
	assert.False(t, water.IsIncome)
}

func TestParser_ParseDocument_errors(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		wantErr string
	}{
		{
			name:    "wrong cell count",
			html:    billDoc(`<tr><td>2025-03-11 12:00:00<br>统禾<br>午餐</td><td>-15</td></tr>`),
			wantErr: "unexpected cell count: 2",
		},
		{
			name:    "wrong fragment count",
			html:    billDoc(`<tr><td>2025-03-11 12:00:00<br>统禾<br>午餐<br>多余字段</td><td>-15</td><td>85.50</td></tr>`),
			wantErr: "unexpected text fragment count: 4",
		},
		{
			name:    "missing time token",
			html:    billDoc(`<tr><td>2025-03-11<br>统禾<br>午餐</td><td>-15</td><td>85.50</td></tr>`),
			wantErr: "malformed date-time field",
		},
		{
			name:    "malformed date",
			html:    billDoc(`<tr><td>2025/03/11 12:00:00<br>统禾<br>午餐</td><td>-15</td><td>85.50</td></tr>`),
			wantErr: "malformed date",
		},
		{
			name:    "malformed time",
			html:    billDoc(`<tr><td>2025-03-11 noon<br>统禾<br>午餐</td><td>-15</td><td>85.50</td></tr>`),
			wantErr: "malformed time",
		},
		{
			name:    "malformed amount",
			html:    billDoc(`<tr><td>2025-03-11 12:00:00<br>统禾<br>午餐</td><td>fifteen</td><td>85.50</td></tr>`),
			wantErr: "malformed amount",
		},
	}

	parser := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := parser.ParseDocument(context.Background(), strings.NewReader(tt.html))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Nil(t, records)
		})
	}
}

func TestParser_ParseDocument_noTable(t *testing.T) {
	parser := NewParser()

	_, err := parser.ParseDocument(context.Background(), strings.NewReader(`<html><body><p>empty</p></body></html>`))
	assert.ErrorIs(t, err, common.ErrNoTable)
}

func TestParser_ParseDocument_shortTable(t *testing.T) {
	// A table holding only the header and trailer rows has no data slice to
	// walk; that is an empty bill, not an error.
	const html = `<html><body><table>
<tr><td>交易信息</td><td>交易金额</td><td>账户余额</td></tr>
<tr></tr>
<tr><td>小计</td><td></td><td></td></tr>
<tr><td>导出时间</td><td></td><td></td></tr>
</table></body></html>`

	parser := NewParser()

	records, err := parser.ParseDocument(context.Background(), strings.NewReader(html))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSplitRowShape(t *testing.T) {
	tests := []struct {
		name       string
		fragments  []string
		wantPayee  string
		wantIncome bool
		wantErr    bool
	}{
		{
			name:       "bank transfer omits the payee",
			fragments:  []string{"2025-03-12 08:30:00", "银行转账"},
			wantPayee:  "",
			wantIncome: true,
		},
		{
			name:      "standard purchase",
			fragments: []string{"2025-03-11 12:00:00", "统禾", "午餐"},
			wantPayee: "统禾",
		},
		{
			name:      "single fragment",
			fragments: []string{"2025-03-11 12:00:00"},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, err := splitRowShape(tt.fragments)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPayee, shape.payee)
			assert.Equal(t, tt.wantIncome, shape.isIncome)
		})
	}
}
