package closeout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{in: "12", want: 12, wantOK: true},
		{in: "12,5", want: 12.5, wantOK: true},
		{in: "1.234,56", want: 1234.56, wantOK: true},
		{in: "1,234.56", want: 1234.56, wantOK: true},
		{in: "1.234.567", want: 1234567, wantOK: true},
		{in: "-7,25", want: -7.25, wantOK: true},
		{in: " 3,10 € ", want: 3.10, wantOK: true},
		{in: "99.9", want: 99.9, wantOK: true},
		{in: "", wantOK: false},
		{in: "  ", wantOK: false},
		{in: "abc", wantOK: false},
		{in: "NaN", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseAmount(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: NoValue},
		{in: 0.004, want: NoValue},
		{in: math.NaN(), want: NoValue},
		{in: 1, want: "1,00"},
		{in: 12.5, want: "12,50"},
		{in: 1234.567, want: "1.234,57"},
		{in: 1234567.8, want: "1.234.567,80"},
		{in: -950.05, want: "-950,05"},
		{in: 100, want: "100,00"},
		{in: 1e17, want: "100.000.000.000.000.000,00"},
		{in: -2.5e20, want: "-250.000.000.000.000.000.000,00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.in), "input %v", tt.in)
	}
}

func TestAggregator_TotalForMethod(t *testing.T) {
	agg := NewAggregator(NewCatalog(nil))

	t.Run("sums spelling variants across arrays", func(t *testing.T) {
		rec := Record{
			InvoicePayments:    []Payment{{Method: "efectivo", Amount: 10}},
			TicketPayments:     []Payment{{Method: "Efectivo", Amount: 5.5}, {Method: "tarjeta", Amount: 100}},
			SalesOrderPayments: []Payment{{Method: " EFECTIVO ", Amount: 1.25}},
		}

		assert.InDelta(t, 16.75, agg.TotalForMethod(rec, MethodCash), 1e-9)
		assert.InDelta(t, 100, agg.TotalForMethod(rec, MethodCard), 1e-9)
		assert.Zero(t, agg.TotalForMethod(rec, MethodBizum))
	})

	t.Run("direct column wins", func(t *testing.T) {
		rec := Record{
			CashTotal:      ptr(42),
			TicketPayments: []Payment{{Method: "efectivo", Amount: 5}},
		}

		assert.Equal(t, 42.0, agg.TotalForMethod(rec, MethodCash))
	})

	t.Run("non-finite direct column falls back to payments", func(t *testing.T) {
		rec := Record{
			CardTotal:      ptr(math.Inf(1)),
			TicketPayments: []Payment{{Method: "card", Amount: 7}},
		}

		assert.Equal(t, 7.0, agg.TotalForMethod(rec, MethodCard))
	})

	t.Run("non-finite payment amounts count as zero", func(t *testing.T) {
		rec := Record{
			TicketPayments: []Payment{{Method: "vale", Amount: math.NaN()}, {Method: "vale", Amount: 2}},
		}

		assert.Equal(t, 2.0, agg.TotalForMethod(rec, MethodVoucher))
	})

	t.Run("method totals follow method order", func(t *testing.T) {
		rec := Record{TicketPayments: []Payment{{Method: "card", Amount: 3}, {Method: "cash", Amount: 1}}}

		assert.Equal(t, []float64{1, 3}, agg.MethodTotals(rec, []string{MethodCash, MethodCard}))
	})
}

func TestAggregator_InvoiceTotal(t *testing.T) {
	agg := NewAggregator(NewCatalog(nil))
	payments := []Payment{{Method: "cash", Amount: 10}, {Method: "card", Amount: 20.5}}

	t.Run("derived sum without authoritative gross", func(t *testing.T) {
		rec := Record{InvoicePayments: payments, TicketPayments: []Payment{{Method: "cash", Amount: 99}}}

		assert.InDelta(t, 30.5, agg.InvoiceTotal(rec), 1e-9)
	})

	t.Run("authoritative gross wins over disagreeing sum", func(t *testing.T) {
		rec := Record{InvoicePayments: payments, AuthoritativeGross: ptr(12)}

		assert.Equal(t, 12.0, agg.InvoiceTotal(rec))
	})

	t.Run("authoritative zero still wins", func(t *testing.T) {
		rec := Record{InvoicePayments: payments, AuthoritativeGross: ptr(0)}

		assert.Zero(t, agg.InvoiceTotal(rec))
	})

	t.Run("empty record", func(t *testing.T) {
		assert.Zero(t, agg.InvoiceTotal(Record{}))
	})
}
