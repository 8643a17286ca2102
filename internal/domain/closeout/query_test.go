package closeout

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func newTestPipeline() *Pipeline {
	return NewPipeline(NewAggregator(NewCatalog(nil)), language.Spanish)
}

func keys(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.PartitionKey + "/" + r.BusinessDay
	}
	return out
}

func TestPipeline_Query(t *testing.T) {
	dir := NewDirectory(
		[]Venue{{Code: "L01", Name: "Ñandú"}, {Code: "L02", Name: "Zurbarán"}, {Code: "L03", Name: "Ábside"}},
		[]SaleCenter{{ID: "TPV-9", Name: "Terraza"}},
	)
	records := []Record{
		{PartitionKey: "L02", SortKey: "a", BusinessDay: "2024-01-02", InvoicePayments: []Payment{{Method: "cash", Amount: 5}}},
		{PartitionKey: "L01", SortKey: "b", BusinessDay: "2024-01-03", PosID: "TPV-9"},
		{PartitionKey: "L03", SortKey: "c", BusinessDay: "2024-01-02", AuthoritativeGross: ptr(80)},
		{PartitionKey: "L01", SortKey: "d", BusinessDay: "2024-01-02", Amounts: &Amounts{Gross: ptr(1234.5)}},
		{PartitionKey: "L02", SortKey: "e", BusinessDay: "2024-01-01", AuthoritativeGross: ptr(0), InvoicePayments: []Payment{{Method: "cash", Amount: 9}}},
	}

	p := newTestPipeline()

	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{
			name: "sorted by day desc then venue name with locale rules",
			want: []string{"L01/2024-01-03", "L03/2024-01-02", "L01/2024-01-02", "L02/2024-01-02", "L02/2024-01-01"},
		},
		{
			name:    "venue",
			filters: Filters{Venue: "L02"},
			want:    []string{"L02/2024-01-02", "L02/2024-01-01"},
		},
		{
			name:    "date bounds accept display format",
			filters: Filters{From: "02/01/2024", To: "2024-01-02"},
			want:    []string{"L03/2024-01-02", "L01/2024-01-02", "L02/2024-01-02"},
		},
		{
			name:    "text matches venue display name",
			filters: Filters{Text: "zurba"},
			want:    []string{"L02/2024-01-02", "L02/2024-01-01"},
		},
		{
			name:    "text matches sale center name",
			filters: Filters{Text: "TERRAZA"},
			want:    []string{"L01/2024-01-03"},
		},
		{
			name:    "text matches formatted gross",
			filters: Filters{Text: "1.234,50"},
			want:    []string{"L01/2024-01-02"},
		},
		{
			name:    "text matches display date",
			filters: Filters{Text: "01/01/2024"},
			want:    []string{"L02/2024-01-01"},
		},
		{
			name:    "has billing uses invoice total precedence",
			filters: Filters{HasBilling: true},
			want:    []string{"L03/2024-01-02", "L02/2024-01-02"},
		},
		{
			name:    "filters combine",
			filters: Filters{Venue: "L02", HasBilling: true, From: "2024-01-01"},
			want:    []string{"L02/2024-01-02"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := p.Query(records, dir, tt.filters)

			assert.Equal(t, tt.want, keys(page.Records))
			assert.Equal(t, len(tt.want), page.Total)
			assert.Equal(t, 1, page.Page)
			assert.Equal(t, 1, page.Pages)
		})
	}
}

func TestPipeline_Pagination(t *testing.T) {
	records := make([]Record, 0, 250)
	for i := 0; i < 250; i++ {
		records = append(records, Record{PartitionKey: "L01", SortKey: fmt.Sprintf("%03d", i), BusinessDay: "2024-01-01"})
	}
	p := newTestPipeline()

	tests := []struct {
		name      string
		page      int
		wantPage  int
		wantLen   int
		wantFirst string
	}{
		{name: "first", page: 1, wantPage: 1, wantLen: 100, wantFirst: "000"},
		{name: "zero clamps up", page: 0, wantPage: 1, wantLen: 100, wantFirst: "000"},
		{name: "negative clamps up", page: -4, wantPage: 1, wantLen: 100, wantFirst: "000"},
		{name: "last partial", page: 3, wantPage: 3, wantLen: 50, wantFirst: "200"},
		{name: "beyond clamps down", page: 99, wantPage: 3, wantLen: 50, wantFirst: "200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := p.Query(records, Directory{}, Filters{Page: tt.page})

			assert.Equal(t, tt.wantPage, page.Page)
			assert.Equal(t, 3, page.Pages)
			assert.Equal(t, 250, page.Total)
			assert.Len(t, page.Records, tt.wantLen)
			assert.Equal(t, tt.wantFirst, page.Records[0].SortKey)
		})
	}
}

func TestPipeline_EmptyInput(t *testing.T) {
	page := newTestPipeline().Query(nil, Directory{}, Filters{Page: 5})

	assert.Empty(t, page.Records)
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.Pages)
}
