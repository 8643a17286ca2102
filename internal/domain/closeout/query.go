package closeout

import (
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// PageSize фиксированный размер страницы списка закрытий.
const PageSize = 100

// Filters параметры выборки; пустые значения отключают соответствующий фильтр.
type Filters struct {
	Venue      string
	From       string
	To         string
	Text       string
	HasBilling bool
	Page       int
}

// Page результат выборки. Page и Pages нумеруются с единицы.
type Page struct {
	Records []Record
	Total   int
	Page    int
	Pages   int
}

// Pipeline фильтрует, сортирует и разбивает на страницы записи закрытий.
type Pipeline struct {
	aggregator *Aggregator
	lang       language.Tag
}

func NewPipeline(aggregator *Aggregator, lang language.Tag) *Pipeline {
	return &Pipeline{aggregator: aggregator, lang: lang}
}

// Query применяет фильтры в порядке: заведение, нижняя граница дня,
// верхняя граница дня, текстовый поиск, наличие продаж по счетам.
// Запрошенная страница вне диапазона молча ограничивается.
func (p *Pipeline) Query(records []Record, dir Directory, f Filters) Page {
	from := ToWire(f.From)
	to := ToWire(f.To)
	needle := strings.ToLower(strings.TrimSpace(f.Text))

	matched := make([]Record, 0, len(records))
	for _, rec := range records {
		if f.Venue != "" && rec.PartitionKey != f.Venue {
			continue
		}
		// wire dates compare lexically in calendar order
		if from != "" && rec.BusinessDay < from {
			continue
		}
		if to != "" && rec.BusinessDay > to {
			continue
		}
		if needle != "" && !strings.Contains(haystack(rec, dir), needle) {
			continue
		}
		if f.HasBilling && p.aggregator.InvoiceTotal(rec) <= 0 {
			continue
		}
		matched = append(matched, rec)
	}

	p.sort(matched, dir)

	total := len(matched)
	pages := (total + PageSize - 1) / PageSize
	if pages < 1 {
		pages = 1
	}
	page := min(max(f.Page, 1), pages)

	start := min((page-1)*PageSize, total)
	end := min(start+PageSize, total)

	return Page{
		Records: matched[start:end],
		Total:   total,
		Page:    page,
		Pages:   pages,
	}
}

// sort упорядочивает по дню (новые сначала), затем по имени заведения
// с учётом правил языка.
func (p *Pipeline) sort(records []Record, dir Directory) {
	// collate.Collator is not safe for concurrent use
	coll := collate.New(p.lang, collate.IgnoreCase)

	slices.SortStableFunc(records, func(a, b Record) int {
		if c := strings.Compare(b.BusinessDay, a.BusinessDay); c != 0 {
			return c
		}
		if c := coll.CompareString(dir.VenueName(a.PartitionKey), dir.VenueName(b.PartitionKey)); c != 0 {
			return c
		}
		if c := strings.Compare(a.PartitionKey, b.PartitionKey); c != 0 {
			return c
		}
		return strings.Compare(a.SortKey, b.SortKey)
	})
}

func haystack(rec Record, dir Directory) string {
	parts := []string{
		rec.PartitionKey,
		rec.BusinessDay,
		ToDisplay(rec.BusinessDay),
		rec.PosName,
		rec.PosID,
		dir.PosName(rec),
		dir.VenueName(rec.PartitionKey),
	}
	if gross, ok := rec.gross(); ok {
		parts = append(parts, strconv.FormatFloat(gross, 'f', -1, 64), FormatAmount(gross))
	}
	return strings.ToLower(strings.Join(parts, " "))
}
