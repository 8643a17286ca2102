package closeouts

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"closeouts/internal/app/client"
	"closeouts/internal/domain/closeout"
)

var filters closeout.Filters

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список закрытий с суммами по способам оплаты",
	Long: `Показывает закрытия касс, по одной строке на запись: день, заведение,
касса, сумма по счетам и по колонке на каждый найденный способ оплаты.

Записи сортируются по дню (новые сверху), затем по заведению и кассе.
На странице не больше 100 записей, номер страницы задаётся флагом --page.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		if err := load(cmd.Context(), app); err != nil {
			return fmt.Errorf("ошибка загрузки закрытий: %w", err)
		}

		page := app.Query(filters)
		methods := app.Methods()
		table := buildTable(app, page, methods)

		if jsonOutput {
			return printJSON(table)
		}
		printTable(os.Stdout, table)
		return nil
	},
}

// Row одна строка списка закрытий.
type Row struct {
	PartitionKey string             `json:"PK"`
	SortKey      string             `json:"SK"`
	Day          string             `json:"day"`
	Venue        string             `json:"venue"`
	Pos          string             `json:"pos"`
	Invoiced     float64            `json:"invoiced"`
	Methods      map[string]float64 `json:"methods"`
	totals       []float64
}

// Table страница списка вместе с колонками способов оплаты.
type Table struct {
	Methods []string `json:"methods"`
	Rows    []Row    `json:"rows"`
	Total   int      `json:"total"`
	Page    int      `json:"page"`
	Pages   int      `json:"pages"`
}

type totaler interface {
	Directory() closeout.Directory
	MethodTotals(rec closeout.Record, methods []string) []float64
	InvoiceTotal(rec closeout.Record) float64
}

var _ totaler = (*client.App)(nil)

func buildTable(app totaler, page closeout.Page, methods []string) Table {
	dir := app.Directory()
	rows := make([]Row, 0, len(page.Records))
	for _, rec := range page.Records {
		totals := app.MethodTotals(rec, methods)
		byMethod := make(map[string]float64, len(methods))
		for i, m := range methods {
			byMethod[m] = totals[i]
		}
		rows = append(rows, Row{
			PartitionKey: rec.PartitionKey,
			SortKey:      rec.SortKey,
			Day:          closeout.ToDisplay(rec.BusinessDay),
			Venue:        dir.VenueName(rec.PartitionKey),
			Pos:          dir.PosName(rec),
			Invoiced:     app.InvoiceTotal(rec),
			Methods:      byMethod,
			totals:       totals,
		})
	}
	return Table{
		Methods: methods,
		Rows:    rows,
		Total:   page.Total,
		Page:    page.Page,
		Pages:   page.Pages,
	}
}

func printTable(out io.Writer, t Table) {
	if len(t.Rows) == 0 {
		fmt.Fprintln(out, "Закрытия не найдены")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := append([]string{"День", "Заведение", "Касса", "Счета"}, t.Methods...)
	fmt.Fprintln(w, strings.Join(header, "\t")+"\t")

	for _, row := range t.Rows {
		cells := []string{row.Day, row.Venue, row.Pos, closeout.FormatAmount(row.Invoiced)}
		for _, v := range row.totals {
			cells = append(cells, closeout.FormatAmount(v))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t")+"\t")
	}
	w.Flush()

	color.New(color.Faint).Fprintf(out, "\nСтраница %d из %d, всего закрытий: %d\n", t.Page, t.Pages, t.Total)
}

func init() {
	ListCmd.Flags().StringVar(&filters.Venue, "venue", "", "код заведения (PK)")
	ListCmd.Flags().StringVar(&filters.From, "from", "", "с даты, dd/mm/yyyy или YYYY-MM-DD")
	ListCmd.Flags().StringVar(&filters.To, "to", "", "по дату, dd/mm/yyyy или YYYY-MM-DD")
	ListCmd.Flags().StringVar(&filters.Text, "search", "", "поиск по заведению, кассе и ключам")
	ListCmd.Flags().BoolVar(&filters.HasBilling, "billing", false, "только закрытия с продажами по счетам")
	ListCmd.Flags().IntVar(&filters.Page, "page", 1, "номер страницы")
	ListCmd.Flags().BoolVar(&offline, "offline", false, "показать последний сохранённый снимок без обращения к серверу")
}
