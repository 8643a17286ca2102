package sync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"closeouts/internal/app/client"
	"closeouts/internal/domain/closeout"
	"closeouts/internal/domain/sync"
)

var (
	syncFrom   string
	syncTo     string
	syncStatus bool
)

var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Синхронизация диапазона дней с POS",
	Long: `Запрашивает у сервера синхронизацию каждого дня диапазона по очереди.

Ошибка отдельного дня не прерывает синхронизацию: день учитывается как
неудачный, и процесс переходит к следующему. После завершения список
закрытий перечитывается. Ctrl+C останавливает синхронизацию между днями.`,
	Example: `  closeoutctl sync --from 01/03/2024 --to 07/03/2024
  closeoutctl sync --status`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := client.FromContext(cmd.Context())
		if !ok {
			return fmt.Errorf("приложение не инициализировано")
		}

		if syncStatus {
			showSyncStatus(os.Stdout, app.SyncStats())
			return nil
		}

		if syncFrom == "" || syncTo == "" {
			return fmt.Errorf("укажите диапазон: --from и --to")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runSync(ctx, app, os.Stdout)
	},
}

func runSync(ctx context.Context, app *client.App, out *os.File) error {
	fmt.Fprintf(out, "=== Синхронизация %s — %s ===\n", displayDate(syncFrom), displayDate(syncTo))

	printer := newProgressPrinter(out, term.IsTerminal(int(out.Fd())))
	res, err := app.SyncRange(ctx, syncFrom, syncTo, printer.print)
	printer.finish()

	switch {
	case errors.Is(err, context.Canceled):
		color.New(color.FgYellow).Fprintln(out, "⚠️  Синхронизация прервана")
	case err != nil:
		return fmt.Errorf("ошибка синхронизации: %w", err)
	default:
		color.New(color.FgGreen).Fprintln(out, "✅ Синхронизация завершена")
	}

	printSummary(out, res)
	return nil
}

func printSummary(out io.Writer, res sync.Result) {
	fmt.Fprintf(out, "Дней в диапазоне: %d\n", res.Total)
	fmt.Fprintf(out, "Обработано: %d\n", res.Attempted)
	fmt.Fprintf(out, "Успешно: %d\n", res.Succeeded)
	if res.Failed > 0 {
		color.New(color.FgRed).Fprintf(out, "С ошибками: %d\n", res.Failed)
	} else {
		fmt.Fprintf(out, "С ошибками: %d\n", res.Failed)
	}
	fmt.Fprintf(out, "Время выполнения: %v\n", res.Elapsed.Round(time.Second))
}

func showSyncStatus(out io.Writer, stats client.SyncStats) {
	fmt.Fprintln(out, "=== Статус синхронизации ===")
	if stats.TotalRuns == 0 {
		fmt.Fprintln(out, "Синхронизация ещё не запускалась")
		return
	}

	fmt.Fprintln(out, "📊 Статистика:")
	fmt.Fprintf(out, "  Запусков: %d\n", stats.TotalRuns)
	fmt.Fprintf(out, "  Дней обработано: %d\n", stats.TotalDays)
	fmt.Fprintf(out, "  Дней с ошибками: %d\n", stats.TotalFailed)
	fmt.Fprintf(out, "  Среднее время на день: %.1f сек\n", stats.AvgDaySeconds)

	fmt.Fprintln(out, "\n⏰ Последний запуск:")
	fmt.Fprintf(out, "  Диапазон: %s — %s\n", closeout.ToDisplay(stats.LastFrom), closeout.ToDisplay(stats.LastTo))
	fmt.Fprintf(out, "  Начат: %s\n", stats.LastStarted.Local().Format("02/01/2006 15:04:05"))
	fmt.Fprintf(out, "  Длительность: %.0f сек\n", stats.LastDuration)
	if stats.LastCancelled {
		fmt.Fprintln(out, "  Прерван пользователем")
	}
}

// progressPrinter выводит прогресс одной перезаписываемой строкой в терминале
// и построчно при выводе в файл или пайп.
type progressPrinter struct {
	out     io.Writer
	inPlace bool
	last    string
}

func newProgressPrinter(out io.Writer, inPlace bool) *progressPrinter {
	return &progressPrinter{out: out, inPlace: inPlace}
}

func (p *progressPrinter) print(pr sync.Progress) {
	line := formatProgress(pr)
	if line == p.last {
		return
	}
	p.last = line

	if p.inPlace {
		fmt.Fprintf(p.out, "\r\033[K%s", line)
		return
	}
	fmt.Fprintln(p.out, line)
}

func (p *progressPrinter) finish() {
	if p.inPlace && p.last != "" {
		fmt.Fprintln(p.out)
	}
}

func formatProgress(p sync.Progress) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d  %3d%%  прошло %s  осталось %s",
		p.Completed, p.Total, p.Percent,
		formatSeconds(p.ElapsedSeconds), formatETA(p.RemainingSeconds))
	if p.Failed > 0 {
		fmt.Fprintf(&b, "  ошибок %d", p.Failed)
	}
	if p.State == sync.StateRunning && p.CurrentDay != "" {
		fmt.Fprintf(&b, "  [%s]", closeout.ToDisplay(p.CurrentDay))
	}
	return b.String()
}

func formatETA(remaining *int) string {
	if remaining == nil {
		return "--:--"
	}
	return formatSeconds(*remaining)
}

func formatSeconds(s int) string {
	d := time.Duration(s) * time.Second
	if d >= time.Hour {
		return fmt.Sprintf("%d:%02d:%02d", int(d.Hours()), int(d.Minutes())%60, s%60)
	}
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), s%60)
}

func displayDate(s string) string {
	if wire := closeout.ToWire(s); wire != "" {
		return closeout.ToDisplay(wire)
	}
	return s
}

func init() {
	SyncCmd.Flags().StringVar(&syncFrom, "from", "", "первый день, dd/mm/yyyy или YYYY-MM-DD")
	SyncCmd.Flags().StringVar(&syncTo, "to", "", "последний день включительно")
	SyncCmd.Flags().BoolVar(&syncStatus, "status", false, "показать статистику синхронизаций")
}
