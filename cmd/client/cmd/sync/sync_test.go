package sync

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"closeouts/internal/app/client"
	"closeouts/internal/domain/sync"
)

func intPtr(v int) *int { return &v }

func TestFormatProgress(t *testing.T) {
	tests := []struct {
		name string
		in   sync.Progress
		want string
	}{
		{
			name: "start",
			in:   sync.Progress{State: sync.StateRunning, Total: 3, CurrentDay: "2024-03-05"},
			want: "0/3    0%  прошло 00:00  осталось --:--  [05/03/2024]",
		},
		{
			name: "middle with failures",
			in:   sync.Progress{State: sync.StateRunning, Completed: 1, Total: 3, Failed: 1, Percent: 33, ElapsedSeconds: 2, RemainingSeconds: intPtr(4), CurrentDay: "2024-03-06"},
			want: "1/3   33%  прошло 00:02  осталось 00:04  ошибок 1  [06/03/2024]",
		},
		{
			name: "completed",
			in:   sync.Progress{State: sync.StateCompleted, Completed: 3, Total: 3, Percent: 100, ElapsedSeconds: 3725, RemainingSeconds: intPtr(0)},
			want: "3/3  100%  прошло 1:02:05  осталось 00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatProgress(tt.in))
		})
	}
}

func TestProgressPrinter(t *testing.T) {
	p0 := sync.Progress{State: sync.StateRunning, Total: 2, CurrentDay: "2024-03-05"}
	p1 := sync.Progress{State: sync.StateCompleted, Completed: 2, Total: 2, Percent: 100, RemainingSeconds: intPtr(0)}

	t.Run("line per update", func(t *testing.T) {
		var out bytes.Buffer
		pr := newProgressPrinter(&out, false)
		pr.print(p0)
		pr.print(p0)
		pr.print(p1)
		pr.finish()

		assert.Equal(t, formatProgress(p0)+"\n"+formatProgress(p1)+"\n", out.String())
	})

	t.Run("in place", func(t *testing.T) {
		var out bytes.Buffer
		pr := newProgressPrinter(&out, true)
		pr.print(p0)
		pr.print(p1)
		pr.finish()

		assert.Equal(t, "\r\033[K"+formatProgress(p0)+"\r\033[K"+formatProgress(p1)+"\n", out.String())
	})
}

func TestPrintSummary(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer

	printSummary(&out, sync.Result{Total: 5, Attempted: 3, Succeeded: 2, Failed: 1, Elapsed: 7 * time.Second})

	text := out.String()
	assert.Contains(t, text, "Дней в диапазоне: 5")
	assert.Contains(t, text, "Обработано: 3")
	assert.Contains(t, text, "С ошибками: 1")
	assert.Contains(t, text, "Время выполнения: 7s")
}

func TestShowSyncStatus_Empty(t *testing.T) {
	var out bytes.Buffer

	showSyncStatus(&out, client.SyncStats{})

	assert.Contains(t, out.String(), "Синхронизация ещё не запускалась")
}
