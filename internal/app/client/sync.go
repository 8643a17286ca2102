package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	gosync "sync"
	"time"

	"closeouts/internal/domain/sync"
)

// SyncStats накопленная статистика запусков синхронизации диапазонов.
type SyncStats struct {
	TotalRuns     int       `json:"total_runs"`
	TotalDays     int       `json:"total_days"`
	TotalFailed   int       `json:"total_failed"`
	LastFrom      string    `json:"last_from,omitempty"`
	LastTo        string    `json:"last_to,omitempty"`
	LastStarted   time.Time `json:"last_started"`
	LastDuration  float64   `json:"last_duration_seconds"`
	LastCancelled bool      `json:"last_cancelled"`
	AvgDaySeconds float64   `json:"avg_day_seconds"`
}

// SyncRange синхронизирует все дни диапазона [from, to] по одному и по
// завершении перечитывает набор записей. Ошибки отдельных дней не
// возвращаются, а учитываются в Result.Failed.
func (a *App) SyncRange(ctx context.Context, from, to string, onProgress sync.ProgressFunc) (sync.Result, error) {
	job, err := sync.NewJob(from, to)
	if err != nil {
		return sync.Result{}, err
	}

	started := time.Now()
	res, err := a.orchestrator.Run(ctx, job, onProgress)
	if errors.Is(err, sync.ErrAlreadyRunning) {
		return res, fmt.Errorf("синхронизация уже выполняется: %w", err)
	}

	days := job.Days()
	a.stats.record(days[0], days[len(days)-1], started, res)

	return res, err
}

func (a *App) SyncStats() SyncStats {
	return a.stats.get()
}

type statsStore struct {
	mu    gosync.Mutex
	path  string
	stats SyncStats
}

// newStatsStore читает статистику из каталога конфигурации; пустой
// каталог означает хранение только в памяти.
func newStatsStore(dir string) *statsStore {
	s := &statsStore{}
	if dir == "" {
		return s
	}
	s.path = filepath.Join(dir, "sync_stats.json")

	data, err := os.ReadFile(s.path)
	if err != nil {
		return s
	}
	_ = json.Unmarshal(data, &s.stats)
	return s
}

func (s *statsStore) get() SyncStats {
	if s == nil {
		return SyncStats{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *statsStore) record(from, to string, started time.Time, res sync.Result) {
	if s == nil || res.Attempted == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &s.stats
	prevDays := st.TotalDays
	st.TotalRuns++
	st.TotalDays += res.Attempted
	st.TotalFailed += res.Failed
	st.LastFrom = from
	st.LastTo = to
	st.LastStarted = started
	st.LastDuration = res.Elapsed.Seconds()
	st.LastCancelled = res.State != sync.StateCompleted
	st.AvgDaySeconds = (st.AvgDaySeconds*float64(prevDays) + res.Elapsed.Seconds()) / float64(st.TotalDays)

	if s.path == "" {
		return
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(s.path, data, 0600)
}
