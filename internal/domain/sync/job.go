package sync

import (
	"fmt"
	"math"
	stdsync "sync"
	"time"

	"closeouts/internal/domain/closeout"
)

// State состояние задания синхронизации.
// Переходы: Idle -> Running -> {Completed, Idle}. Ошибки отдельных дней состояние не меняют.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Progress неизменяемый снимок прогресса задания.
type Progress struct {
	State            State
	Completed        int
	Total            int
	Failed           int
	Percent          int
	ElapsedSeconds   int
	RemainingSeconds *int
	CurrentDay       string
}

// Job задание синхронизации диапазона дней. Живёт только в рамках сессии.
type Job struct {
	mu stdsync.Mutex

	days      []string
	state     State
	completed int
	failed    int
	current   string

	startedAt time.Time
	elapsed   int
	remaining *int
}

// NewJob перечисляет все календарные дни диапазона [from, to] включительно.
func NewJob(from, to string) (*Job, error) {
	days, err := closeout.EnumerateDays(from, to)
	if err != nil {
		return nil, err
	}
	return &Job{days: days}, nil
}

// Days возвращает копию списка дней задания.
func (j *Job) Days() []string {
	return append([]string(nil), j.days...)
}

func (j *Job) Snapshot() Progress {
	j.mu.Lock()
	defer j.mu.Unlock()

	p := Progress{
		State:          j.state,
		Completed:      j.completed,
		Total:          len(j.days),
		Failed:         j.failed,
		ElapsedSeconds: j.elapsed,
		CurrentDay:     j.current,
	}
	if p.Total > 0 {
		p.Percent = int(math.Round(float64(j.completed) / float64(p.Total) * 100))
	}
	if j.remaining != nil {
		r := *j.remaining
		p.RemainingSeconds = &r
	}
	return p
}

func (j *Job) start(now time.Time) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.state == StateRunning {
		return ErrAlreadyRunning
	}
	if len(j.days) == 0 {
		return ErrEmptyJob
	}

	j.state = StateRunning
	j.completed = 0
	j.failed = 0
	j.current = ""
	j.startedAt = now
	j.elapsed = 0
	j.remaining = nil
	return nil
}

func (j *Job) begin(day string) {
	j.mu.Lock()
	j.current = day
	j.mu.Unlock()
}

func (j *Job) tick(now time.Time) {
	j.mu.Lock()
	j.elapsed = elapsedSeconds(j.startedAt, now)
	j.mu.Unlock()
}

// advance отмечает попытку дня завершённой, успешной или нет, и
// пересчитывает оценку оставшегося времени.
func (j *Job) advance(ok bool, now time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.completed++
	if !ok {
		j.failed++
	}
	j.elapsed = elapsedSeconds(j.startedAt, now)
	if j.completed >= len(j.days) {
		zero := 0
		j.remaining = &zero
		return
	}
	j.remaining = estimateRemaining(j.elapsed, j.completed, len(j.days))
}

func (j *Job) complete(now time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()

	zero := 0
	j.state = StateCompleted
	j.current = ""
	j.elapsed = elapsedSeconds(j.startedAt, now)
	j.remaining = &zero
}

func (j *Job) abort(now time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.state = StateIdle
	j.current = ""
	j.elapsed = elapsedSeconds(j.startedAt, now)
	j.remaining = nil
}

func (j *Job) result(elapsed time.Duration) Result {
	j.mu.Lock()
	defer j.mu.Unlock()

	return Result{
		Total:     len(j.days),
		Attempted: j.completed,
		Succeeded: j.completed - j.failed,
		Failed:    j.failed,
		Elapsed:   elapsed,
		State:     j.state,
	}
}

func (j *Job) attempted() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.completed
}

// estimateRemaining возвращает nil, пока не завершён хотя бы один день
// или если дней больше не осталось.
func estimateRemaining(elapsed, completed, total int) *int {
	if completed <= 0 || completed >= total {
		return nil
	}
	eta := int(math.Ceil(float64(elapsed) / float64(completed) * float64(total-completed)))
	return &eta
}

func elapsedSeconds(start, now time.Time) int {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}
