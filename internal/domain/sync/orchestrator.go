package sync

import (
	"context"
	stdsync "sync"
	"sync/atomic"
	"time"

	"golang.org/x/exp/slog"
)

// DaySyncer запускает синхронизацию одного бизнес-дня с POS.
type DaySyncer interface {
	SyncDay(ctx context.Context, businessDay string) error
}

// Refresher перечитывает набор записей после завершения пакета.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type ProgressFunc func(Progress)

// Result итог пакета. Ошибки отдельных дней только подсчитываются.
type Result struct {
	Total     int
	Attempted int
	Succeeded int
	Failed    int
	Elapsed   time.Duration
	State     State
}

type Option func(*Orchestrator)

// WithTickInterval задаёт период обновления прошедшего времени.
func WithTickInterval(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.tick = d
		}
	}
}

// WithDayTimeout ограничивает время одного дня. 0 отключает ограничение.
func WithDayTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.dayTimeout = d
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// Orchestrator последовательно синхронизирует дни диапазона, по одному
// запросу за раз.
type Orchestrator struct {
	syncer     DaySyncer
	refresher  Refresher
	log        *slog.Logger
	tick       time.Duration
	dayTimeout time.Duration
	now        func() time.Time
	running    atomic.Bool
}

func NewOrchestrator(syncer DaySyncer, refresher Refresher, log *slog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		syncer:    syncer,
		refresher: refresher,
		log:       log.With("component", "sync_orchestrator"),
		tick:      time.Second,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run выполняет задание до конца. Отмена ctx проверяется между днями:
// задание возвращается в Idle, а обновление записей всё равно запускается,
// если хотя бы один день был обработан.
func (o *Orchestrator) Run(ctx context.Context, job *Job, onProgress ProgressFunc) (Result, error) {
	if !o.running.CompareAndSwap(false, true) {
		return Result{}, ErrAlreadyRunning
	}
	defer o.running.Store(false)

	started := o.now()
	if err := job.start(started); err != nil {
		return Result{}, err
	}

	var emitMu stdsync.Mutex
	emit := func() {
		if onProgress == nil {
			return
		}
		emitMu.Lock()
		defer emitMu.Unlock()
		onProgress(job.Snapshot())
	}

	done := make(chan struct{})
	var wg stdsync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(o.tick)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				job.tick(o.now())
				emit()
			}
		}
	}()
	stopTicker := func() {
		close(done)
		wg.Wait()
	}

	log := o.log.With("from", job.days[0], "to", job.days[len(job.days)-1], "days", len(job.days))
	log.Info("sync started")
	emit()

	for i, day := range job.days {
		if err := ctx.Err(); err != nil {
			stopTicker()
			job.abort(o.now())
			emit()
			log.Warn("sync cancelled", "attempted", i)
			if job.attempted() > 0 {
				o.refresh(context.WithoutCancel(ctx))
			}
			return job.result(o.now().Sub(started)), err
		}

		job.begin(day)
		err := o.syncDay(ctx, day)
		if err != nil {
			log.Warn("day sync failed", "business_day", day, "error", err)
		}
		job.advance(err == nil, o.now())

		if i < len(job.days)-1 {
			emit()
		}
	}

	stopTicker()
	job.complete(o.now())
	emit()

	res := job.result(o.now().Sub(started))
	log.Info("sync completed", "succeeded", res.Succeeded, "failed", res.Failed)

	o.refresh(ctx)
	return res, nil
}

func (o *Orchestrator) syncDay(ctx context.Context, day string) error {
	if o.dayTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.dayTimeout)
		defer cancel()
	}
	return o.syncer.SyncDay(ctx, day)
}

func (o *Orchestrator) refresh(ctx context.Context) {
	if o.refresher == nil {
		return
	}
	if err := o.refresher.Refresh(ctx); err != nil {
		o.log.Warn("refresh after sync failed", "error", err)
	}
}
