package prayer

import (
	"context"
	"sync"
	"time"
)

// ScheduleSource yields the timetable for a calendar date.
type ScheduleSource interface {
	Today(ctx context.Context, date time.Time) *DaySchedule
}

// Ticker keeps the "next prayer" designation current by re-evaluating the
// resolver on a fixed interval.
type Ticker struct {
	source   ScheduleSource
	interval time.Duration
	now      func() time.Time

	mu      sync.RWMutex
	current string
	day     *DaySchedule

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewTicker(source ScheduleSource, interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Ticker{
		source:   source,
		interval: interval,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start evaluates once immediately, then on every tick until Stop.
func (t *Ticker) Start() {
	t.evaluate()

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-t.ctx.Done():
				return
			case <-ticker.C:
				t.evaluate()
			}
		}
	}()
}

func (t *Ticker) evaluate() {
	now := t.now()
	day := t.source.Today(t.ctx, now)

	name, _ := Next(day.Times, now.Hour()*60+now.Minute())

	t.mu.Lock()
	t.current = name
	t.day = day
	t.mu.Unlock()
}

// Current returns the latest designation and the schedule it was drawn from.
func (t *Ticker) Current() (string, *DaySchedule) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current, t.day
}

func (t *Ticker) Stop() {
	t.cancel()
	t.wg.Wait()
}
