// internal/app/system/countdown/countdown.go

// Package countdown publishes a once-per-second display string for the
// time remaining until a submission deadline.
package countdown

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Closed is displayed once the deadline has passed.
const Closed = "Submission Closed"

// Remaining formats the time left between now and deadline. At or past
// the deadline it returns Closed; it never shows a negative duration.
func Remaining(now, deadline time.Time) string {
	d := deadline.Sub(now)
	if d <= 0 {
		return Closed
	}

	days := int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int(d / time.Minute)
	d -= time.Duration(minutes) * time.Minute
	seconds := int(d / time.Second)

	if days > 0 {
		return fmt.Sprintf("%dd %02dh %02dm %02ds", days, hours, minutes, seconds)
	}
	return fmt.Sprintf("%02dh %02dm %02ds", hours, minutes, seconds)
}

// Ticker recomputes the remaining-time string every second and serves
// the latest value to concurrent readers.
type Ticker struct {
	deadline time.Time
	now      func() time.Time
	log      *zap.Logger

	mu      sync.RWMutex
	current string

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewTicker creates a stopped ticker for the given deadline.
func NewTicker(deadline time.Time, logger *zap.Logger) *Ticker {
	t := &Ticker{
		deadline: deadline,
		now:      time.Now,
		log:      logger,
		stopCh:   make(chan struct{}),
	}
	t.current = Remaining(t.now(), deadline)
	return t
}

// Start launches the background refresh loop. It returns immediately.
func (t *Ticker) Start() {
	t.wg.Add(1)
	go t.run()
}

func (t *Ticker) run() {
	defer t.wg.Done()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopCh:
			return
		case <-ticker.C:
			val := Remaining(t.now(), t.deadline)
			t.mu.Lock()
			changed := val != t.current
			t.current = val
			t.mu.Unlock()
			if changed && val == Closed {
				t.log.Info("submission window closed",
					zap.Time("deadline", t.deadline))
			}
		}
	}
}

// Stop halts the refresh loop and waits for it to exit. Safe to call
// more than once.
func (t *Ticker) Stop() {
	t.stopOnce.Do(func() { close(t.stopCh) })
	t.wg.Wait()
}

// Current returns the most recently computed display string.
func (t *Ticker) Current() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// Deadline returns the deadline the ticker counts toward.
func (t *Ticker) Deadline() time.Time {
	return t.deadline
}
