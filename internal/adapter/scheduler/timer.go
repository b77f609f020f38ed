// Package scheduler provides frame schedulers standing in for a display
// refresh callback.
package scheduler

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/tejashwikalptaru/livespectrum/internal/ports"
)

// Dispatcher runs fn on the thread that owns the render targets.
// The UI passes fyne.Do; tests and headless runs call fn directly.
type Dispatcher func(fn func())

// Direct runs fn on the calling goroutine.
func Direct(fn func()) { fn() }

// TimerScheduler fires pending frame requests once per interval.
//
// Every request fires at most once, in request order, on the dispatcher. A
// request made from inside a callback fires on the next interval, never in
// the same one.
type TimerScheduler struct {
	logger   *slog.Logger
	interval time.Duration
	dispatch Dispatcher

	mu      sync.Mutex
	next    ports.FrameRequest
	pending map[ports.FrameRequest]ports.FrameCallback
	closed  bool

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewTimerScheduler starts a scheduler ticking every interval.
// Call Close to stop its goroutine.
func NewTimerScheduler(logger *slog.Logger, interval time.Duration, dispatch Dispatcher) *TimerScheduler {
	if dispatch == nil {
		dispatch = Direct
	}
	if interval <= 0 {
		interval = time.Second / 60
	}

	s := &TimerScheduler{
		logger:   logger,
		interval: interval,
		dispatch: dispatch,
		pending:  make(map[ports.FrameRequest]ports.FrameCallback),
		stop:     make(chan struct{}),
	}

	s.wg.Add(1)
	go s.run()

	logger.Debug("frame scheduler started", slog.Duration("interval", interval))

	return s
}

func (s *TimerScheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.fire(now)
		}
	}
}

// fire dispatches every request pending at this tick.
func (s *TimerScheduler) fire(now time.Time) {
	s.mu.Lock()
	if len(s.pending) == 0 {
		s.mu.Unlock()
		return
	}
	ids := make([]ports.FrameRequest, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	cbs := make([]ports.FrameCallback, len(ids))
	for i, id := range ids {
		cbs[i] = s.pending[id]
		delete(s.pending, id)
	}
	s.mu.Unlock()

	s.dispatch(func() {
		for _, cb := range cbs {
			cb(now)
		}
	})
}

// RequestFrame schedules cb for the next tick.
// Requests made after Close never fire.
func (s *TimerScheduler) RequestFrame(cb ports.FrameCallback) ports.FrameRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	if !s.closed {
		s.pending[s.next] = cb
	}
	return s.next
}

// CancelFrame drops a pending request.
func (s *TimerScheduler) CancelFrame(id ports.FrameRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)
}

// Pending returns the number of requests waiting for a tick.
func (s *TimerScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Close stops the ticker goroutine and drops pending requests.
// It waits for an in-flight tick to be dispatched.
func (s *TimerScheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.pending = make(map[ports.FrameRequest]ports.FrameCallback)
	s.mu.Unlock()

	close(s.stop)
	s.wg.Wait()

	s.logger.Debug("frame scheduler stopped")
}

// Verify interface implementation at compile time.
var _ ports.FrameScheduler = (*TimerScheduler)(nil)
