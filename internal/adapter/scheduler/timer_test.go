package scheduler

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/livespectrum/internal/logger"
	"github.com/tejashwikalptaru/livespectrum/internal/ports"
	"github.com/tejashwikalptaru/livespectrum/internal/testutil"
)

func TestTimerScheduler_FiresOnce(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	s := NewTimerScheduler(logger.NewTestLogger(), 5*time.Millisecond, nil)
	defer s.Close()

	var calls int32
	done := make(chan struct{})
	s.RequestFrame(func(time.Time) {
		atomic.AddInt32(&calls, 1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("frame never fired")
	}

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, 0, s.Pending())
}

func TestTimerScheduler_RescheduleFromCallback(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	s := NewTimerScheduler(logger.NewTestLogger(), 2*time.Millisecond, nil)
	defer s.Close()

	var mu sync.Mutex
	var stamps []time.Time
	done := make(chan struct{})

	var step ports.FrameCallback
	step = func(now time.Time) {
		mu.Lock()
		stamps = append(stamps, now)
		n := len(stamps)
		mu.Unlock()
		if n == 5 {
			close(done)
			return
		}
		s.RequestFrame(step)
	}
	s.RequestFrame(step)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("chain did not complete")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, stamps, 5)
	for i := 1; i < len(stamps); i++ {
		assert.True(t, stamps[i].After(stamps[i-1]), "each reschedule lands on a later tick")
	}
}

func TestTimerScheduler_Cancel(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	s := NewTimerScheduler(logger.NewTestLogger(), 2*time.Millisecond, nil)
	defer s.Close()

	var fired int32
	id := s.RequestFrame(func(time.Time) { atomic.AddInt32(&fired, 1) })
	s.CancelFrame(id)
	s.CancelFrame(id)
	s.CancelFrame(9999)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))
}

func TestTimerScheduler_Dispatcher(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	var dispatched int32
	dispatch := func(fn func()) {
		atomic.AddInt32(&dispatched, 1)
		fn()
	}

	s := NewTimerScheduler(logger.NewTestLogger(), 2*time.Millisecond, dispatch)
	defer s.Close()

	done := make(chan struct{})
	s.RequestFrame(func(time.Time) { close(done) })
	<-done

	assert.GreaterOrEqual(t, atomic.LoadInt32(&dispatched), int32(1))
}

func TestTimerScheduler_Close(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	s := NewTimerScheduler(logger.NewTestLogger(), time.Millisecond, nil)
	s.RequestFrame(func(time.Time) {})
	s.Close()
	s.Close()

	var fired int32
	s.RequestFrame(func(time.Time) { atomic.AddInt32(&fired, 1) })
	time.Sleep(10 * time.Millisecond)

	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))
	assert.Equal(t, 0, s.Pending())
}
