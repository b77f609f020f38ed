package mock

import (
	"errors"
	"testing"

	"github.com/tejashwikalptaru/livespectrum/internal/domain"
)

// TestNewHost tests creating a new mock host.
func TestNewHost(t *testing.T) {
	host := NewHost()

	if !host.Supported() {
		t.Error("New host should be supported")
	}

	if host.ActiveTaps() != 0 {
		t.Errorf("Expected 0 taps, got %d", host.ActiveTaps())
	}
}

// TestConnectOncePerElement tests that a second connect is refused.
func TestConnectOncePerElement(t *testing.T) {
	host := NewHost()
	element := NewElement("radio")

	if _, err := host.Connect(element); err != nil {
		t.Fatalf("First Connect failed: %v", err)
	}

	_, err := host.Connect(element)
	if !errors.Is(err, domain.ErrAlreadyBound) {
		t.Errorf("Expected ErrAlreadyBound, got %v", err)
	}

	if host.ActiveTaps() != 1 {
		t.Errorf("Expected 1 tap, got %d", host.ActiveTaps())
	}
	if host.ConnectCalls() != 2 {
		t.Errorf("Expected 2 connect calls, got %d", host.ConnectCalls())
	}

	if _, ok := host.Tap(element); !ok {
		t.Error("Tap should return the bound tap")
	}
}

// TestConnectUnsupported tests the unsupported host path.
func TestConnectUnsupported(t *testing.T) {
	host := NewHost()
	host.SetUnsupported(true)

	_, err := host.Connect(NewElement("radio"))
	if !errors.Is(err, domain.ErrUnsupported) {
		t.Errorf("Expected ErrUnsupported, got %v", err)
	}
	if host.ActiveTaps() != 0 {
		t.Errorf("Expected 0 taps, got %d", host.ActiveTaps())
	}
}

// TestTapSamples tests the generated signal and closing.
func TestTapSamples(t *testing.T) {
	tap := NewTap(44100, 440)

	buf, err := tap.Samples(512)
	if err != nil {
		t.Fatalf("Samples failed: %v", err)
	}
	if len(buf.Data) != 512 {
		t.Errorf("Expected 512 samples, got %d", len(buf.Data))
	}
	for i, v := range buf.Data {
		if v < -1 || v > 1 {
			t.Fatalf("Sample %d out of range: %f", i, v)
		}
	}

	tap.Close()
	if _, err := tap.Samples(512); !errors.Is(err, domain.ErrTapClosed) {
		t.Errorf("Expected ErrTapClosed, got %v", err)
	}
	if tap.Reads() != 1 {
		t.Errorf("Expected 1 read, got %d", tap.Reads())
	}
}

// TestTapSuspendResume tests the suspend flag.
func TestTapSuspendResume(t *testing.T) {
	tap := NewTap(44100)
	tap.Suspend()
	if !tap.Suspended() {
		t.Error("Tap should be suspended")
	}
	tap.Resume()
	if tap.Suspended() {
		t.Error("Tap should not be suspended after Resume")
	}
}

// TestElementSignals tests that play and pause raise signals only on change.
func TestElementSignals(t *testing.T) {
	element := NewElement("radio")

	var got []domain.MediaSignal
	element.OnSignal(func(s domain.MediaSignal) { got = append(got, s) })

	element.Load()
	element.Play()
	element.Play()
	element.Pause()
	element.Pause()

	want := []domain.MediaSignal{
		domain.SignalLoadStart, domain.SignalLoadedData, domain.SignalCanPlay,
		domain.SignalPlay, domain.SignalPause,
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d signals, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Signal %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if !element.Paused() {
		t.Error("Element should be paused")
	}
}
