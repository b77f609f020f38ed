// Package memory implements repositories on top of Fyne's preferences store.
package memory

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"github.com/tejashwikalptaru/livespectrum/internal/domain"
	"github.com/tejashwikalptaru/livespectrum/internal/ports"
)

const (
	keyWindowSize     = "visualizer.window_size"
	keySmoothing      = "visualizer.smoothing"
	keyMinDecibels    = "visualizer.min_decibels"
	keyMaxDecibels    = "visualizer.max_decibels"
	keyBarCount       = "visualizer.bar_count"
	keyFrameInterval  = "visualizer.frame_interval_us"
	keyLiveInitDelay  = "visualizer.live_init_delay_ms"
	keyPauseOnStop    = "visualizer.pause_on_stop"
	keyForceSimulated = "visualizer.force_simulated"
)

var allKeys = []string{
	keyWindowSize, keySmoothing, keyMinDecibels, keyMaxDecibels, keyBarCount,
	keyFrameInterval, keyLiveInitDelay, keyPauseOnStop, keyForceSimulated,
}

// SettingsRepository implements ports.SettingsRepository using Fyne preferences.
//
// Thread-safe: All operations protected by sync.RWMutex.
type SettingsRepository struct {
	prefs fyne.Preferences
	mu    sync.RWMutex
}

// NewSettingsRepository creates a new settings repository.
// The preferences parameter should be obtained from fyne.CurrentApp().Preferences().
func NewSettingsRepository(prefs fyne.Preferences) *SettingsRepository {
	return &SettingsRepository{
		prefs: prefs,
	}
}

// SaveSettings validates and persists settings.
func (r *SettingsRepository) SaveSettings(settings domain.VisualizerSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.SetInt(keyWindowSize, settings.WindowSize)
	r.prefs.SetFloat(keySmoothing, settings.Smoothing)
	r.prefs.SetFloat(keyMinDecibels, settings.MinDecibels)
	r.prefs.SetFloat(keyMaxDecibels, settings.MaxDecibels)
	r.prefs.SetInt(keyBarCount, settings.BarCount)
	r.prefs.SetInt(keyFrameInterval, int(settings.FrameInterval/time.Microsecond))
	r.prefs.SetInt(keyLiveInitDelay, int(settings.LiveInitDelay/time.Millisecond))
	r.prefs.SetBool(keyPauseOnStop, settings.PauseOnStop)
	r.prefs.SetBool(keyForceSimulated, settings.ForceSimulated)

	return nil
}

// LoadSettings retrieves the saved settings, using defaults for missing keys.
// If the stored combination is invalid the defaults are returned together
// with the validation error.
func (r *SettingsRepository) LoadSettings() (domain.VisualizerSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def := domain.DefaultVisualizerSettings()
	settings := domain.VisualizerSettings{
		WindowSize:     r.prefs.IntWithFallback(keyWindowSize, def.WindowSize),
		Smoothing:      r.prefs.FloatWithFallback(keySmoothing, def.Smoothing),
		MinDecibels:    r.prefs.FloatWithFallback(keyMinDecibels, def.MinDecibels),
		MaxDecibels:    r.prefs.FloatWithFallback(keyMaxDecibels, def.MaxDecibels),
		BarCount:       r.prefs.IntWithFallback(keyBarCount, def.BarCount),
		FrameInterval:  time.Duration(r.prefs.IntWithFallback(keyFrameInterval, int(def.FrameInterval/time.Microsecond))) * time.Microsecond,
		LiveInitDelay:  time.Duration(r.prefs.IntWithFallback(keyLiveInitDelay, int(def.LiveInitDelay/time.Millisecond))) * time.Millisecond,
		PauseOnStop:    r.prefs.BoolWithFallback(keyPauseOnStop, def.PauseOnStop),
		ForceSimulated: r.prefs.BoolWithFallback(keyForceSimulated, def.ForceSimulated),
	}

	if err := settings.Validate(); err != nil {
		return def, err
	}

	return settings, nil
}

// Clear removes all saved settings.
func (r *SettingsRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range allKeys {
		r.prefs.RemoveValue(key)
	}

	return nil
}

// Verify interface implementation
var _ ports.SettingsRepository = (*SettingsRepository)(nil)
