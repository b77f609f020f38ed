// Package ports define repository interfaces for data persistence abstraction.
package ports

import (
	"github.com/tejashwikalptaru/livespectrum/internal/domain"
)

// SettingsRepository handles the persistence of visualizer settings.
// Only configuration is stored; frame data is never persisted.
//
// Thread-safety: Implementations must be thread-safe.
type SettingsRepository interface {
	// SaveSettings persists the settings after validating them.
	//
	// Returns an error if the settings are invalid or saving fails.
	SaveSettings(settings domain.VisualizerSettings) error

	// LoadSettings retrieves the saved settings.
	// Missing or invalid stored values fall back to the defaults.
	LoadSettings() (domain.VisualizerSettings, error)

	// Clear removes all saved settings.
	Clear() error
}
