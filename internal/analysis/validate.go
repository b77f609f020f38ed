package analysis

import (
	"github.com/tejashwikalptaru/livespectrum/internal/domain"
)

// ValidateWindowSize checks that n is a power of two within the analyzer range.
func ValidateWindowSize(n int) error {
	if !domain.IsPowerOfTwo(n) || n < domain.MinWindowSize || n > domain.MaxWindowSize {
		return domain.NewFieldError("WindowSize", n, domain.ErrInvalidWindowSize)
	}
	return nil
}

// ValidateSmoothing checks that the averaging weight is in [0, 1).
func ValidateSmoothing(tau float64) error {
	if tau < 0 || tau >= 1 {
		return domain.NewFieldError("Smoothing", tau, domain.ErrInvalidSmoothing)
	}
	return nil
}

func validate(settings domain.VisualizerSettings) error {
	if err := ValidateWindowSize(settings.WindowSize); err != nil {
		return err
	}
	if err := ValidateSmoothing(settings.Smoothing); err != nil {
		return err
	}
	if settings.MinDecibels >= settings.MaxDecibels {
		return domain.NewValidationError("MinDecibels", settings.MinDecibels, "must be lower than MaxDecibels")
	}
	return nil
}
