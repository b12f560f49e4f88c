package config

import (
	"strings"

	"github.com/drupkit/drupkit/pkg/models"
)

// maxSyncConcurrency caps the per-pass parse parallelism. Beyond this the
// synchronizer is contending on the disk, not gaining throughput.
const maxSyncConcurrency = 64

// Validate checks the merged settings and returns a *ValidationErrors
// collecting every violation, or nil when the settings are usable.
func Validate(settings *models.Settings) error {
	var errs []ValidationError

	if settings.Sync.Concurrency < 1 {
		errs = append(errs, ValidationError{
			Field:   "sync.concurrency",
			Message: "must be at least 1",
			Value:   settings.Sync.Concurrency,
			Wrapped: ErrInvalidSettings,
		})
	}
	if settings.Sync.Concurrency > maxSyncConcurrency {
		errs = append(errs, ValidationError{
			Field:   "sync.concurrency",
			Message: "must be at most 64",
			Value:   settings.Sync.Concurrency,
			Wrapped: ErrInvalidSettings,
		})
	}

	if strings.TrimSpace(settings.Drush.Bin) == "" {
		errs = append(errs, ValidationError{
			Field:   "drush.bin",
			Message: "must not be empty",
			Wrapped: ErrInvalidSettings,
		})
	}

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}
