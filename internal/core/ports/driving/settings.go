package driving

import "github.com/custodia-labs/verity/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save validates and persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting by its config key.
	Set(key, value string) error

	// Keys lists the config keys accepted by Set.
	Keys() []string

	// Location describes where settings are stored.
	Location() string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
