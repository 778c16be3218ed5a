package driven

// ConfigStore provides access to application configuration.
// Keys use dot notation ("search.api_key").
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString returns "" if the key is missing or not a string.
	GetString(key string) string

	// GetInt returns 0 if the key is missing or not a number.
	GetInt(key string) int

	// GetFloat returns 0 if the key is missing or not a number.
	GetFloat(key string) float64

	// GetBool returns false if the key is missing or not a boolean.
	GetBool(key string) bool

	// Set stores a configuration value and persists it immediately.
	Set(key string, value any) error

	// Path describes where the configuration lives.
	Path() string
}
