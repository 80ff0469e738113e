package driven

// ConfigStore provides persistent key-value configuration with
// dot-notation keys.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string value, "" if missing or mistyped.
	GetString(key string) string

	// GetInt retrieves an integer value, 0 if missing or mistyped.
	GetInt(key string) int

	// GetBool retrieves a boolean value, false if missing or mistyped.
	GetBool(key string) bool

	// GetStringSlice retrieves a string slice value.
	GetStringSlice(key string) []string

	// Set stores a value and persists immediately.
	Set(key string, value any) error

	// Save persists the current configuration.
	Save() error

	// Load re-reads configuration from the backing store.
	Load() error

	// Path returns the backing file path.
	Path() string
}
