package sync

// Config holds configuration for the sync feature.
type Config struct {
	// Enabled indicates whether the sync feature is loaded.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// StateDir is the directory holding the JSON state documents when the
	// file-backed store is used.
	StateDir string `mapstructure:"state_dir" default:"./data"`
	// DefaultVertical is the vertical assigned to products the classifier
	// does not place anywhere else.
	DefaultVertical string `mapstructure:"default_vertical" default:"equipment"`
}
