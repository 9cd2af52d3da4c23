package constants

const (
	// AppName is used for config paths, the Postgres search_path and the
	// logger prefix.
	AppName = "habitkit"

	// DefaultConfigPath is the default storage location. Kong expands the
	// leading tilde.
	DefaultConfigPath = "~/.config/habitkit/habitkit.db"
)
