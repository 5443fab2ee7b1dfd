package config

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; must be provided via flag or environment.
	DefaultDatabaseURL = ""

	// DefaultStatusIntervalMinutes is the spacing between automatic
	// event-status reconciliation passes.
	DefaultStatusIntervalMinutes = 5

	// DefaultSessionTTLHours is how long a login session stays valid.
	DefaultSessionTTLHours = 72
)
