package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName           = "timetabled"
	DefaultKeyringKey = "mapbox-access-token"
	DefaultConfigDir  = "~/.config/timetabled"
	Version           = "v0.2.0"

	// DateFormat is the canonical date key format used throughout the
	// application and in the persisted store (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard event time format (HH:MM)
	TimeFormat = "15:04"

	// MaxEventTextLen is the hard cap on event text, enforced at the input
	// boundary
	MaxEventTextLen = 60

	// MaxSuggestions caps geocoding results per query
	MaxSuggestions = 5

	// DebounceInterval is how long the destination search waits after the
	// last keystroke before querying the geocoder
	DebounceInterval = 300 * time.Millisecond

	// Env var consulted when no token is stored in the OS keyring
	TokenEnvVar = "TIMETABLED_MAPBOX_TOKEN"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "timetabled-"

	// Store file names inside the config directory
	JSONStoreFile   = "events.json"
	SQLiteStoreFile = "events.db"
	LockFileName    = "timetabled.lock"

	// Session States
	StateCalendar SessionState = iota
	StateEditor
	StateMap
	StateConfirmDelete
)
