package settings

import "errors"

var (
	// ErrInvalidPath indicates the path configuration is missing or
	// contradictory: a store needs either a single path or a read/write
	// pair, never both.
	ErrInvalidPath = errors.New("invalid path configuration")

	// ErrMissingDefaults indicates no default settings were provided.
	ErrMissingDefaults = errors.New("default settings are required")

	// ErrLoad wraps failures while reading settings from the file.
	ErrLoad = errors.New("failed to load settings")

	// ErrSave wraps failures while writing settings to the file.
	ErrSave = errors.New("failed to save settings")

	// ErrSanitize wraps failures during the sanitization diff or its
	// application.
	ErrSanitize = errors.New("failed to sanitize settings")

	// ErrIniFormat indicates the tree violates the two-level shape the INI
	// format requires.
	ErrIniFormat = errors.New(
		"ini format requires top-level keys to be sections with settings as nested mappings",
	)
)
