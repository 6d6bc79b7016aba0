package settings

import (
	"fmt"

	"github.com/devantler-tech/settings/pkg/settings/codec"
)

// Option configures a store at construction time.
type Option func(*config)

// config collects construction options before they are validated.
type config struct {
	path         string
	readPath     string
	writePath    string
	format       codec.Format
	registry     *codec.Registry
	autoSanitize bool
	saveOnChange bool
	saveOnClose  bool
	expandEnv    bool
	logger       Logger
}

// WithPath sets a single path used for both reading and writing. Mutually
// exclusive with [WithReadWritePaths].
func WithPath(path string) Option {
	return func(c *config) {
		c.path = path
	}
}

// WithReadWritePaths sets separate read and write paths. Mutually exclusive
// with [WithPath]. When no explicit format is given, both paths must share
// a file extension.
func WithReadWritePaths(readPath, writePath string) Option {
	return func(c *config) {
		c.readPath = readPath
		c.writePath = writePath
	}
}

// WithFormat overrides the format inferred from the file extension.
func WithFormat(format codec.Format) Option {
	return func(c *config) {
		c.format = format
	}
}

// WithRegistry replaces the default codec registry, restricting or
// extending the set of usable formats.
func WithRegistry(registry *codec.Registry) Option {
	return func(c *config) {
		c.registry = registry
	}
}

// WithAutoSanitize reconciles the tree against the default schema
// automatically after every load and before every save.
func WithAutoSanitize() Option {
	return func(c *config) {
		c.autoSanitize = true
	}
}

// WithSaveOnChange persists the tree immediately after every mutation
// through the store's accessors. Loading never triggers a save.
func WithSaveOnChange() Option {
	return func(c *config) {
		c.saveOnChange = true
	}
}

// WithSaveOnClose persists the tree when the store is closed. This replaces
// process-exit hooks with an explicit lifecycle: acquire the store, defer
// Close, and the final save happens on the way out.
func WithSaveOnClose() Option {
	return func(c *config) {
		c.saveOnClose = true
	}
}

// WithEnvExpansion expands ${VAR} and ${VAR:-default} placeholders in the
// file content on every load, before decoding. Unset variables without a
// default expand to the empty string and are logged as warnings.
func WithEnvExpansion() Option {
	return func(c *config) {
		c.expandEnv = true
	}
}

// WithLogger sets the logger receiving the store's leveled messages. When
// absent, warnings and errors are printed to standard error.
func WithLogger(logger Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// resolve validates the collected options and fills in derived values.
func (c *config) resolve() error {
	hasPair := c.readPath != "" || c.writePath != ""

	switch {
	case c.path == "" && !hasPair:
		return fmt.Errorf("%w: a path or a read/write path pair is required", ErrInvalidPath)
	case c.path != "" && hasPair:
		return fmt.Errorf("%w: a path and a read/write path pair are mutually exclusive", ErrInvalidPath)
	case hasPair && (c.readPath == "" || c.writePath == ""):
		return fmt.Errorf("%w: both a read path and a write path are required", ErrInvalidPath)
	}

	if c.path != "" {
		c.readPath = c.path
		c.writePath = c.path
	}

	if c.format == "" {
		format, err := codec.FormatFromPaths(c.readPath, c.writePath)
		if err != nil {
			return err
		}

		c.format = format
	} else {
		format, err := codec.ParseFormat(string(c.format))
		if err != nil {
			return err
		}

		c.format = format
	}

	if c.registry == nil {
		c.registry = DefaultRegistry()
	}

	if c.logger == nil {
		c.logger = newDefaultLogger()
	}

	return nil
}
