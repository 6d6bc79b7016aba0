package settings

import (
	"fmt"
	"os"
	"sort"

	"github.com/devantler-tech/settings/pkg/envvar"
	"github.com/devantler-tech/settings/pkg/settings/codec"
	"github.com/devantler-tech/settings/pkg/settings/codec/inicodec"
	"github.com/devantler-tech/settings/pkg/settings/sanitize"
)

// filePerm is the permission mode settings files are created with.
const filePerm = 0o600

// Store keeps a settings tree synchronized with a file on disk.
//
// The type parameter is the caller's settings type; a [Converter] bridges
// between it and the tree. Use [NewTree] for a map-backed store and
// [NewStruct] for a typed-record store.
//
// A store is single-threaded: no locking, no retries, and exactly one file
// handle per load or save, released on every exit path.
type Store[T any] struct {
	readPath     string
	writePath    string
	format       codec.Format
	codec        codec.Codec
	converter    Converter[T]
	defaults     map[string]any
	tree         map[string]any
	autoSanitize bool
	saveOnChange bool
	saveOnClose  bool
	expandEnv    bool
	logger       Logger
	closed       bool
}

// New creates a store for the given default settings and converter.
//
// When the read path exists the file is loaded; otherwise the tree is
// seeded with a deep copy of the defaults and written out immediately.
// Configuration problems (path, format, codec availability, missing
// defaults) fail construction.
func New[T any](defaults T, converter Converter[T], opts ...Option) (*Store[T], error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	err := cfg.resolve()
	if err != nil {
		return nil, err
	}

	fileCodec, err := cfg.registry.Lookup(cfg.format)
	if err != nil {
		return nil, err
	}

	defaultTree, err := converter.ToTree(defaults)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingDefaults, err)
	}

	if defaultTree == nil {
		return nil, ErrMissingDefaults
	}

	// The defaults are reference data for sanitization; copy them so later
	// mutation by the caller never leaks into the store.
	defaultTree, err = sanitize.CloneTree(defaultTree)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingDefaults, err)
	}

	store := &Store[T]{
		readPath:     cfg.readPath,
		writePath:    cfg.writePath,
		format:       cfg.format,
		codec:        fileCodec,
		converter:    converter,
		defaults:     defaultTree,
		autoSanitize: cfg.autoSanitize,
		saveOnChange: cfg.saveOnChange,
		saveOnClose:  cfg.saveOnClose,
		expandEnv:    cfg.expandEnv,
		logger:       cfg.logger,
	}

	store.logger.Infof(
		"settings store initialized: read path %q, write path %q, format %s",
		store.readPath, store.writePath, store.format,
	)

	err = store.firstTimeLoad()
	if err != nil {
		return nil, err
	}

	return store, nil
}

// NewTree creates a store whose settings type is the tree itself.
func NewTree(defaults map[string]any, opts ...Option) (*Store[map[string]any], error) {
	return New[map[string]any](defaults, TreeConverter{}, opts...)
}

// NewStruct creates a store whose settings type is a typed record,
// converted through reflection.
func NewStruct[T any](defaults T, opts ...Option) (*Store[T], error) {
	return New[T](defaults, NewStructConverter[T](), opts...)
}

// firstTimeLoad loads the file when it exists, otherwise seeds the tree
// from the defaults and persists it.
func (s *Store[T]) firstTimeLoad() error {
	_, err := os.Stat(s.readPath)
	if os.IsNotExist(err) {
		s.logger.Infof("settings file %q does not exist, applying defaults and saving", s.readPath)

		tree, cloneErr := sanitize.CloneTree(s.defaults)
		if cloneErr != nil {
			return fmt.Errorf("%w: %w", ErrSave, cloneErr)
		}

		s.tree = tree

		return s.Save()
	}

	s.logger.Infof("settings file %q exists, loading", s.readPath)

	return s.Load()
}

// Load reads the file at the read path and replaces the in-memory tree.
// With env expansion enabled, ${VAR} placeholders in the file content are
// resolved before decoding. When auto-sanitize is enabled the loaded tree
// is reconciled against the defaults afterwards. Loading never triggers
// save-on-change.
func (s *Store[T]) Load() error {
	data, err := os.ReadFile(s.readPath)
	if err != nil {
		s.logger.Errorf("error while reading settings from %q: %v", s.readPath, err)

		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	if s.expandEnv {
		var missing []string

		data, missing = envvar.ExpandBytes(data)
		for _, name := range missing {
			s.logger.Warnf("environment variable %q referenced in %q is not set", name, s.readPath)
		}
	}

	tree, err := s.codec.Unmarshal(data)
	if err != nil {
		s.logger.Errorf("error while decoding settings from %q: %v", s.readPath, err)

		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	s.tree = tree

	if s.autoSanitize {
		return s.Sanitize()
	}

	return nil
}

// Save writes the in-memory tree to the write path, truncating previous
// contents. When auto-sanitize is enabled the tree is reconciled against
// the defaults first. The tree is fully encoded before the file is opened,
// so an encoding error never touches the file; a failed write can still
// leave it partially written.
func (s *Store[T]) Save() error {
	if s.autoSanitize {
		err := s.Sanitize()
		if err != nil {
			return err
		}
	}

	if s.format == codec.FormatINI && !inicodec.ValidShape(s.tree) {
		s.logger.Errorf(
			"the ini format requires top-level keys to be sections with settings as nested mappings",
		)

		return ErrIniFormat
	}

	data, err := s.codec.Marshal(s.tree)
	if err != nil {
		s.logger.Errorf("error while encoding settings for %q: %v", s.writePath, err)

		return fmt.Errorf("%w: %w", ErrSave, err)
	}

	err = os.WriteFile(s.writePath, data, filePerm)
	if err != nil {
		s.logger.Errorf("error while writing settings to %q: %v", s.writePath, err)

		return fmt.Errorf("%w: %w", ErrSave, err)
	}

	return nil
}

// Sanitize reconciles the tree against the default schema in place,
// removing keys absent from the defaults and adding missing keys with
// their default values. Best effort: on failure the tree may be left
// partially modified.
func (s *Store[T]) Sanitize() error {
	result, err := sanitize.Sanitize(s.tree, s.defaults)
	if err != nil {
		s.logger.Errorf("error while sanitizing settings: %v", err)

		return fmt.Errorf("%w: %w", ErrSanitize, err)
	}

	if !result.Empty() {
		s.logger.Infof(
			"sanitized settings: removed %d key(s), added %d key(s)",
			len(result.Remove), len(result.Add),
		)
	}

	return nil
}

// Get returns the value stored at a top-level key.
func (s *Store[T]) Get(key string) (any, bool) {
	value, ok := s.tree[key]

	return value, ok
}

// Set stores a value at a top-level key. With save-on-change enabled the
// tree is persisted immediately.
func (s *Store[T]) Set(key string, value any) error {
	s.tree[key] = value

	return s.saveOnChangeNow()
}

// Delete removes a top-level key. With save-on-change enabled the tree is
// persisted immediately.
func (s *Store[T]) Delete(key string) error {
	delete(s.tree, key)

	return s.saveOnChangeNow()
}

// Has reports whether a top-level key exists.
func (s *Store[T]) Has(key string) bool {
	_, ok := s.tree[key]

	return ok
}

// Keys returns the top-level keys in sorted order.
func (s *Store[T]) Keys() []string {
	keys := make([]string, 0, len(s.tree))
	for key := range s.tree {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// Len returns the number of top-level keys.
func (s *Store[T]) Len() int {
	return len(s.tree)
}

// Tree returns the live settings tree. Mutations through the returned map
// are visible to the store but do not trigger save-on-change.
func (s *Store[T]) Tree() map[string]any {
	return s.tree
}

// SetTree replaces the whole settings tree. With save-on-change enabled the
// tree is persisted immediately.
func (s *Store[T]) SetTree(tree map[string]any) error {
	if tree == nil {
		tree = make(map[string]any)
	}

	s.tree = tree

	return s.saveOnChangeNow()
}

// Settings converts the tree into the caller's settings type.
func (s *Store[T]) Settings() (T, error) {
	return s.converter.FromTree(s.tree)
}

// SetSettings replaces the tree from the caller's settings type. With
// save-on-change enabled the tree is persisted immediately.
func (s *Store[T]) SetSettings(value T) error {
	tree, err := s.converter.ToTree(value)
	if err != nil {
		return err
	}

	return s.SetTree(tree)
}

// Defaults returns the default schema tree. Callers must treat it as
// read-only; it is the reference data sanitization reconciles against.
func (s *Store[T]) Defaults() map[string]any {
	return s.defaults
}

// Format returns the store's settings format.
func (s *Store[T]) Format() codec.Format {
	return s.format
}

// ReadPath returns the path settings are loaded from.
func (s *Store[T]) ReadPath() string {
	return s.readPath
}

// WritePath returns the path settings are written to.
func (s *Store[T]) WritePath() string {
	return s.writePath
}

// Close finishes the store's lifecycle. With save-on-close enabled the tree
// is persisted one final time. Close is idempotent; only the first call
// saves.
func (s *Store[T]) Close() error {
	if s.closed {
		return nil
	}

	s.closed = true

	if s.saveOnClose {
		return s.Save()
	}

	return nil
}

func (s *Store[T]) saveOnChangeNow() error {
	if !s.saveOnChange {
		return nil
	}

	return s.Save()
}
