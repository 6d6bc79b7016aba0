// Package settings persists application settings to a file in JSON, YAML,
// TOML or INI format and keeps the on-disk file and the in-memory tree in
// sync.
//
// A [Store] owns a file path, a format and a default schema. On first run
// it seeds the file from the defaults; afterwards it loads the file,
// exposes the tree through mapping-style accessors, and writes it back on
// [Store.Save]. When sanitization is enabled, stored data is reconciled
// against the default schema around every load and save: unknown keys are
// dropped and missing keys are filled in with their defaults, level by
// level.
//
// The format is inferred from the file extension, or set explicitly with
// [WithFormat]. Codecs are looked up in a [codec.Registry]; the default
// registry carries all four formats, and a custom registry restricts or
// replaces them.
//
// Stores are not safe for concurrent use and perform no file locking. All
// operations run synchronously on the calling goroutine.
package settings
