// Package sanitize reconciles a settings tree against a default schema.
//
// Sanitization compares key presence level by level: keys present in the
// tree but absent from the defaults are removed, and keys present in the
// defaults but absent from the tree are added with the default's value.
// Value types and contents are never reconciled; a key that is a mapping on
// one side and a scalar on the other is left untouched.
//
// Application is best effort, not transactional. When applying a diff fails
// partway, the tree may be left partially modified.
package sanitize

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jinzhu/copier"
)

// ErrInvalidPath is returned when a dotted key path does not resolve to a
// mapping inside the tree, for example because the tree was mutated between
// computing and applying a diff.
var ErrInvalidPath = errors.New("settings path does not resolve to a mapping")

// Result describes the reconciliation of a settings tree against a default
// schema as two disjoint effects: dotted key paths to remove, and dotted key
// paths to add together with the default value to insert.
type Result struct {
	// Remove lists dotted paths of keys absent from the defaults, sorted.
	Remove []string
	// Add maps dotted paths of keys absent from the tree to the default
	// value each should receive.
	Add map[string]any
}

// Empty reports whether the result describes no changes.
func (r Result) Empty() bool {
	return len(r.Remove) == 0 && len(r.Add) == 0
}

// Sanitize reconciles the tree against the defaults in place and returns
// the diff that was applied.
func Sanitize(tree, defaults map[string]any) (Result, error) {
	result := Diff(tree, defaults)

	err := Apply(tree, result)
	if err != nil {
		return result, err
	}

	return result, nil
}

// Diff computes the removal and addition sets that reconcile the current
// tree against the defaults. The walk is depth-first and current-node-first:
// keys at a level are handled before recursing into nested mappings, and
// recursion only happens when both sides of a key are mappings.
func Diff(current, defaults map[string]any) Result {
	result := Result{Add: make(map[string]any)}
	diffLevel(current, defaults, "", &result)
	sort.Strings(result.Remove)

	return result
}

func diffLevel(current, defaults map[string]any, prefix string, result *Result) {
	for _, key := range sortedKeys(current) {
		path := joinPath(prefix, key)

		defaultValue, exists := defaults[key]
		if !exists {
			result.Remove = append(result.Remove, path)

			continue
		}

		currentNested, currentIsMapping := current[key].(map[string]any)
		defaultNested, defaultIsMapping := defaultValue.(map[string]any)

		if currentIsMapping && defaultIsMapping {
			diffLevel(currentNested, defaultNested, path, result)
		}
		// A key present on both sides is otherwise left untouched, even when
		// the value types differ between tree and defaults.
	}

	for _, key := range sortedKeys(defaults) {
		if _, exists := current[key]; !exists {
			result.Add[joinPath(prefix, key)] = defaults[key]
		}
	}
}

// Apply mutates the tree by deleting every removal path and inserting a deep
// copy of the default value at every addition path. Removals are applied
// before additions, though the two sets are disjoint by construction and the
// order does not affect the outcome.
func Apply(tree map[string]any, result Result) error {
	for _, path := range result.Remove {
		container, key, err := walk(tree, path)
		if err != nil {
			return fmt.Errorf("failed to remove %q: %w", path, err)
		}

		delete(container, key)
	}

	additions := make([]string, 0, len(result.Add))
	for path := range result.Add {
		additions = append(additions, path)
	}

	sort.Strings(additions)

	for _, path := range additions {
		container, key, err := walk(tree, path)
		if err != nil {
			return fmt.Errorf("failed to add %q: %w", path, err)
		}

		value, err := CloneValue(result.Add[path])
		if err != nil {
			return fmt.Errorf("failed to add %q: %w", path, err)
		}

		container[key] = value
	}

	return nil
}

// walk follows a dotted path from the root and returns the mapping holding
// the terminal key, together with that key.
func walk(tree map[string]any, path string) (map[string]any, string, error) {
	segments := strings.Split(path, ".")
	container := tree

	for _, segment := range segments[:len(segments)-1] {
		nested, ok := container[segment].(map[string]any)
		if !ok {
			return nil, "", fmt.Errorf("%w: %q at segment %q", ErrInvalidPath, path, segment)
		}

		container = nested
	}

	return container, segments[len(segments)-1], nil
}

// CloneTree returns a deep copy of a settings tree, so later mutation of the
// copy never leaks into the original.
func CloneTree(tree map[string]any) (map[string]any, error) {
	clone := make(map[string]any, len(tree))

	err := copier.CopyWithOption(&clone, tree, copier.Option{DeepCopy: true})
	if err != nil {
		return nil, fmt.Errorf("failed to deep copy settings tree: %w", err)
	}

	return clone, nil
}

// CloneValue returns a deep copy of a single settings value. Scalars are
// returned as-is; mappings and sequences are copied recursively.
func CloneValue(value any) (any, error) {
	switch typed := value.(type) {
	case map[string]any:
		return CloneTree(typed)
	case []any:
		clone := make([]any, len(typed))

		err := copier.CopyWithOption(&clone, typed, copier.Option{DeepCopy: true})
		if err != nil {
			return nil, fmt.Errorf("failed to deep copy settings value: %w", err)
		}

		return clone, nil
	default:
		return value, nil
	}
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}

	return prefix + "." + key
}

func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
