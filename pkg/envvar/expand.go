// Package envvar expands environment variable placeholders in settings
// file content.
package envvar

import (
	"os"
	"regexp"
	"strings"
)

// pattern matches ${VAR_NAME} and ${VAR_NAME:-default} placeholders.
// Groups: 1 = variable name, 2 = optional default value (after :-).
var pattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(?::-([^}]*))?\}`)

// defaultSyntaxMarker is the delimiter used for default value syntax in
// placeholders.
const defaultSyntaxMarker = ":-"

// Expand replaces ${VAR_NAME} and ${VAR_NAME:-default} placeholders with
// their environment variable values and returns the names of referenced
// variables that were not set and had no default. Unset variables expand to
// the default when one is given and to the empty string otherwise.
func Expand(value string) (string, []string) {
	if value == "" {
		return value, nil
	}

	var missing []string

	expanded := pattern.ReplaceAllStringFunc(value, func(match string) string {
		result, name := expandMatch(match)
		if name != "" {
			missing = append(missing, name)
		}

		return result
	})

	return expanded, missing
}

// ExpandBytes expands placeholders in raw settings file content before it
// is decoded.
func ExpandBytes(data []byte) ([]byte, []string) {
	expanded, missing := Expand(string(data))

	return []byte(expanded), missing
}

// expandMatch expands a single placeholder. The second return value is the
// variable name when it was unset without a default, otherwise empty.
func expandMatch(match string) (string, string) {
	groups := pattern.FindStringSubmatch(match)
	if len(groups) < 2 {
		return match, ""
	}

	name := groups[1]

	value, exists := os.LookupEnv(name)
	if exists {
		return value, ""
	}

	// ${VAR:-default} falls back to the default, including an explicitly
	// empty one. A bare ${VAR} expands to "" and is reported as missing.
	if len(groups) > 2 && groups[2] != "" {
		return groups[2], ""
	}

	if strings.Contains(match, defaultSyntaxMarker) {
		return "", ""
	}

	return "", name
}
