package config

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var varPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Expand substitutes `${VAR}` references in s with values from src.
//
// Semantics:
//   - `${VAR}` is replaced with the source value, which may be empty.
//   - A reference to an unset variable is an error; all missing names are
//     collected and reported sorted in a single error.
//   - `$$` emits a literal `$`.
func Expand(s string, src Source) (string, error) {
	const dollarSentinel = "\x00LLMOPS_CONFIG_DOLLAR\x00"
	s = strings.ReplaceAll(s, "$$", dollarSentinel)

	missing := make(map[string]struct{})
	expanded := varPattern.ReplaceAllStringFunc(s, func(match string) string {
		key := match[2 : len(match)-1]
		v, ok := src.Lookup(key)
		if !ok {
			missing[key] = struct{}{}
			return ""
		}
		return v
	})

	if len(missing) > 0 {
		keys := make([]string, 0, len(missing))
		for k := range missing {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return "", fmt.Errorf("missing required environment variables: %s", strings.Join(keys, ", "))
	}

	return strings.ReplaceAll(expanded, dollarSentinel, "$"), nil
}
