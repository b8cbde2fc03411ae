package watcher

import (
	"fmt"
	"path/filepath"
	"strings"

	"peat/internal/config"
)

// ParsePaths splits data into a WatchSet. Empty tokens are dropped, trailing
// newlines are stripped and every path is made absolute.
func ParsePaths(data []byte, separator config.Separator) (WatchSet, error) {
	var tokens []string
	if delimiter, ok := separator.Delimiter(); ok {
		tokens = strings.Split(string(data), delimiter)
	} else {
		tokens = strings.Fields(string(data))
	}

	set := make(WatchSet, len(tokens))
	for _, token := range tokens {
		token = strings.TrimRight(token, "\n")
		if token == "" {
			continue
		}
		abs, err := filepath.Abs(token)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", token, err)
		}
		set[abs] = struct{}{}
	}
	return set, nil
}
