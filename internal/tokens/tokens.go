// Package tokens loads placeholder token maps and substitutes placeholders in
// entity file lines.
//
// A token file is UTF-8 text with one key=value pair per non-empty line. The
// first '=' separates key from value, so values may contain '='. Keys and
// values are taken verbatim, without trimming. Later lines override earlier
// ones with the same key.
package tokens

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/vk/iiqentities/internal/ctxlog"
	"github.com/vk/iiqentities/internal/fsutil"
)

// Map maps a full placeholder string (for example "@@@ENV@@@") to its value.
// It is built once per run and treated as read-only afterwards.
type Map map[string]string

// Merge returns a new Map holding the entries of all given maps. Entries of
// later maps override entries of earlier ones.
func Merge(ms ...Map) Map {
	out := make(Map)
	for _, m := range ms {
		maps.Copy(out, m)
	}
	return out
}

// Load reads a token file. An empty path yields an empty map. A file that
// cannot be opened or read is an error.
func Load(ctx context.Context, path string) (Map, error) {
	logger := ctxlog.FromContext(ctx)
	m := make(Map)
	if path == "" {
		logger.Debug("No token file given, using an empty token map.")
		return m, nil
	}

	lineNo := 0
	err := fsutil.ReadFileLines(path, func(line string) error {
		lineNo++
		if line == "" {
			return nil
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			logger.Debug("Ignoring token line without '='.", "file", path, "line", lineNo)
			return nil
		}
		m[key] = value
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load token file: %w", err)
	}

	logger.Debug("Token file loaded.", "file", path, "tokens", len(m))
	return m, nil
}
