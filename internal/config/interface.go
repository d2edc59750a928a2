package config

import "context"

// Loader is the interface for a format-specific build descriptor loader.
type Loader interface {
	// Load reads the descriptor at path and translates it into the
	// format-agnostic model. Relative paths in the result are already
	// resolved against the descriptor's directory.
	Load(ctx context.Context, path string) (*Model, error)
}
