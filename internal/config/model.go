package config

import "path/filepath"

// Model is the format-agnostic representation of a build descriptor. Empty
// strings and nil pointers mean "not set".
type Model struct {
	// SourcePath is the descriptor file the model was loaded from.
	SourcePath string

	EntityFolder    string
	OutputDirectory string
	OutputFile      string
	TokenFile       string
	Mode            string
	Extension       string
	ImportPrefix    string
	LegacySpacing   *bool

	// Tokens are placeholder values declared inline in the descriptor. Entries
	// from the token file take precedence over them.
	Tokens map[string]string
}

// ResolvePaths makes the relative file system paths of m absolute with
// respect to baseDir. OutputFile is a file name inside OutputDirectory and
// is left alone.
func (m *Model) ResolvePaths(baseDir string) {
	for _, p := range []*string{&m.EntityFolder, &m.OutputDirectory, &m.TokenFile} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(baseDir, *p)
		}
	}
}
