// Package yaml_adapter loads build descriptors written in YAML. The keys
// mirror the HCL build block under a top-level "build" mapping.
package yaml_adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vk/iiqentities/internal/config"
	"github.com/vk/iiqentities/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML build descriptor loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

type fileConfig struct {
	Build *buildConfig `yaml:"build"`
}

type buildConfig struct {
	EntityFolder    string            `yaml:"entity_folder"`
	OutputDirectory string            `yaml:"output_directory"`
	OutputFile      string            `yaml:"output_file"`
	TokenFile       string            `yaml:"token_file"`
	Mode            string            `yaml:"mode"`
	Extension       string            `yaml:"extension"`
	ImportPrefix    string            `yaml:"import_prefix"`
	LegacySpacing   *bool             `yaml:"legacy_spacing"`
	Tokens          map[string]string `yaml:"tokens"`
}

// Load reads the descriptor at path. Unknown keys are rejected.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML descriptor loader started.", "path", path)

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cfg.Build == nil {
		return nil, fmt.Errorf("invalid config file %s: missing \"build\" mapping", path)
	}

	b := cfg.Build
	model := &config.Model{
		SourcePath:      path,
		EntityFolder:    b.EntityFolder,
		OutputDirectory: b.OutputDirectory,
		OutputFile:      b.OutputFile,
		TokenFile:       b.TokenFile,
		Mode:            b.Mode,
		Extension:       b.Extension,
		ImportPrefix:    b.ImportPrefix,
		LegacySpacing:   b.LegacySpacing,
		Tokens:          b.Tokens,
	}
	model.ResolvePaths(filepath.Dir(path))

	logger.Debug("YAML descriptor loaded.", "path", path, "inline_tokens", len(model.Tokens))
	return model, nil
}
