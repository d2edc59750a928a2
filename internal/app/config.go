package app

import (
	"fmt"
	"strings"

	"github.com/vk/iiqentities/internal/assembler"
	"github.com/vk/iiqentities/internal/model"
)

// Defaults applied by NewConfig to unset fields.
const (
	DefaultExtension       = "xml"
	DefaultOutputDirectory = "."
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	EntityFolder    string
	OutputDirectory string
	OutputFile      string
	// TokenFile is optional. A missing file is treated like an empty one.
	TokenFile string
	Mode      model.OutputMode
	Extension string
	// ImportPrefix is used in ImportReference mode only.
	ImportPrefix  string
	LegacySpacing bool
	// Tokens are merged below the entries of TokenFile.
	Tokens map[string]string

	LogFormat string
	LogLevel  string
}

// NewConfig fills in defaults and validates cfg. Every validation failure
// wraps model.ErrConfiguration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.EntityFolder == "" {
		return nil, fmt.Errorf("%w: entity folder is required", model.ErrConfiguration)
	}
	if cfg.OutputFile == "" {
		return nil, fmt.Errorf("%w: output file name is required", model.ErrConfiguration)
	}
	if cfg.Mode != model.InlineConcatenation && cfg.Mode != model.ImportReference {
		return nil, fmt.Errorf("%w: invalid mode %s", model.ErrConfiguration, cfg.Mode)
	}

	if cfg.Extension == "" {
		cfg.Extension = DefaultExtension
	}
	if cfg.OutputDirectory == "" {
		cfg.OutputDirectory = DefaultOutputDirectory
	}
	if cfg.ImportPrefix == "" {
		cfg.ImportPrefix = assembler.DefaultImportPrefix
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = DefaultLogLevel
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("%w: invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", model.ErrConfiguration, cfg.LogLevel)
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = DefaultLogFormat
	case "text", "json":
	default:
		return nil, fmt.Errorf("%w: invalid log-format %q: must be 'text' or 'json'", model.ErrConfiguration, cfg.LogFormat)
	}

	return &cfg, nil
}
