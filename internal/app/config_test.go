package app

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/iiqentities/internal/assembler"
	"github.com/vk/iiqentities/internal/model"
)

func TestNewConfig_AppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(Config{EntityFolder: "config", OutputFile: "deploy.xml"})

	require.NoError(t, err)
	require.Equal(t, DefaultExtension, cfg.Extension)
	require.Equal(t, DefaultOutputDirectory, cfg.OutputDirectory)
	require.Equal(t, assembler.DefaultImportPrefix, cfg.ImportPrefix)
	require.Equal(t, DefaultLogLevel, cfg.LogLevel)
	require.Equal(t, DefaultLogFormat, cfg.LogFormat)
	require.Equal(t, model.InlineConcatenation, cfg.Mode)
}

func TestNewConfig_KeepsExplicitValues(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(Config{
		EntityFolder:    "config",
		OutputDirectory: "out",
		OutputFile:      "deploy.xml",
		Extension:       "iiq",
		ImportPrefix:    "custom/",
		Mode:            model.ImportReference,
		LogLevel:        "DEBUG",
		LogFormat:       "JSON",
	})

	require.NoError(t, err)
	require.Equal(t, "out", cfg.OutputDirectory)
	require.Equal(t, "iiq", cfg.Extension)
	require.Equal(t, "custom/", cfg.ImportPrefix)
	require.Equal(t, model.ImportReference, cfg.Mode)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "json", cfg.LogFormat)
}

func TestNewConfig_Invalid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		cfg  Config
	}{
		{name: "missing entity folder", cfg: Config{OutputFile: "deploy.xml"}},
		{name: "missing output file", cfg: Config{EntityFolder: "config"}},
		{name: "bad mode", cfg: Config{EntityFolder: "config", OutputFile: "deploy.xml", Mode: model.OutputMode(7)}},
		{name: "bad log level", cfg: Config{EntityFolder: "config", OutputFile: "deploy.xml", LogLevel: "trace"}},
		{name: "bad log format", cfg: Config{EntityFolder: "config", OutputFile: "deploy.xml", LogFormat: "xml"}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewConfig(tc.cfg)

			require.ErrorIs(t, err, model.ErrConfiguration)
		})
	}
}
