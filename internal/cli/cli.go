package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vk/iiqentities/internal/app"
	"github.com/vk/iiqentities/internal/assembler"
	"github.com/vk/iiqentities/internal/config"
	"github.com/vk/iiqentities/internal/hcl_adapter"
	"github.com/vk/iiqentities/internal/model"
	"github.com/vk/iiqentities/internal/yaml_adapter"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) *ExitError {
	return &ExitError{Code: 2, Message: err.Error(), Err: err}
}

// flagValues holds the raw command-line flag values.
type flagValues struct {
	configPath      string
	entityFolder    string
	outputDirectory string
	outputFile      string
	tokenFile       string
	mode            string
	extension       string
	importPrefix    string
	legacySpacing   bool
	logLevel        string
	logFormat       string
}

const longHelp = `iiqentities assembles a SailPoint IdentityIQ deployment document from a
folder of XML entity files.

In inline mode (default) every entity file is copied into the document with
XML declarations dropped, id/created/modified attributes removed and
@@@TOKEN@@@ placeholders replaced from the token file. In import mode each
entity file is stripped in place and referenced through an ImportAction.

Settings can come from a build descriptor (--config, .hcl or .yaml), flags
and the positional ENTITY_FOLDER, in increasing order of precedence.`

// Parse processes command-line arguments. It returns a populated Config, a
// boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var (
		fv     flagValues
		result *app.Config
	)
	cmd := &cobra.Command{
		Use:           "iiqentities [flags] [ENTITY_FOLDER]",
		Short:         "Assemble a SailPoint deployment document from entity files",
		Long:          longHelp,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, &fv, args)
			if err != nil {
				return err
			}
			result = cfg
			return nil
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	f := cmd.Flags()
	f.StringVarP(&fv.configPath, "config", "c", "", "Path to a build descriptor (.hcl, .yaml or .yml).")
	f.StringVar(&fv.entityFolder, "entity-folder", "", "Folder scanned recursively for entity files.")
	f.StringVar(&fv.outputDirectory, "output-dir", "", "Directory the document is written to (default \".\").")
	f.StringVarP(&fv.outputFile, "output", "o", "", "File name of the assembled document.")
	f.StringVarP(&fv.tokenFile, "token-file", "t", "", "key=value file with placeholder values (inline mode only).")
	f.StringVarP(&fv.mode, "mode", "m", "", "Output mode: 'inline' or 'import' (default \"inline\").")
	f.StringVar(&fv.extension, "extension", "", "File name suffix of entity files (default \"xml\").")
	f.StringVar(&fv.importPrefix, "import-prefix", "", "Path prefix of ImportAction values (default \""+assembler.DefaultImportPrefix+"\").")
	f.BoolVar(&fv.legacySpacing, "legacy-spacing", false, "Keep the whitespace around removed attributes.")
	f.StringVar(&fv.logLevel, "log-level", "", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	f.StringVar(&fv.logFormat, "log-format", "", "Log output format. Options: 'text' or 'json'.")

	if len(args) == 0 {
		slog.Debug("No arguments provided, printing usage and exiting.")
		_ = cmd.Help()
		return nil, true, nil
	}

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, usageError(err)
	}
	if result == nil {
		// Help was printed.
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "entity_folder", result.EntityFolder, "mode", result.Mode.String())
	return result, false, nil
}

// buildConfig layers descriptor values, explicitly set flags and the
// positional argument, then validates the outcome.
func buildConfig(cmd *cobra.Command, fv *flagValues, args []string) (*app.Config, error) {
	desc := &config.Model{}
	if fv.configPath != "" {
		loader, err := loaderFor(fv.configPath)
		if err != nil {
			return nil, usageError(err)
		}
		desc, err = loader.Load(cmd.Context(), fv.configPath)
		if err != nil {
			return nil, usageError(fmt.Errorf("%w: %w", model.ErrConfiguration, err))
		}
	}

	flags := cmd.Flags()
	override := func(name string, dst *string, val string) {
		if flags.Changed(name) {
			*dst = val
		}
	}
	override("entity-folder", &desc.EntityFolder, fv.entityFolder)
	override("output-dir", &desc.OutputDirectory, fv.outputDirectory)
	override("output", &desc.OutputFile, fv.outputFile)
	override("token-file", &desc.TokenFile, fv.tokenFile)
	override("mode", &desc.Mode, fv.mode)
	override("extension", &desc.Extension, fv.extension)
	override("import-prefix", &desc.ImportPrefix, fv.importPrefix)
	if flags.Changed("legacy-spacing") {
		desc.LegacySpacing = &fv.legacySpacing
	}
	if len(args) > 0 {
		desc.EntityFolder = args[0]
	}

	mode, err := model.ParseOutputMode(desc.Mode)
	if err != nil {
		return nil, usageError(err)
	}

	cfg, err := app.NewConfig(app.Config{
		EntityFolder:    desc.EntityFolder,
		OutputDirectory: desc.OutputDirectory,
		OutputFile:      desc.OutputFile,
		TokenFile:       desc.TokenFile,
		Mode:            mode,
		Extension:       desc.Extension,
		ImportPrefix:    desc.ImportPrefix,
		LegacySpacing:   desc.LegacySpacing != nil && *desc.LegacySpacing,
		Tokens:          desc.Tokens,
		LogLevel:        fv.logLevel,
		LogFormat:       fv.logFormat,
	})
	if err != nil {
		return nil, usageError(err)
	}
	return cfg, nil
}

// loaderFor picks the descriptor loader by file extension.
func loaderFor(path string) (config.Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return hcl_adapter.NewLoader(), nil
	case ".yaml", ".yml":
		return yaml_adapter.NewLoader(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported build descriptor %s: want .hcl, .yaml or .yml", model.ErrConfiguration, path)
	}
}
