package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/vk/iiqentities/internal/assembler"
	"github.com/vk/iiqentities/internal/ctxlog"
	"github.com/vk/iiqentities/internal/document"
	"github.com/vk/iiqentities/internal/fsutil"
	"github.com/vk/iiqentities/internal/model"
	"github.com/vk/iiqentities/internal/strip"
	"github.com/vk/iiqentities/internal/tokens"
)

// Run scans the entity folder, assembles the deployment document and writes
// it to OutputPath. Nothing is written when configuration checks fail.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	cfg := a.config
	a.logger.Debug("App.Run method started.",
		"entity_folder", cfg.EntityFolder,
		"output_directory", cfg.OutputDirectory,
		"output_file", cfg.OutputFile,
		"token_file", cfg.TokenFile,
		"mode", cfg.Mode.String(),
		"extension", cfg.Extension,
		"legacy_spacing", cfg.LegacySpacing,
	)

	info, err := os.Stat(cfg.EntityFolder)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: entity folder %s does not exist or is not a directory", model.ErrConfiguration, cfg.EntityFolder)
	}

	if err := os.MkdirAll(cfg.OutputDirectory, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDirectory, err)
	}

	tokenMap := tokens.Map{}
	if cfg.Mode == model.InlineConcatenation {
		tokenMap, err = a.loadTokens(ctx)
		if err != nil {
			return err
		}
	}

	entries, err := fsutil.FindFilesByExtension(ctx, cfg.EntityFolder, cfg.Extension)
	if err != nil {
		return fmt.Errorf("failed to scan entity folder: %w", err)
	}
	a.logger.Debug("Entity files discovered.", "count", len(entries))

	asm := assembler.New(assembler.Options{
		Mode:         cfg.Mode,
		Tokens:       tokenMap,
		Stripper:     strip.New(strip.Options{LegacySpacing: cfg.LegacySpacing}),
		ImportPrefix: cfg.ImportPrefix,
	})
	body, err := asm.Assemble(ctx, entries)
	if err != nil {
		return fmt.Errorf("failed to assemble document: %w", err)
	}

	out := a.OutputPath()
	if err := document.Write(out, body); err != nil {
		return err
	}

	a.logger.Info("Deployment document written.", "entities", len(entries), "path", out, "mode", cfg.Mode.String())
	return nil
}

// loadTokens merges the descriptor's inline tokens with the token file. An
// unset or missing token file leaves only the inline tokens.
func (a *App) loadTokens(ctx context.Context) (tokens.Map, error) {
	inline := tokens.Map(a.config.Tokens)
	path := a.config.TokenFile
	if path == "" {
		a.logger.Info("No token file configured, placeholders are resolved from inline tokens only.", "inline_tokens", len(inline))
		return tokens.Merge(inline), nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		a.logger.Info("Token file does not exist, placeholders are resolved from inline tokens only.", "token_file", path, "inline_tokens", len(inline))
		return tokens.Merge(inline), nil
	}

	fromFile, err := tokens.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	merged := tokens.Merge(inline, fromFile)
	a.logger.Debug("Token map ready.", "token_file", path, "tokens", len(merged))
	return merged, nil
}
