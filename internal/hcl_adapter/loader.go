package hcl_adapter

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/iiqentities/internal/bggohcl"
	"github.com/vk/iiqentities/internal/config"
	"github.com/vk/iiqentities/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL build descriptor loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// rootSchema allows exactly the build block at the top level of a file.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{{Type: "build"}},
}

// buildBlock is the decoding target for the body of a build block.
type buildBlock struct {
	EntityFolder    *string        `hcl:"entity_folder,optional"`
	OutputDirectory *string        `hcl:"output_directory,optional"`
	OutputFile      *string        `hcl:"output_file,optional"`
	TokenFile       *string        `hcl:"token_file,optional"`
	Mode            *string        `hcl:"mode,optional"`
	Extension       *string        `hcl:"extension,optional"`
	ImportPrefix    *string        `hcl:"import_prefix,optional"`
	LegacySpacing   *bool          `hcl:"legacy_spacing,optional"`
	Tokens          hcl.Expression `hcl:"tokens,optional"`
}

// Load parses the descriptor at path and translates its build block into
// the format-agnostic model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL descriptor loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	content, diags := file.Body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}
	block, diags := bggohcl.RequireUniqueBlock(content.Blocks, "build", file.Body.MissingItemRange())
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid HCL file %s: %w", path, diags)
	}

	evalCtx := newEvalContext()
	var raw buildBlock
	if diags := gohcl.DecodeBody(block.Body, evalCtx, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode build block in %s: %w", path, diags)
	}

	model := &config.Model{
		SourcePath:      path,
		EntityFolder:    deref(raw.EntityFolder),
		OutputDirectory: deref(raw.OutputDirectory),
		OutputFile:      deref(raw.OutputFile),
		TokenFile:       deref(raw.TokenFile),
		Mode:            deref(raw.Mode),
		Extension:       deref(raw.Extension),
		ImportPrefix:    deref(raw.ImportPrefix),
		LegacySpacing:   raw.LegacySpacing,
	}

	if isExprDefined(ctx, raw.Tokens, "tokens") {
		tokens, diags := decodeTokens(raw.Tokens, evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid tokens in %s: %w", path, diags)
		}
		model.Tokens = tokens
	}

	model.ResolvePaths(filepath.Dir(path))
	logger.Debug("HCL descriptor loaded.", "path", path, "inline_tokens", len(model.Tokens))
	return model, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
