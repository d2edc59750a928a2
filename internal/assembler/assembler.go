// Package assembler composes the deployment descriptor from a set of entity
// files in a single sequential pass.
//
// The output mode decides what each entity contributes to the body:
//
//   - model.InlineConcatenation: the entity's lines, with declaration lines
//     dropped, volatile attributes removed and placeholders substituted.
//   - model.ImportReference: one ImportAction directive pointing at the
//     entity's path relative to the scan root. In this mode the entity file
//     itself is rewritten on disk with its volatile attributes removed.
//
// Header, footer and traversal are shared by both modes. Any I/O failure
// aborts the pass; there is no partial result.
package assembler

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/vk/iiqentities/internal/ctxlog"
	"github.com/vk/iiqentities/internal/document"
	"github.com/vk/iiqentities/internal/fsutil"
	"github.com/vk/iiqentities/internal/model"
	"github.com/vk/iiqentities/internal/strip"
	"github.com/vk/iiqentities/internal/tokens"
)

// DefaultImportPrefix is prepended to the relative entity path in every
// ImportAction directive.
const DefaultImportPrefix = "WEB-INF/config/custom-artifacts/"

// Options configures an Assembler. Zero values select the defaults.
type Options struct {
	Mode model.OutputMode
	// Tokens is only consulted in InlineConcatenation mode.
	Tokens tokens.Map
	// Stripper defaults to strip.Default.
	Stripper *strip.Stripper
	// ImportPrefix defaults to DefaultImportPrefix.
	ImportPrefix string
	// LineSeparator defaults to document.LineSeparator.
	LineSeparator string
}

// Assembler turns a list of entity files into a deployment document body.
type Assembler struct {
	mode     model.OutputMode
	tokens   tokens.Map
	stripper *strip.Stripper
	prefix   string
	sep      string
}

// New returns an Assembler for opts.
func New(opts Options) *Assembler {
	a := &Assembler{
		mode:     opts.Mode,
		tokens:   opts.Tokens,
		stripper: opts.Stripper,
		prefix:   opts.ImportPrefix,
		sep:      opts.LineSeparator,
	}
	if a.stripper == nil {
		a.stripper = strip.Default
	}
	if a.prefix == "" {
		a.prefix = DefaultImportPrefix
	}
	if a.sep == "" {
		a.sep = document.LineSeparator
	}
	if a.tokens == nil {
		a.tokens = tokens.Map{}
	}
	return a
}

// Assemble processes entries in order and returns the complete document text,
// header and footer included. The context is checked between entries.
func (a *Assembler) Assemble(ctx context.Context, entries []model.FileEntry) (string, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Assembling deployment document.", "mode", a.mode.String(), "entities", len(entries))

	doc := document.NewWithSeparator(a.sep)
	if err := doc.WriteHeader(); err != nil {
		return "", err
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		entryCtx := ctxlog.With(ctx, "entity", entry.Name())
		entryLogger := ctxlog.FromContext(entryCtx)
		entryLogger.Debug("Processing entity file.", "path", entry.RelPath)

		var err error
		switch a.mode {
		case model.InlineConcatenation:
			err = a.appendInline(entryCtx, doc, entry)
		case model.ImportReference:
			err = a.appendImport(doc, entry)
		default:
			err = fmt.Errorf("%w: unsupported output mode %s", model.ErrConfiguration, a.mode)
		}
		if err != nil {
			entryLogger.Error("Entity file could not be processed.", "path", entry.RelPath, "error", err)
			return "", err
		}
	}

	if err := doc.WriteFooter(); err != nil {
		return "", err
	}
	body, err := doc.Finish()
	if err != nil {
		return "", err
	}
	logger.Debug("Deployment document assembled.", "entities", len(entries), "body_lines", doc.Lines())
	return body, nil
}

// appendInline copies the stripped, substituted lines of one entity into doc.
// Placeholders without a token value stay in the line and are debug-logged.
func (a *Assembler) appendInline(ctx context.Context, doc *document.Document, entry model.FileEntry) error {
	logger := ctxlog.FromContext(ctx)
	return fsutil.ReadFileLines(entry.AbsPath, func(line string) error {
		out, kept := a.stripper.Line(line)
		if !kept {
			return nil
		}
		out = tokens.Substitute(out, a.tokens)
		if unresolved := tokens.Placeholders(out); len(unresolved) > 0 {
			logger.Debug("Line keeps unresolved placeholders.", "placeholders", unresolved)
		}
		return doc.AppendLine(out)
	})
}

// appendImport strips one entity in place and adds its import directive.
func (a *Assembler) appendImport(doc *document.Document, entry model.FileEntry) error {
	if err := StripInPlace(entry.AbsPath, a.stripper, a.sep); err != nil {
		return err
	}
	return doc.AppendLine(ImportDirective(a.prefix, entry.RelPath))
}

// ImportDirective returns the ImportAction element that includes relPath
// below prefix. A missing trailing slash on a non-empty prefix is added.
func ImportDirective(prefix, relPath string) string {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return fmt.Sprintf("<ImportAction name='include' value='%s%s'/>", prefix, relPath)
}

// StripInPlace removes the volatile attributes from every line of the file at
// path and terminates each line with sep. Declaration lines are kept, since
// the file stays a standalone document. The file is replaced atomically.
func StripInPlace(path string, s *strip.Stripper, sep string) error {
	return fsutil.ReplaceFile(path, func(w io.Writer) error {
		return fsutil.ReadFileLines(path, func(line string) error {
			if _, err := io.WriteString(w, s.Attributes(line)); err != nil {
				return err
			}
			_, err := io.WriteString(w, sep)
			return err
		})
	})
}
