// Package fsutil provides file system utility functions.
package fsutil

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/iiqentities/internal/ctxlog"
	"github.com/vk/iiqentities/internal/model"
)

// pendingDir is a directory waiting on the traversal worklist.
type pendingDir struct {
	abs string
	rel string
}

// FindFilesByExtension recursively searches rootPath for all files whose name
// ends with extension. The match is a case-sensitive suffix match on the file
// name, so "example.xml" matches "xml" while "example.XML" does not.
//
// A missing or non-directory root yields an empty result. Directories that
// cannot be listed are logged and skipped; the rest of the tree is still
// scanned. Symbolic links to directories are followed at most once per
// resolved real path. The only error returned is a context cancellation.
//
// The returned entries are sorted by relative path.
func FindFilesByExtension(ctx context.Context, rootPath string, extension string) ([]model.FileEntry, error) {
	if extension == "" {
		panic("extension must not be empty")
	}
	logger := ctxlog.FromContext(ctx)

	absRoot, err := filepath.Abs(rootPath)
	if err != nil {
		logger.Warn("Cannot resolve scan root, treating it as empty.", "root", rootPath, "error", err)
		return nil, nil
	}
	info, err := os.Stat(absRoot)
	if err != nil || !info.IsDir() {
		logger.Debug("Scan root is not a directory, nothing to scan.", "root", absRoot)
		return nil, nil
	}

	var files []model.FileEntry
	visited := make(map[string]struct{})
	worklist := []pendingDir{{abs: absRoot, rel: "."}}

	for len(worklist) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dir := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		real, err := filepath.EvalSymlinks(dir.abs)
		if err != nil {
			logger.Warn("Cannot resolve directory, skipping.", "dir", dir.abs, "error", err)
			continue
		}
		if _, seen := visited[real]; seen {
			logger.Debug("Directory already visited, skipping.", "dir", dir.abs, "real_path", real)
			continue
		}
		visited[real] = struct{}{}

		// os.ReadDir returns whatever it managed to read alongside the error.
		entries, err := os.ReadDir(dir.abs)
		if err != nil {
			logger.Warn("Cannot list directory, skipping unread entries.", "dir", dir.abs, "error", err)
		}

		for _, entry := range entries {
			p := filepath.Join(dir.abs, entry.Name())
			rel := path.Join(dir.rel, entry.Name())
			if isDirectory(p, entry) {
				worklist = append(worklist, pendingDir{abs: p, rel: rel})
				continue
			}
			if strings.HasSuffix(entry.Name(), extension) {
				logger.Debug("Found entity file.", "path", rel)
				files = append(files, model.NewFileEntry(p, rel))
			}
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

// isDirectory reports whether entry is a directory, following symbolic links.
// A dangling link is not a directory.
func isDirectory(p string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	target, err := os.Stat(p)
	return err == nil && target.IsDir()
}
