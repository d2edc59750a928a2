// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines FileEntry, the unit of work handed from the scanner to the
// assembler.
package model

import (
	"path"
	"path/filepath"
)

// FileEntry describes a single entity file found below a scan root.
type FileEntry struct {
	// AbsPath is the absolute path of the file as it was reached during the
	// scan. It may traverse symbolic links.
	AbsPath string
	// RelPath is the path relative to the scan root, always slash-separated.
	RelPath string
}

// NewFileEntry builds a FileEntry from an absolute path and the relative path
// computed by the caller. The relative path is normalised to forward slashes.
func NewFileEntry(absPath, relPath string) FileEntry {
	return FileEntry{
		AbsPath: absPath,
		RelPath: path.Clean(filepath.ToSlash(relPath)),
	}
}

// Name returns the base name of the entity file.
func (e FileEntry) Name() string {
	return path.Base(e.RelPath)
}
