// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the OutputMode enumeration and its textual forms.
package model

import (
	"fmt"
	"strings"
)

// OutputMode selects how entity files end up in the deployment document.
type OutputMode int

const (
	// InlineConcatenation embeds the stripped, token-substituted content of
	// every entity file into the document body.
	InlineConcatenation OutputMode = iota
	// ImportReference strips every entity file in place and emits one
	// ImportAction directive per file instead of its content.
	ImportReference
)

// String returns the short name used in configuration files and flags.
func (m OutputMode) String() string {
	switch m {
	case InlineConcatenation:
		return "inline"
	case ImportReference:
		return "import"
	default:
		return fmt.Sprintf("OutputMode(%d)", int(m))
	}
}

// ParseOutputMode accepts the short names ("inline", "import") as well as the
// long names ("InlineConcatenation", "ImportReference"), case-insensitively.
// An empty string selects InlineConcatenation.
func ParseOutputMode(s string) (OutputMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "inline", "inlineconcatenation", "concat":
		return InlineConcatenation, nil
	case "import", "importreference", "reference":
		return ImportReference, nil
	default:
		return 0, fmt.Errorf("%w: unknown output mode %q (want 'inline' or 'import')", ErrConfiguration, s)
	}
}
