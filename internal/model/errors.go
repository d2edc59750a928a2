// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import "errors"

// ErrConfiguration marks failures caused by invalid or missing invocation
// parameters. They are detected before any output is produced.
var ErrConfiguration = errors.New("configuration error")
