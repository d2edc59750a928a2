// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model holds the small set of value types shared by every stage of a
// deployment descriptor build.
//
// # Core Concepts
//
//   - FileEntry: one discovered entity file, identified both by its absolute
//     path and by its slash-separated path relative to the scan root. Entries
//     are produced by the directory scanner and are never modified afterwards.
//
//   - OutputMode: the strategy used to compose the final document. It is fixed
//     for the whole run; the assembler reads it once before the first entity
//     is processed.
//
//   - ErrConfiguration: the sentinel wrapped by every error that originates from
//     invalid or missing invocation parameters, as opposed to I/O failures.
package model
