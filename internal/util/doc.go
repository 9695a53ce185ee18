// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across ragchat packages.
//
// # Key Functions
//
// String Utilities (display-width aware, backed by go-runewidth):
//   - TruncateRunes: UTF-8 safe truncation with ellipsis
//   - TruncateWidth: truncation to a number of terminal cells
//   - PadWidth, StringWidth: column alignment helpers
//   - SingleLine: collapse multi-line text for list rows
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	row := util.PadWidth(util.TruncateWidth(conv.Title, 24), 24)
//	err := util.AtomicWriteFile(path, data, 0600)
package util
