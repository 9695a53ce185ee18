// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes saved conversations to files.
//
// # Supported Formats
//
//   - md: Human-readable transcript with YAML frontmatter
//   - json: The conversation in the backend's persisted shape
//
// # Usage
//
//	exp, err := export.ForFormat("md", nil)
//	if err != nil {
//	    return err
//	}
//	path, err := export.ExportToFile(&conv, exp, &export.Options{OutputDir: dir})
package export
