// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// RETRIEVAL SOURCES
// =============================================================================

// Source is a retrieved document snippet returned alongside an answer.
// The backend truncates Content; Source names the origin document.
type Source struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Source  string `json:"source"`
}

// SourceIDs extracts the IDs from a list of sources in order.
// The result is never nil.
func SourceIDs(sources []Source) []string {
	ids := make([]string, 0, len(sources))
	for _, s := range sources {
		ids = append(ids, s.ID)
	}
	return ids
}

// =============================================================================
// FEEDBACK
// =============================================================================

// Rating bounds for answer feedback.
const (
	MinRating = 1
	MaxRating = 5
)

// FeedbackRecord is the payload posted to the evaluation endpoint.
type FeedbackRecord struct {
	Question  string   `json:"question"`
	Answer    string   `json:"answer"`
	Rating    int      `json:"rating"`
	Feedback  string   `json:"feedback"`
	SourceIDs []string `json:"source_ids"`
}

// ValidRating reports whether r is within the accepted star range.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
