// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"

	"github.com/jeranaias/ragchat-tui/internal/model"
)

// SubmitFeedback rates the last completed exchange. The record is posted
// to the backend in the background; a failed post is only logged.
//
// A rating outside 1..5 returns ErrInvalidRating and nothing is sent.
// Without a completed exchange it returns ErrNoExchange.
func (s *Session) SubmitFeedback(rating int, comment string) (model.FeedbackRecord, error) {
	if !model.ValidRating(rating) {
		return model.FeedbackRecord{}, ErrInvalidRating
	}

	last, ok := s.Last()
	if !ok {
		return model.FeedbackRecord{}, ErrNoExchange
	}

	rec := model.FeedbackRecord{
		Question:  last.Question,
		Answer:    last.Answer,
		Rating:    rating,
		Feedback:  comment,
		SourceIDs: last.SourceIDs,
	}

	s.feedback.Add(1)
	go func() {
		defer s.feedback.Done()
		if err := s.backend.Evaluate(s.bgCtx, rec); err != nil {
			s.logger.Error().Err(err).Int("rating", rec.Rating).Msg("failed to submit feedback")
			return
		}
		s.logger.Info().Int("rating", rec.Rating).Bool("comment", rec.Feedback != "").Msg("feedback submitted")
	}()

	return rec, nil
}

// Wait blocks until background feedback posts finish or ctx expires.
func (s *Session) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.feedback.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
