package progress

import (
	"context"
	"errors"

	"corrodedrsvp/internal/logging"

	"github.com/google/uuid"
)

// ResumeIndex returns where reading of docID should start given total words.
// Missing, finished or out-of-range entries start from zero.
func (s *Store) ResumeIndex(ctx context.Context, docID uuid.UUID, total int) (int, bool) {
	e, err := s.Get(ctx, docID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logging.Get(logging.CategoryProgress).Warn("resume lookup failed: %v", err)
		}
		return 0, false
	}
	if e.Index <= 0 || e.Index >= total || e.Done() {
		return 0, false
	}
	logging.Progress("resuming %s at word %d/%d", docID, e.Index+1, total)
	return e.Index, true
}
