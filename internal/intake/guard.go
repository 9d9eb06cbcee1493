package intake

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DefaultDuplicateWindow is how far back the guard looks for an
// identical complaint.
const DefaultDuplicateWindow = 60 * time.Second

// DuplicateStore is the persistence capability the guard needs.
type DuplicateStore interface {
	ExistsTextSince(ctx context.Context, text string, since time.Time) (bool, error)
}

// DuplicateGuard rejects resubmissions of the same complaint text inside
// a sliding window. The candidate is trimmed before comparison, so a
// submission differing only in leading or trailing whitespace still
// counts as a duplicate of the trimmed original.
type DuplicateGuard struct {
	store  DuplicateStore
	window time.Duration
	now    func() time.Time
}

// NewDuplicateGuard creates a guard over store. window <= 0 falls back
// to DefaultDuplicateWindow.
func NewDuplicateGuard(store DuplicateStore, window time.Duration) *DuplicateGuard {
	if window <= 0 {
		window = DefaultDuplicateWindow
	}
	return &DuplicateGuard{
		store:  store,
		window: window,
		now:    time.Now,
	}
}

// Check returns ErrDuplicate when an identical complaint exists inside
// the window. Store failures propagate so the caller can distinguish a
// guard failure from a positive duplicate.
func (g *DuplicateGuard) Check(ctx context.Context, text string) error {
	since := g.now().Add(-g.window)

	exists, err := g.store.ExistsTextSince(ctx, strings.TrimSpace(text), since)
	if err != nil {
		return fmt.Errorf("duplicate lookup: %w", err)
	}
	if exists {
		return ErrDuplicate
	}
	return nil
}
