package intake

import "errors"

var (
	// ErrEmptyComplaint indicates the submitted text is empty or
	// whitespace-only. Nothing is classified or stored.
	ErrEmptyComplaint = errors.New("complaint text is empty")

	// ErrDuplicate indicates an identical complaint was stored within
	// the duplicate window. The new submission is discarded.
	ErrDuplicate = errors.New("duplicate complaint")
)
