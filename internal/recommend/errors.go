package recommend

import "errors"

var (
	// ErrEmptyCatalog signals that ranking was requested against a catalog
	// with no entries.
	ErrEmptyCatalog = errors.New("catalog is empty")

	// ErrProjector wraps failures of the external normalize/embed capability,
	// including malformed output. Projector failures are never retried.
	ErrProjector = errors.New("projector failed")
)
