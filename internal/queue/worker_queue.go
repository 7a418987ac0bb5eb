package queue

import (
	"context"
)

// WorkerQueue maintains the fair service order of active picking workers.
// Implementations must serialize mutations: SetActiveSet and RotateToBack
// read the full priority ordering before writing it back, and two unsynced
// rotations would silently lose an update.
type WorkerQueue interface {
	// ListActive returns active worker names ascending by queue priority,
	// ties broken by name. The first name is served next.
	ListActive(ctx context.Context) ([]string, error)

	// SetActiveSet replaces the active membership. Workers absent from
	// names are deactivated; newly activated workers join at the back;
	// workers active before and after keep their relative order.
	SetActiveSet(ctx context.Context, names []string) error

	// RotateToBack moves each named worker behind every other active
	// worker, in the order given, so the last listed ends up furthest
	// back. Unknown or inactive names are no-ops.
	RotateToBack(ctx context.Context, names []string) error
}
