package scheduler

import "errors"

var (
	// ErrEmptyRoster indicates that no worker was supplied
	ErrEmptyRoster = errors.New("roster is empty")

	// ErrNoCoverage indicates that every window was skipped, so no slices exist
	ErrNoCoverage = errors.New("no window overlaps any worker")

	// ErrInvalidInterval indicates a worker or window with end <= start
	ErrInvalidInterval = errors.New("interval end must be after start")

	// ErrEmptyName indicates a worker without a name or a window without a label
	ErrEmptyName = errors.New("name must not be empty")

	// ErrDuplicateName indicates two workers (or two windows) share a name
	ErrDuplicateName = errors.New("duplicate name")

	// ErrOverlappingWindows indicates windows that do not form a disjoint partition
	ErrOverlappingWindows = errors.New("windows overlap")

	// ErrInvalidPolicy indicates slice-sizing parameters that cannot be satisfied
	ErrInvalidPolicy = errors.New("invalid policy")

	// ErrUnknownStrategy indicates an unrecognised strategy or ordering mode
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrMissingShuffler indicates random ordering was requested without a randomness source
	ErrMissingShuffler = errors.New("random ordering requires a shuffler")
)
