package scheduler

import (
	"fmt"
	"sort"
)

// Validate checks the structural contract the pipeline relies on:
//   - at least one worker, with unique names and End > Start
//   - windows with unique labels, End > Start, and no overlaps
//   - a satisfiable policy
//   - a known strategy and ordering
func Validate(input Input) error {
	if len(input.Roster) == 0 {
		return ErrEmptyRoster
	}

	names := make(map[string]bool, len(input.Roster))
	for _, worker := range input.Roster {
		if worker.Name == "" {
			return fmt.Errorf("worker: %w", ErrEmptyName)
		}
		if names[worker.Name] {
			return fmt.Errorf("worker %q: %w", worker.Name, ErrDuplicateName)
		}
		names[worker.Name] = true

		if worker.End <= worker.Start {
			return fmt.Errorf("worker %q: %w", worker.Name, ErrInvalidInterval)
		}
	}

	if err := ValidateWindows(input.Windows); err != nil {
		return err
	}

	if err := ValidatePolicy(input.Policy); err != nil {
		return err
	}

	if !input.Strategy.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, input.Strategy)
	}
	if !input.Ordering.IsValid() {
		return fmt.Errorf("%w: ordering %q", ErrUnknownStrategy, input.Ordering)
	}
	if input.Ordering == OrderingRandom && input.Shuffler == nil {
		return ErrMissingShuffler
	}

	return nil
}

// ValidateWindows rejects malformed, duplicate and overlapping windows
func ValidateWindows(windows []Window) error {
	labels := make(map[string]bool, len(windows))
	for _, window := range windows {
		if window.Label == "" {
			return fmt.Errorf("window: %w", ErrEmptyName)
		}
		if labels[window.Label] {
			return fmt.Errorf("window %q: %w", window.Label, ErrDuplicateName)
		}
		labels[window.Label] = true

		if window.End <= window.Start {
			return fmt.Errorf("window %q: %w", window.Label, ErrInvalidInterval)
		}
	}

	sorted := make([]Window, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Start < sorted[i-1].End {
			return fmt.Errorf("windows %q and %q: %w", sorted[i-1].Label, sorted[i].Label, ErrOverlappingWindows)
		}
	}

	return nil
}

// ValidatePolicy checks 0 < IdealMin <= IdealMax <= HardCap, 0 < Tolerance <= 1
// and a non-negative EndBuffer
func ValidatePolicy(policy Policy) error {
	switch {
	case policy.IdealMin <= 0:
		return fmt.Errorf("%w: idealMin must be positive, got %d", ErrInvalidPolicy, policy.IdealMin)
	case policy.IdealMax < policy.IdealMin:
		return fmt.Errorf("%w: idealMax %d is below idealMin %d", ErrInvalidPolicy, policy.IdealMax, policy.IdealMin)
	case policy.HardCap < policy.IdealMax:
		return fmt.Errorf("%w: hardCap %d is below idealMax %d", ErrInvalidPolicy, policy.HardCap, policy.IdealMax)
	case policy.Tolerance <= 0 || policy.Tolerance > 1:
		return fmt.Errorf("%w: tolerance must be in (0, 1], got %v", ErrInvalidPolicy, policy.Tolerance)
	case policy.EndBuffer < 0:
		return fmt.Errorf("%w: endBuffer must not be negative, got %d", ErrInvalidPolicy, policy.EndBuffer)
	}
	return nil
}
