package scheduler

import "sort"

// AssignInput carries everything the Assigner needs for one run
type AssignInput struct {
	// Deferred slices left over by ResolveExclusive
	Deferred []Slice

	// Exclusive assignments already made by ResolveExclusive
	Exclusive []Assignment

	// Roster in declared order; candidate sets follow this order
	Roster []Worker

	// Order is the rotation order for this run (see RotationOrder)
	Order []Worker

	Strategy  Strategy
	EndBuffer int
	Throttle  Throttle

	// Totals are updated in place as slices are assigned
	Totals  Totals
	Targets Targets
}

// Assign gives every deferred slice to a candidate chosen by the strategy.
//
// Slices with no candidate at all are dropped and reported as gaps.
// The returned assignments include the exclusive ones and are sorted by start.
func Assign(input AssignInput) ([]Assignment, []Gap, error) {
	selector, err := NewSelector(input.Strategy, input.Order, input.Totals, input.Targets)
	if err != nil {
		return nil, nil, err
	}

	deferred := make([]Slice, len(input.Deferred))
	copy(deferred, input.Deferred)
	sort.SliceStable(deferred, func(i, j int) bool {
		return deferred[i].Start < deferred[j].Start
	})

	throttle := newThrottle(input.Throttle, input.Exclusive)

	assignments := make([]Assignment, 0, len(input.Exclusive)+len(deferred))
	assignments = append(assignments, input.Exclusive...)

	var dropped []Slice
	for _, slice := range deferred {
		candidates := Candidates(input.Roster, slice, input.EndBuffer)
		candidates = throttle.filter(slice, candidates)

		if len(candidates) == 0 {
			dropped = append(dropped, slice)
			continue
		}

		chosen := selector.Select(slice, candidates)
		assignment := newAssignment(slice, chosen.Name, false)

		assignments = append(assignments, assignment)
		input.Totals[chosen.Name] += slice.Length
		throttle.record(assignment)
	}

	sort.SliceStable(assignments, func(i, j int) bool {
		return assignments[i].Start < assignments[j].Start
	})

	return assignments, mergeGaps(dropped), nil
}

// mergeGaps joins contiguous dropped slices of the same window
func mergeGaps(dropped []Slice) []Gap {
	var gaps []Gap
	for _, slice := range dropped {
		if n := len(gaps); n > 0 && gaps[n-1].Window == slice.Window && gaps[n-1].End == slice.Start {
			gaps[n-1].End = slice.End()
			continue
		}
		gaps = append(gaps, Gap{Start: slice.Start, End: slice.End(), Window: slice.Window})
	}
	return gaps
}
