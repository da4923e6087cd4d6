package scheduler

// ResolveExclusive assigns every slice that has exactly one candidate to that
// candidate and credits their total, so the fairness pass sees those minutes.
//
// Slices must be in (window, start) order as produced by BuildSlices.
// Returns the exclusive assignments and the slices left for the Assigner.
func ResolveExclusive(slices []Slice, roster []Worker, endBuffer int, totals Totals) ([]Assignment, []Slice) {
	var assignments []Assignment
	deferred := make([]Slice, 0, len(slices))

	for _, slice := range slices {
		candidates := Candidates(roster, slice, endBuffer)
		if len(candidates) != 1 {
			deferred = append(deferred, slice)
			continue
		}

		sole := candidates[0]
		assignments = append(assignments, newAssignment(slice, sole.Name, true))
		totals[sole.Name] += slice.Length
	}

	return assignments, deferred
}
