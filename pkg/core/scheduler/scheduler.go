package scheduler

// Input is everything one scheduling run depends on
type Input struct {
	// Roster in declared order
	Roster []Worker

	// Windows must be disjoint; they are processed in the given order
	Windows []Window

	Policy   Policy
	Strategy Strategy
	Ordering Ordering

	// Rotation is the cursor carried over from the previous rotate run
	Rotation RotationState

	// Shuffler is required for random ordering
	Shuffler Shuffler

	// Throttle is optional
	Throttle Throttle
}

// Result is the outcome of a scheduling run
type Result struct {
	// Assignments sorted by start time
	Assignments []Assignment

	// Plan has one entry per input window, in input order
	Plan []PlanEntry

	// NextRotation must be passed to the next run
	NextRotation RotationState

	// Gaps are intervals nobody could cover
	Gaps []Gap

	// Totals are the assigned minutes per worker
	Totals Totals

	// Targets are the fair-share minutes per worker
	Targets Targets
}

// Schedule runs the full pipeline: plan, slice, resolve exclusive slices,
// compute fair-share targets and assign the rest.
//
// Returns ErrEmptyRoster when there are no workers and ErrNoCoverage when no
// window produced a slice. Invalid input is rejected by Validate before any
// work is done. No partial result is returned on error.
func Schedule(input Input) (*Result, error) {
	if err := Validate(input); err != nil {
		return nil, err
	}

	plan := PlanWindows(input.Roster, input.Windows, input.Policy)
	slices := BuildSlices(plan)
	if len(slices) == 0 {
		return nil, ErrNoCoverage
	}

	order, next, err := RotationOrder(input.Roster, input.Ordering, input.Rotation, input.Shuffler)
	if err != nil {
		return nil, err
	}

	totals := make(Totals, len(input.Roster))
	for _, worker := range input.Roster {
		totals[worker.Name] = 0
	}

	exclusive, deferred := ResolveExclusive(slices, input.Roster, input.Policy.EndBuffer, totals)
	targets := CalculateTargets(slices, input.Roster)

	assignments, gaps, err := Assign(AssignInput{
		Deferred:  deferred,
		Exclusive: exclusive,
		Roster:    input.Roster,
		Order:     order,
		Strategy:  input.Strategy,
		EndBuffer: input.Policy.EndBuffer,
		Throttle:  input.Throttle,
		Totals:    totals,
		Targets:   targets,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Assignments:  assignments,
		Plan:         plan,
		NextRotation: next,
		Gaps:         gaps,
		Totals:       totals,
		Targets:      targets,
	}, nil
}
