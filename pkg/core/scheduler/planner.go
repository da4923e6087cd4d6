package scheduler

import "math"

// PlanWindows chooses a slice length for every window.
//
// For each window the planner counts the workers overlapping it:
//   - nobody: IdealLength is nil and the window yields no slices
//   - one person: the window duration clamped to [IdealMin, IdealMax]
//   - two or more: the smallest length L whose ratio to the even share
//     (duration / people) is within Tolerance, searching [IdealMin, IdealMax]
//     first and then up to HardCap. If nothing meets the tolerance the
//     lowest-ratio length seen is used, never above HardCap.
//
// The result has the same order as windows. PlanWindows has no side effects.
func PlanWindows(roster []Worker, windows []Window, policy Policy) []PlanEntry {
	plan := make([]PlanEntry, 0, len(windows))

	for _, window := range windows {
		people := 0
		for _, worker := range roster {
			if window.Overlaps(worker) {
				people++
			}
		}

		plan = append(plan, PlanEntry{
			Window:      window,
			People:      people,
			IdealLength: idealLength(window.Duration(), people, policy),
		})
	}

	return plan
}

func idealLength(duration, people int, policy Policy) *int {
	switch {
	case people == 0:
		return nil
	case people == 1:
		length := min(max(duration, policy.IdealMin), policy.IdealMax)
		return &length
	}

	target := float64(duration) / float64(people)

	best := 0
	bestRatio := math.Inf(1)

	// Preferred range first
	for length := policy.IdealMin; length <= policy.IdealMax; length++ {
		ratio := float64(length) / target
		if ratio <= policy.Tolerance {
			return &length
		}
		if ratio < bestRatio {
			best, bestRatio = length, ratio
		}
	}

	// Relax the IdealMax ceiling, but never past HardCap
	for length := policy.IdealMax + 1; length <= policy.HardCap; length++ {
		ratio := float64(length) / target
		if ratio <= policy.Tolerance {
			return &length
		}
		if ratio < bestRatio {
			best, bestRatio = length, ratio
		}
	}

	if bestRatio == math.Inf(1) {
		best = policy.IdealMin
	}
	best = min(best, policy.HardCap)
	return &best
}
