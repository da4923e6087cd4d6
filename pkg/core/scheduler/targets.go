package scheduler

// CalculateTargets returns each worker's idealised share of the day.
//
// Every slice is split evenly between the workers whose shift contains it
// (ignoring the end buffer), and the shares are summed per worker. Workers who
// can cover nothing still get an entry of zero.
func CalculateTargets(slices []Slice, roster []Worker) Targets {
	targets := make(Targets, len(roster))
	for _, worker := range roster {
		targets[worker.Name] = 0
	}

	for _, slice := range slices {
		available := FallbackCandidates(roster, slice)
		if len(available) == 0 {
			continue
		}

		share := float64(slice.Length) / float64(len(available))
		for _, worker := range available {
			targets[worker.Name] += share
		}
	}

	return targets
}
