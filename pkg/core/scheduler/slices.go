package scheduler

// BuildSlices expands a plan into slices ordered by window, then start.
// The last slice of a window may be shorter than the planned length so that
// the slices of each window add up to its duration exactly.
func BuildSlices(plan []PlanEntry) []Slice {
	var slices []Slice

	for _, entry := range plan {
		if entry.IdealLength == nil || *entry.IdealLength <= 0 {
			continue
		}

		length := *entry.IdealLength
		for t := entry.Start; t < entry.End; {
			size := min(length, entry.End-t)
			slices = append(slices, Slice{Start: t, Length: size, Window: entry.Label})
			t += size
		}
	}

	return slices
}
