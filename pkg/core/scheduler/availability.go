package scheduler

// IsPreferred reports whether the worker can take the slice without touching
// the last endBuffer minutes of their shift
func IsPreferred(worker Worker, slice Slice, endBuffer int) bool {
	return worker.Start <= slice.Start && slice.End() <= worker.End-endBuffer
}

// IsFallback reports whether the slice lies anywhere inside the worker's shift
func IsFallback(worker Worker, slice Slice) bool {
	return worker.Start <= slice.Start && worker.End >= slice.End()
}

// Candidates returns the workers eligible for a slice in roster order.
// Preferred workers are returned when there is at least one; otherwise the
// fallback set is returned, which may be empty.
func Candidates(roster []Worker, slice Slice, endBuffer int) []Worker {
	var preferred []Worker
	for _, worker := range roster {
		if IsPreferred(worker, slice, endBuffer) {
			preferred = append(preferred, worker)
		}
	}
	if len(preferred) > 0 {
		return preferred
	}

	return FallbackCandidates(roster, slice)
}

// FallbackCandidates returns every worker whose shift contains the slice
func FallbackCandidates(roster []Worker, slice Slice) []Worker {
	var fallback []Worker
	for _, worker := range roster {
		if IsFallback(worker, slice) {
			fallback = append(fallback, worker)
		}
	}
	return fallback
}
