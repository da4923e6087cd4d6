package scheduler

// throttle keeps workers reserved for the exclusive window from picking up more
// than one slice in each throttled window while someone else could cover it
type throttle struct {
	reserved  map[string]bool
	throttled map[string]bool

	// window label -> worker -> slices held
	held map[string]map[string]int
}

func newThrottle(cfg Throttle, exclusive []Assignment) *throttle {
	t := &throttle{
		reserved:  make(map[string]bool),
		throttled: make(map[string]bool),
		held:      make(map[string]map[string]int),
	}
	if !cfg.Enabled() {
		return t
	}

	for _, label := range cfg.ThrottledWindows {
		t.throttled[label] = true
	}

	for _, assignment := range exclusive {
		if assignment.Window == cfg.ExclusiveWindow {
			t.reserved[assignment.Worker] = true
		}
	}

	for _, assignment := range exclusive {
		t.record(assignment)
	}

	return t
}

func (t *throttle) record(assignment Assignment) {
	if !t.throttled[assignment.Window] {
		return
	}

	held, ok := t.held[assignment.Window]
	if !ok {
		held = make(map[string]int)
		t.held[assignment.Window] = held
	}
	held[assignment.Worker]++
}

// filter drops reserved workers who already hold a slice of this window,
// unless that would leave nobody
func (t *throttle) filter(slice Slice, candidates []Worker) []Worker {
	if !t.throttled[slice.Window] || len(t.reserved) == 0 {
		return candidates
	}

	held := t.held[slice.Window]
	remaining := make([]Worker, 0, len(candidates))
	for _, candidate := range candidates {
		if t.reserved[candidate.Name] && held[candidate.Name] > 0 {
			continue
		}
		remaining = append(remaining, candidate)
	}

	if len(remaining) == 0 {
		return candidates
	}
	return remaining
}
