package scheduler

import "fmt"

// Selector picks the worker for a slice from a non-empty candidate list
type Selector interface {
	// Name returns the strategy name
	Name() Strategy

	// Select returns the chosen candidate
	Select(slice Slice, candidates []Worker) Worker
}

// NewSelector builds the selector for a strategy over a rotation order.
// The fair selector reads totals as they are updated by the Assigner.
func NewSelector(strategy Strategy, order []Worker, totals Totals, targets Targets) (Selector, error) {
	positions := make(map[string]int, len(order))
	for i, worker := range order {
		positions[worker.Name] = i
	}

	switch strategy {
	case StrategyRound:
		return &roundSelector{order: order, positions: positions}, nil
	case StrategyFair:
		return &fairSelector{positions: positions, totals: totals, targets: targets}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
}

// roundSelector walks the rotation order, jumping past whoever it picks
type roundSelector struct {
	order     []Worker
	positions map[string]int
	cursor    int
}

func (s *roundSelector) Name() Strategy {
	return StrategyRound
}

func (s *roundSelector) Select(slice Slice, candidates []Worker) Worker {
	chosen := candidates[0]

	if len(s.order) > 0 {
		next := s.order[s.cursor%len(s.order)]
		for _, candidate := range candidates {
			if candidate.Name == next.Name {
				chosen = candidate
				break
			}
		}
	}

	s.cursor = s.positions[chosen.Name] + 1
	return chosen
}

// fairSelector picks the candidate furthest below their fair share
type fairSelector struct {
	positions map[string]int
	totals    Totals
	targets   Targets
}

func (s *fairSelector) Name() Strategy {
	return StrategyFair
}

func (s *fairSelector) Select(slice Slice, candidates []Worker) Worker {
	best := candidates[0]
	bestScore := s.score(best.Name)

	for _, candidate := range candidates[1:] {
		score := s.score(candidate.Name)
		if score < bestScore || (score == bestScore && s.positions[candidate.Name] < s.positions[best.Name]) {
			best, bestScore = candidate, score
		}
	}

	return best
}

// score is assigned minutes over target; a missing or zero target scores 0
func (s *fairSelector) score(name string) float64 {
	target := s.targets[name]
	if target <= 0 {
		return 0
	}
	return float64(s.totals[name]) / target
}
