package scheduler

import "slices"

// RotationOrder derives the order used for round-robin selection and fairness
// tie-breaks, and the rotation state for the next run.
//
// Rotate ordering returns the roster rotated left by state positions and
// advances the state by one. Random ordering returns a shuffled copy and leaves
// the state untouched.
func RotationOrder(roster []Worker, ordering Ordering, state RotationState, shuffler Shuffler) ([]Worker, RotationState, error) {
	if len(roster) == 0 {
		return nil, state, nil
	}

	switch ordering {
	case OrderingRotate:
		offset := int(state) % len(roster)
		if offset < 0 {
			offset += len(roster)
		}
		order := append(slices.Clone(roster[offset:]), roster[:offset]...)
		return order, RotationState(offset).Advance(len(roster)), nil

	case OrderingRandom:
		if shuffler == nil {
			return nil, state, ErrMissingShuffler
		}
		order := slices.Clone(roster)
		shuffler.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		return order, state, nil
	}

	return nil, state, ErrUnknownStrategy
}
