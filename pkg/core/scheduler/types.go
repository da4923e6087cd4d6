package scheduler

// Worker is a person on the roster with a single availability interval.
// Start and End are minutes since midnight.
type Worker struct {
	Name  string
	Start int
	End   int
}

// Window is a labelled coverage period of the day with its own slot-length
// policy and fairness pool.
type Window struct {
	Label string
	Start int
	End   int
}

// Duration returns the length of the window in minutes
func (w Window) Duration() int {
	return w.End - w.Start
}

// Overlaps reports whether the worker's interval intersects the window
func (w Window) Overlaps(worker Worker) bool {
	return worker.End > w.Start && worker.Start < w.End
}

// Policy controls slice sizing and the protected end-of-shift buffer
type Policy struct {
	// IdealMin is the smallest slice length the planner will choose
	IdealMin int

	// IdealMax is the preferred ceiling for slice length
	IdealMax int

	// HardCap is the absolute ceiling, only reached when Tolerance cannot be met below IdealMax
	HardCap int

	// Tolerance is the maximum acceptable ratio of slice length to each person's even share
	// of a window (0 < Tolerance <= 1)
	Tolerance float64

	// EndBuffer is the number of trailing minutes of a shift that are only used
	// when nobody else can take a slice
	EndBuffer int
}

// PlanEntry is the planner's decision for a single window
type PlanEntry struct {
	Window

	// People is the number of workers whose interval overlaps the window
	People int

	// IdealLength is the chosen slice length, nil when nobody overlaps the window
	IdealLength *int
}

// Slice is the atomic unit of assignment. It never spans a window boundary.
type Slice struct {
	Start  int
	Length int
	Window string
}

// End returns the minute at which the slice finishes
func (s Slice) End() int {
	return s.Start + s.Length
}

// Assignment is a slice given to a worker
type Assignment struct {
	Slice
	Worker   string
	End      int
	Duration int

	// Exclusive is set when the worker was the only legal cover for the slice
	Exclusive bool
}

func newAssignment(slice Slice, worker string, exclusive bool) Assignment {
	return Assignment{
		Slice:     slice,
		Worker:    worker,
		End:       slice.End(),
		Duration:  slice.Length,
		Exclusive: exclusive,
	}
}

// Gap is an interval that could not be covered by anyone
type Gap struct {
	Start  int
	End    int
	Window string
}

// Totals holds cumulative assigned minutes per worker
type Totals map[string]int

// Targets holds each worker's fair-share minutes for the day
type Targets map[string]float64

// RotationState is the cursor into the declared roster order that advances by one
// position on every run using rotate ordering. It is owned by the caller.
type RotationState int

// Advance returns the cursor for the next run over a roster of the given size
func (r RotationState) Advance(rosterSize int) RotationState {
	if rosterSize <= 0 {
		return 0
	}
	return RotationState((int(r)%rosterSize + 1) % rosterSize)
}

// Strategy names the selection rule used for deferred slices
type Strategy string

const (
	StrategyRound Strategy = "round"
	StrategyFair  Strategy = "fair"
)

// IsValid returns true for a known strategy
func (s Strategy) IsValid() bool {
	return s == StrategyRound || s == StrategyFair
}

// Ordering names how the rotation order is derived from the roster
type Ordering string

const (
	OrderingRotate Ordering = "rotate"
	OrderingRandom Ordering = "random"
)

// IsValid returns true for a known ordering
func (o Ordering) IsValid() bool {
	return o == OrderingRotate || o == OrderingRandom
}

// Shuffler permutes n elements using swap. *rand.Rand from math/rand/v2 satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Throttle designates a terminal window whose sole occupants should not be
// double-booked in earlier, throttled windows
type Throttle struct {
	ExclusiveWindow  string
	ThrottledWindows []string
}

// Enabled reports whether the throttle has anything to act on
func (t Throttle) Enabled() bool {
	return t.ExclusiveWindow != "" && len(t.ThrottledWindows) > 0
}
