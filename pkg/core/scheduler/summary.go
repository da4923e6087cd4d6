package scheduler

import "math"

// WorkerSummary compares what a worker was given with their fair share
type WorkerSummary struct {
	Name     string
	Assigned int
	Target   float64
	Slices   int
}

// Ratio returns assigned minutes over target, 0 when the worker has no target
func (w WorkerSummary) Ratio() float64 {
	if w.Target <= 0 {
		return 0
	}
	return float64(w.Assigned) / w.Target
}

// Summary describes how evenly a result spread the day
type Summary struct {
	// Workers in roster order
	Workers []WorkerSummary

	// CoveredMinutes is the sum of all assignment durations
	CoveredMinutes int

	// UncoveredMinutes is the sum of all gap lengths
	UncoveredMinutes int

	// FairnessScore is 100 when every worker with a target received exactly
	// their share, falling towards 0 as the spread of assigned/target grows
	FairnessScore float64
}

// Summarize builds a Summary for a result over the roster it was produced from
func Summarize(result *Result, roster []Worker) Summary {
	slicesPerWorker := make(map[string]int)
	summary := Summary{}

	for _, assignment := range result.Assignments {
		slicesPerWorker[assignment.Worker]++
		summary.CoveredMinutes += assignment.Duration
	}
	for _, gap := range result.Gaps {
		summary.UncoveredMinutes += gap.End - gap.Start
	}

	for _, worker := range roster {
		summary.Workers = append(summary.Workers, WorkerSummary{
			Name:     worker.Name,
			Assigned: result.Totals[worker.Name],
			Target:   result.Targets[worker.Name],
			Slices:   slicesPerWorker[worker.Name],
		})
	}

	summary.FairnessScore = fairnessScore(summary.Workers)
	return summary
}

// fairnessScore is one minus the coefficient of variation of the
// assigned/target ratios, as a percentage clamped to [0, 100]
func fairnessScore(workers []WorkerSummary) float64 {
	var ratios []float64
	for _, worker := range workers {
		if worker.Target > 0 {
			ratios = append(ratios, worker.Ratio())
		}
	}
	if len(ratios) == 0 {
		return 100
	}

	var sum float64
	for _, ratio := range ratios {
		sum += ratio
	}
	if sum == 0 {
		return 100
	}
	mean := sum / float64(len(ratios))

	var varianceSum float64
	for _, ratio := range ratios {
		diff := ratio - mean
		varianceSum += diff * diff
	}
	stdDev := math.Sqrt(varianceSum / float64(len(ratios)))

	score := (1.0 - stdDev/mean) * 100.0
	if score < 0 {
		return 0
	}
	return score
}
