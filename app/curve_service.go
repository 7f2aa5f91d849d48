package app

import (
	"context"
	"sort"

	"golang.org/x/sync/semaphore"

	"powercalc/domain/power"
)

// curveConcurrency bounds how many solves run at once when sweeping an N
// grid. Solves are pure and cheap, so a small pool is plenty.
const curveConcurrency = 8

// CurvePoint is one (sample size, power) pair on a power curve.
type CurvePoint struct {
	SampleSize float64 `json:"sample_size"`
	Power      float64 `json:"power"`
}

// CurveService sweeps the forward N->power map over a grid, for callers that
// want to see the whole tradeoff rather than a single solve.
type CurveService struct {
	solve *SolveService
	sem   *semaphore.Weighted
}

// NewCurveService creates a curve service on top of the engine facade.
func NewCurveService(solve *SolveService) *CurveService {
	return &CurveService{
		solve: solve,
		sem:   semaphore.NewWeighted(curveConcurrency),
	}
}

// PowerCurve computes power at each sample size from nFrom to nTo in steps
// of step, concurrently. The template request must leave both Power and
// SampleSize unset; every other field is reused per point. Points for which
// the family reports an error are omitted.
func (c *CurveService) PowerCurve(ctx context.Context, template power.SolveRequest, nFrom, nTo, step float64) ([]CurvePoint, error) {
	if template.Power != nil || template.SampleSize != nil {
		return nil, power.NewContractError("curve template must leave power and sample size unset")
	}
	if nFrom < 1 || nTo < nFrom || step <= 0 {
		return nil, power.NewInvalidInputError("curve grid", "requires 1 <= from <= to and positive step")
	}

	var grid []float64
	for n := nFrom; n <= nTo; n += step {
		grid = append(grid, n)
	}

	points := make([]CurvePoint, 0, len(grid))
	results := make(chan CurvePoint, len(grid))

	for _, n := range grid {
		if err := c.sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		go func(n float64) {
			defer c.sem.Release(1)
			req := template
			req.SampleSize = power.Float(n)
			res, err := c.solve.SolvePower(req)
			if err != nil || res.Power == nil {
				return
			}
			results <- CurvePoint{SampleSize: n, Power: *res.Power}
		}(n)
	}

	// Drain once all workers have released their weight.
	if err := c.sem.Acquire(ctx, curveConcurrency); err != nil {
		return nil, err
	}
	c.sem.Release(curveConcurrency)
	close(results)

	for p := range results {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].SampleSize < points[j].SampleSize })
	return points, nil
}
