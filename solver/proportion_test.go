package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"powercalc/domain/power"
	"powercalc/internal/dist"
)

func TestSolveTwoProportions(t *testing.T) {
	t.Run("small h needs about 392 per group", func(t *testing.T) {
		res, err := SolveTwoProportions(power.SolveRequest{
			Alpha:       0.05,
			Alternative: power.TwoSided,
			EffectSize:  0.2,
			Power:       power.Float(0.80),
		})
		require.NoError(t, err)
		assert.InDelta(t, 392.4, *res.SampleSize, 0.5)
		assert.InDelta(t, *res.SampleSize, *res.SampleSize2, 1e-9)
	})

	t.Run("closed form agrees with the forward map", func(t *testing.T) {
		res, err := SolveTwoProportions(power.SolveRequest{
			Alpha: 0.05, Alternative: power.TwoSided, EffectSize: 0.3,
			Power: power.Float(0.90),
		})
		require.NoError(t, err)

		back, err := SolveTwoProportions(power.SolveRequest{
			Alpha: 0.05, Alternative: power.TwoSided, EffectSize: 0.3,
			SampleSize: res.SampleSize,
		})
		require.NoError(t, err)
		// Two-sided power has a tiny wrong-tail contribution the closed form
		// ignores.
		assert.InDelta(t, 0.90, *back.Power, 1e-3)
	})

	t.Run("one-sided halves the critical threshold", func(t *testing.T) {
		two, err := SolveTwoProportions(power.SolveRequest{
			Alpha: 0.05, Alternative: power.TwoSided, EffectSize: 0.2,
			Power: power.Float(0.80),
		})
		require.NoError(t, err)
		one, err := SolveTwoProportions(power.SolveRequest{
			Alpha: 0.05, Alternative: power.Larger, EffectSize: 0.2,
			Power: power.Float(0.80),
		})
		require.NoError(t, err)
		assert.Less(t, *one.SampleSize, *two.SampleSize)
	})

	t.Run("zero h is degenerate", func(t *testing.T) {
		_, err := SolveTwoProportions(power.SolveRequest{
			Alpha: 0.05, Alternative: power.TwoSided, EffectSize: 0,
			Power: power.Float(0.80),
		})
		require.Error(t, err)
		assert.True(t, power.IsDegenerate(err))
	})
}

func TestSolveSingleProportion(t *testing.T) {
	t.Run("matches the Wald closed form exactly", func(t *testing.T) {
		p0, p1 := 0.5, 0.65
		res, err := SolveSingleProportion(power.SolveRequest{
			Alpha: 0.05, Alternative: power.TwoSided,
			NullProp: p0, AltProp: p1,
			Power: power.Float(0.80),
		})
		require.NoError(t, err)

		zCrit := dist.NormalQuantile(0.975)
		zBeta := dist.NormalQuantile(0.80)
		want := math.Pow((zCrit*math.Sqrt(p0*(1-p0))+zBeta*math.Sqrt(p1*(1-p1)))/(p1-p0), 2)
		assert.InDelta(t, want, *res.SampleSize, 1e-9)
		assert.InDelta(t, 84.8, *res.SampleSize, 0.2)
	})

	t.Run("round trips N back to the target power", func(t *testing.T) {
		res, err := SolveSingleProportion(power.SolveRequest{
			Alpha: 0.05, Alternative: power.TwoSided,
			NullProp: 0.5, AltProp: 0.65,
			Power: power.Float(0.80),
		})
		require.NoError(t, err)

		back, err := SolveSingleProportion(power.SolveRequest{
			Alpha: 0.05, Alternative: power.TwoSided,
			NullProp: 0.5, AltProp: 0.65,
			SampleSize: res.SampleSize,
		})
		require.NoError(t, err)
		assert.InDelta(t, 0.80, *back.Power, 1e-9)
	})

	t.Run("direction below the null works symmetrically", func(t *testing.T) {
		res, err := SolveSingleProportion(power.SolveRequest{
			Alpha: 0.05, Alternative: power.TwoSided,
			NullProp: 0.5, AltProp: 0.35,
			Power: power.Float(0.80),
		})
		require.NoError(t, err)
		assert.Greater(t, *res.SampleSize, 1.0)
	})

	t.Run("equal proportions are degenerate", func(t *testing.T) {
		_, err := SolveSingleProportion(power.SolveRequest{
			Alpha: 0.05, Alternative: power.TwoSided,
			NullProp: 0.5, AltProp: 0.5,
			Power: power.Float(0.80),
		})
		require.Error(t, err)
		assert.True(t, power.IsDegenerate(err))
	})

	t.Run("boundary proportions are degenerate", func(t *testing.T) {
		for _, pair := range [][2]float64{{0, 0.5}, {1, 0.5}, {0.5, 0}, {0.5, 1}} {
			_, err := SolveSingleProportion(power.SolveRequest{
				Alpha: 0.05, Alternative: power.TwoSided,
				NullProp: pair[0], AltProp: pair[1],
				Power: power.Float(0.80),
			})
			require.Error(t, err, "p0=%v p1=%v", pair[0], pair[1])
			assert.True(t, power.IsDegenerate(err))
		}
	})
}

func TestSolveFisherExact(t *testing.T) {
	base := power.SolveRequest{
		Alpha: 0.05, Alternative: power.TwoSided, EffectSize: 0.2,
	}

	t.Run("required N inflates by the fixed factor", func(t *testing.T) {
		req := base
		req.Power = power.Float(0.80)
		approx, err := SolveTwoProportions(req)
		require.NoError(t, err)
		exact, err := SolveFisherExact(req)
		require.NoError(t, err)

		assert.InDelta(t, *approx.SampleSize*1.05, *exact.SampleSize, 1e-9)
		assert.InDelta(t, *exact.SampleSize*2, *exact.TotalSize, 1e-9)
	})

	t.Run("estimated power shrinks by the fixed factor", func(t *testing.T) {
		req := base
		req.SampleSize = power.Float(200)
		approx, err := SolveTwoProportions(req)
		require.NoError(t, err)
		exact, err := SolveFisherExact(req)
		require.NoError(t, err)

		assert.InDelta(t, *approx.Power*0.95, *exact.Power, 1e-9)
	})

	t.Run("degenerate inputs pass through", func(t *testing.T) {
		req := base
		req.EffectSize = 0
		req.Power = power.Float(0.80)
		_, err := SolveFisherExact(req)
		require.Error(t, err)
		assert.True(t, power.IsDegenerate(err))
	})
}
