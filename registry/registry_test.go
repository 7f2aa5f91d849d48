package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"powercalc/domain/power"
)

func TestRegistryContents(t *testing.T) {
	t.Run("all eleven tests are registered", func(t *testing.T) {
		assert.Len(t, Names(), 11)
		for _, name := range []string{
			"Two-Sample Independent Groups t-test",
			"One-Sample t-test",
			"Paired t-test",
			"Z-test: Two Independent Proportions",
			"Z-test: Single Proportion",
			"One-Way ANOVA (Between Subjects)",
			"Mann-Whitney U Test",
			"Wilcoxon Signed-Rank Test",
			"Kruskal-Wallis Test",
			"Fisher's Exact Test",
			"Log-Rank Test",
		} {
			_, ok := Get(name)
			assert.True(t, ok, name)
		}
	})

	t.Run("lookup miss", func(t *testing.T) {
		_, ok := Get("Chi-Square Test")
		assert.False(t, ok)
	})

	t.Run("names come back sorted", func(t *testing.T) {
		names := Names()
		assert.IsIncreasing(t, names)
		all := All()
		require.Len(t, all, len(names))
		for i, cfg := range all {
			assert.Equal(t, names[i], cfg.Name)
		}
	})

	t.Run("family routing fields", func(t *testing.T) {
		cfg, _ := Get("Two-Sample Independent Groups t-test")
		assert.Equal(t, power.FamilyTwoSampleT, cfg.Family)
		assert.True(t, cfg.NRatio)
		assert.Len(t, cfg.NLabels, 3)

		cfg, _ = Get("One-Way ANOVA (Between Subjects)")
		assert.Equal(t, power.FamilyANOVA, cfg.Family)
		assert.True(t, cfg.FixedAlt)
		assert.True(t, cfg.KGroups)

		cfg, _ = Get("Mann-Whitney U Test")
		assert.Equal(t, "mann_whitney", cfg.ARE)
		_, ok := power.AREFactors[cfg.ARE]
		assert.True(t, ok)

		cfg, _ = Get("Fisher's Exact Test")
		assert.True(t, cfg.Fisher)

		cfg, _ = Get("Log-Rank Test")
		assert.Equal(t, []string{"hazard_ratio", "prob_event"}, cfg.RawInputs)
	})

	t.Run("every ARE key resolves to a factor", func(t *testing.T) {
		for _, cfg := range All() {
			if cfg.ARE == "" {
				continue
			}
			factor, ok := power.AREFactors[cfg.ARE]
			require.True(t, ok, cfg.Name)
			assert.Greater(t, factor, 0.9)
			assert.LessOrEqual(t, factor, 1.0)
		}
	})
}
