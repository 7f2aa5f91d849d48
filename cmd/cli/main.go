package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"powercalc/app"
	"powercalc/domain/power"
	"powercalc/registry"
	"powercalc/solver"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "powercalc",
		Short: "Statistical power and sample-size calculator",
	}

	rootCmd.AddCommand(
		newTestsCmd(),
		newSolveCmd(),
		newCurveCmd(),
		newClusterCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newTestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tests",
		Short: "List the supported statistical tests",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, cfg := range registry.All() {
				fmt.Printf("%-40s family=%-10s effect=%s\n", cfg.Name, cfg.Family, cfg.Effect)
			}
			return nil
		},
	}
}

func newSolveCmd() *cobra.Command {
	var (
		testName    string
		alpha       float64
		alternative string
		effectSize  float64
		targetPower float64
		sampleSize  float64
		ratio       float64
		groups      int
		rawInputs   []string
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve for power or required sample size",
		Long: `Solve the missing quantity for a named test: supply --power to get the
required sample size, or --n to get the achieved power.

Example: powercalc solve --test "Two-Sample Independent Groups t-test" --effect 0.5 --alpha 0.05 --power 0.80`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ok := registry.Get(testName)
			if !ok {
				return fmt.Errorf("unknown test %q (run `powercalc tests`)", testName)
			}

			req := power.SolveRequest{
				Family:      cfg.Family,
				Alpha:       alpha,
				Alternative: power.Alternative(alternative),
				EffectSize:  effectSize,
				Ratio:       ratio,
				Groups:      groups,
			}
			if cfg.FixedAlt {
				req.Alternative = power.TwoSided
			}

			inputs, err := parseRawInputs(rawInputs)
			if err != nil {
				return err
			}
			switch cfg.Family {
			case power.FamilyLogRank:
				req.HazardRatio = inputs["hazard_ratio"]
				req.ProbEvent = inputs["prob_event"]
			case power.FamilySingleProportion:
				req.NullProp = inputs["null_prop"]
				req.AltProp = inputs["sample_prop"]
			default:
				if effectSize == 0 && len(inputs) > 0 {
					es, ok := power.EffectFromInputs(cfg.Effect, inputs)
					if !ok {
						return fmt.Errorf("effect size undefined for inputs %v", inputs)
					}
					req.EffectSize = es
				}
			}

			service := app.NewSolveService()
			var res power.SolveResult
			if cmd.Flags().Changed("n") {
				req.SampleSize = power.Float(sampleSize)
				res, err = service.SolvePower(req)
			} else if cmd.Flags().Changed("power") {
				req.Power = power.Float(targetPower)
				res, err = service.SolveSampleSize(req)
			} else {
				return fmt.Errorf("provide exactly one of --power or --n")
			}
			if err != nil {
				return err
			}

			return printResult(cfg, res)
		},
	}

	cmd.Flags().StringVar(&testName, "test", "", "test display name (see `powercalc tests`)")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "significance level")
	cmd.Flags().StringVar(&alternative, "alternative", "two-sided", "two-sided, larger or smaller")
	cmd.Flags().Float64Var(&effectSize, "effect", 0, "standardized effect size")
	cmd.Flags().Float64Var(&targetPower, "power", 0, "target power (solves for N)")
	cmd.Flags().Float64Var(&sampleSize, "n", 0, "sample size (solves for power)")
	cmd.Flags().Float64Var(&ratio, "ratio", 1.0, "allocation ratio n2/n1")
	cmd.Flags().IntVar(&groups, "groups", 0, "number of groups (ANOVA, Kruskal-Wallis)")
	cmd.Flags().StringSliceVar(&rawInputs, "input", nil, "raw input as name=value (repeatable)")
	cmd.MarkFlagRequired("test")

	return cmd
}

func newCurveCmd() *cobra.Command {
	var (
		testName   string
		alpha      float64
		effectSize float64
		ratio      float64
		groups     int
		nFrom      float64
		nTo        float64
		nStep      float64
	)

	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Sweep power across a sample-size grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ok := registry.Get(testName)
			if !ok {
				return fmt.Errorf("unknown test %q (run `powercalc tests`)", testName)
			}

			template := power.SolveRequest{
				Family:      cfg.Family,
				Alpha:       alpha,
				Alternative: power.TwoSided,
				EffectSize:  effectSize,
				Ratio:       ratio,
				Groups:      groups,
			}

			curves := app.NewCurveService(app.NewSolveService())
			points, err := curves.PowerCurve(cmd.Context(), template, nFrom, nTo, nStep)
			if err != nil {
				return err
			}

			fmt.Printf("%-12s %s\n", "N", "Power")
			for _, p := range points {
				fmt.Printf("%-12.0f %.4f\n", p.SampleSize, p.Power)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&testName, "test", "", "test display name (see `powercalc tests`)")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "significance level")
	cmd.Flags().Float64Var(&effectSize, "effect", 0, "standardized effect size")
	cmd.Flags().Float64Var(&ratio, "ratio", 1.0, "allocation ratio n2/n1")
	cmd.Flags().IntVar(&groups, "groups", 0, "number of groups (ANOVA, Kruskal-Wallis)")
	cmd.Flags().Float64Var(&nFrom, "from", 10, "grid start")
	cmd.Flags().Float64Var(&nTo, "to", 200, "grid end")
	cmd.Flags().Float64Var(&nStep, "step", 10, "grid step")
	cmd.MarkFlagRequired("test")
	cmd.MarkFlagRequired("effect")

	return cmd
}

func newClusterCmd() *cobra.Command {
	var (
		individualN float64
		clusterSize int
		icc         float64
	)

	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Inflate an individual-level N for a cluster-randomized design",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := solver.SolveCluster(individualN, clusterSize, icc)
			if err != nil {
				return err
			}
			fmt.Printf("Design effect: %.3f\n", *res.DesignEffect)
			fmt.Printf("Inflated total N: %d\n", int(math.Ceil(*res.TotalSize)))
			fmt.Printf("Clusters needed: %d\n", *res.Clusters)
			return nil
		},
	}

	cmd.Flags().Float64Var(&individualN, "n", 0, "individual-level required N")
	cmd.Flags().IntVar(&clusterSize, "cluster-size", 0, "subjects per cluster")
	cmd.Flags().Float64Var(&icc, "icc", 0, "intra-cluster correlation")
	cmd.MarkFlagRequired("n")
	cmd.MarkFlagRequired("cluster-size")

	return cmd
}

func parseRawInputs(pairs []string) (map[string]float64, error) {
	inputs := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid --input %q (want name=value)", pair)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --input %q: %w", pair, err)
		}
		inputs[name] = v
	}
	return inputs, nil
}

func printResult(cfg registry.TestFamilyConfig, res power.SolveResult) error {
	if res.Power != nil {
		fmt.Printf("Achieved power: %.4f\n", *res.Power)
		return nil
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	if res.SampleSize != nil {
		fmt.Printf("%s (rounded up): %d\n", cfg.NLabels[0], int(math.Ceil(*res.SampleSize)))
	}
	return nil
}
