package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"distviz/adapters/excel"
	"distviz/adapters/rng"
	"distviz/app"
	"distviz/domain/dist"
	"distviz/internal"
	"distviz/internal/config"
	"distviz/internal/errors"
	"distviz/internal/variants"
	"distviz/ui"
)

// runtime is the wiring shared by every subcommand
type runtime struct {
	cfg     *config.Config
	logger  *internal.Logger
	service *app.VisualizerService
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rt := &runtime{}
	var seed uint64

	rootCmd := &cobra.Command{
		Use:           "distviz",
		Short:         "Explore probability distributions: curves, statistics, quantiles and samples",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.init(seed)
		},
	}
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Random seed for sampling (overrides RNG_SEED; 0 keeps it)")

	rootCmd.AddCommand(
		newListCmd(rt),
		newInfoCmd(rt),
		newCurveCmd(rt),
		newStatsCmd(rt),
		newQuantilesCmd(rt),
		newSampleCmd(rt),
		newCompareCmd(rt),
		newExportCmd(rt),
		newServeCmd(rt),
	)
	return rootCmd
}

// init loads .env and configuration and builds the service graph
func (rt *runtime) init(seed uint64) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if seed != 0 {
		cfg.Sampling.Seed = seed
	}

	logger := internal.NewLogger(internal.ParseLevel(cfg.Log.Level))
	source, err := rng.New(cfg.Sampling.Seed)
	if err != nil {
		return errors.Wrap(err, "failed to seed random source")
	}
	logger.Debug("random source seeded with %d", source.Seed())

	rt.cfg = cfg
	rt.logger = logger
	rt.service = app.NewVisualizerService(variants.New(cfg.Curve.Points), source, cfg.Sampling, logger)
	return nil
}

// parseParams converts --param name=value pairs. No pairs at all selects the defaults.
func parseParams(raw map[string]string) (dist.Params, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	params := make(dist.Params, len(raw))
	for name, value := range raw {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, errors.InvalidInput(fmt.Sprintf("parameter %s: %q is not a number", name, value))
		}
		params[name] = v
	}
	return params, nil
}

func printJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func newListCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available distributions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), rt.service.Distributions())
		},
	}
}

func newInfoCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "info [distribution]",
		Short: "Show the parameter schema and description of a distribution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := rt.service.Describe(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), d)
		},
	}
}

func newCurveCmd(rt *runtime) *cobra.Command {
	var raw map[string]string
	var showCDF bool

	cmd := &cobra.Command{
		Use:   "curve [distribution]",
		Short: "Evaluate the density or mass curve on the default domain",
		Long: `Evaluate the density (continuous) or mass (discrete) curve of a distribution.

Example: distviz curve Normal --param mean=0 --param std=2 --cdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(raw)
			if err != nil {
				return err
			}
			curve, err := rt.service.Curve(args[0], params, nil)
			if err != nil {
				return err
			}
			if !showCDF {
				curve.CDF = nil
			}
			return printJSON(cmd.OutOrStdout(), curve)
		},
	}

	cmd.Flags().StringToStringVar(&raw, "param", nil, "Distribution parameter as name=value (repeatable)")
	cmd.Flags().BoolVar(&showCDF, "cdf", false, "Include the cumulative curve")
	return cmd
}

func newStatsCmd(rt *runtime) *cobra.Command {
	var raw map[string]string

	cmd := &cobra.Command{
		Use:   "stats [distribution]",
		Short: "Compute mean, variance, standard deviation, skewness and kurtosis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(raw)
			if err != nil {
				return err
			}
			stats, err := rt.service.Statistics(args[0], params)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), stats)
		},
	}

	cmd.Flags().StringToStringVar(&raw, "param", nil, "Distribution parameter as name=value (repeatable)")
	return cmd
}

func newQuantilesCmd(rt *runtime) *cobra.Command {
	var raw map[string]string
	var probs []float64

	cmd := &cobra.Command{
		Use:   "quantiles [distribution]",
		Short: "Compute quantile markers (continuous distributions only)",
		Long: `Compute quantile markers. Without --prob the reference probabilities
2.5%, 25%, 50%, 75% and 97.5% are used.

Example: distviz quantiles t-distribution --param df=4 --prob 0.05,0.95`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(raw)
			if err != nil {
				return err
			}
			markers, err := rt.service.Quantiles(args[0], params, probs)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), markers)
		},
	}

	cmd.Flags().StringToStringVar(&raw, "param", nil, "Distribution parameter as name=value (repeatable)")
	cmd.Flags().Float64SliceVar(&probs, "prob", nil, "Probabilities in (0, 1)")
	return cmd
}

func newSampleCmd(rt *runtime) *cobra.Command {
	var raw map[string]string
	var count int
	var streamSeed uint64
	var valuesOnly bool

	cmd := &cobra.Command{
		Use:   "sample [distribution]",
		Short: "Draw random samples with summary, histogram and moment profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(raw)
			if err != nil {
				return err
			}
			set, err := rt.service.Samples(args[0], params, count, streamSeed)
			if err != nil {
				return err
			}
			if valuesOnly {
				return printJSON(cmd.OutOrStdout(), set.Values)
			}
			return printJSON(cmd.OutOrStdout(), set)
		},
	}

	cmd.Flags().StringToStringVar(&raw, "param", nil, "Distribution parameter as name=value (repeatable)")
	cmd.Flags().IntVar(&count, "count", 0, "Number of samples (0 uses SAMPLE_DEFAULT_SIZE)")
	cmd.Flags().Uint64Var(&streamSeed, "replay-seed", 0, "Draw from the stream for this distribution and seed (0 uses the shared source)")
	cmd.Flags().BoolVar(&valuesOnly, "values", false, "Print only the drawn values")
	return cmd
}

func newCompareCmd(rt *runtime) *cobra.Command {
	var raw map[string]string

	cmd := &cobra.Command{
		Use:   "compare [distribution] [comparison]",
		Short: "Evaluate a second distribution on the first one's domain",
		Long: `Evaluate the comparison distribution, with its fixed comparison
parameters, on the domain of the primary distribution.

Example: distviz compare Normal t-distribution --param mean=0 --param std=1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(raw)
			if err != nil {
				return err
			}
			result, err := rt.service.Render(app.RenderRequest{
				Distribution: args[0],
				Params:       params,
				ShowCDF:      true,
				CompareWith:  args[1],
			})
			if err != nil {
				return err
			}
			if result.Comparison == nil {
				rt.logger.Warn("%s compared with itself; comparison skipped", args[0])
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringToStringVar(&raw, "param", nil, "Distribution parameter as name=value (repeatable)")
	return cmd
}

func newExportCmd(rt *runtime) *cobra.Command {
	var raw map[string]string
	var outPath, compareWith string
	var showCDF bool

	cmd := &cobra.Command{
		Use:   "export [distribution]",
		Short: "Write the curve and statistics to an .xlsx or .csv file",
		Long: `Write the curve and statistics to a spreadsheet. The format follows the
file extension of --out.

Example: distviz export Gamma --param shape=3 --param scale=2 --out gamma.xlsx --compare Exponential`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(raw)
			if err != nil {
				return err
			}
			result, err := rt.service.Render(app.RenderRequest{
				Distribution:   args[0],
				Params:         params,
				ShowCDF:        showCDF,
				ShowStatistics: true,
				CompareWith:    compareWith,
			})
			if err != nil {
				return err
			}

			f, err := os.Create(outPath)
			if err != nil {
				return errors.Wrapf(err, "failed to create %s", outPath)
			}
			writer := excel.NewDataWriter(excel.FormatFromPath(outPath))
			if err := writer.Write(f, ui.ExportFromResult(result)); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			rt.logger.Info("wrote %s export of %s to %s", writer.Format(), result.Distribution, outPath)
			return nil
		},
	}

	cmd.Flags().StringToStringVar(&raw, "param", nil, "Distribution parameter as name=value (repeatable)")
	cmd.Flags().StringVar(&outPath, "out", "distribution.xlsx", "Output file (.xlsx or .csv)")
	cmd.Flags().StringVar(&compareWith, "compare", "", "Comparison distribution to add as extra columns")
	cmd.Flags().BoolVar(&showCDF, "cdf", true, "Include the cumulative curve")
	return cmd
}

func newServeCmd(rt *runtime) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = rt.cfg.Server.Port
			}
			return ui.NewApp(rt.service, rt.logger).Start(ui.Config{Port: port})
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (default from PORT)")
	return cmd
}
