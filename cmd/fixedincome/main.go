// Command fixedincome compares keeping a fixed-income holding against switching to another:
// deterministic projection, Monte Carlo over the rate path, breakeven rate and scenario table.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rpgo/fixedincome/internal/calculation"
	"github.com/rpgo/fixedincome/internal/config"
	"github.com/rpgo/fixedincome/internal/domain"
	"github.com/rpgo/fixedincome/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "FIXEDINCOME"

var errNoConfig = errors.New("no input file: pass --config or a path argument")

// step runs one part of the analysis and attaches its result to the base report.
type step func(ctx context.Context, ce *calculation.CalculationEngine, cfg *domain.Configuration, report *calculation.AnalysisReport) error

type cli struct {
	v      *viper.Viper
	parser *config.InputParser
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New(), parser: config.NewInputParser()}

	root := &cobra.Command{
		Use:          "fixedincome",
		Short:        "Analyze switching between fixed-income assets",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "path to the YAML input file")
	flags.StringP("format", "f", "", "output format: "+strings.Join(output.AvailableFormatterNames(), ", ")+" or all")
	flags.Int("simulations", 0, "number of Monte Carlo draws")
	flags.Int64("seed", 0, "seed of the first Monte Carlo stream")
	flags.Int("workers", 0, "concurrent Monte Carlo streams (0 = all CPUs)")
	flags.String("log-level", "", "log level override (debug, info, warn, error)")
	flags.String("log-format", "", "log format override (json, console)")

	if err := c.bindFlags(flags); err != nil {
		panic(err)
	}

	root.AddCommand(
		c.stepCommand("analyze", "Run every step and print the recommendation", analyzeStep),
		c.stepCommand("project", "Project both assets under the base assumption path", projectStep),
		c.stepCommand("simulate", "Run the Monte Carlo simulation", simulateStep),
		c.stepCommand("breakeven", "Solve for the proposed rate that matches the current asset", breakevenStep),
		c.stepCommand("scenarios", "Evaluate the scenario catalog", scenariosStep),
		c.exampleCommand(),
	)
	return root
}

// bindFlags lets each persistent flag be overridden by a FIXEDINCOME_* variable.
func (c *cli) bindFlags(flags *pflag.FlagSet) error {
	if err := c.v.BindPFlags(flags); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	return nil
}

func analyzeStep(ctx context.Context, ce *calculation.CalculationEngine, cfg *domain.Configuration, report *calculation.AnalysisReport) error {
	full, err := ce.RunAnalysis(ctx, cfg)
	if err != nil {
		return err
	}
	*report = *full
	return nil
}

func projectStep(context.Context, *calculation.CalculationEngine, *domain.Configuration, *calculation.AnalysisReport) error {
	return nil
}

func simulateStep(ctx context.Context, ce *calculation.CalculationEngine, cfg *domain.Configuration, report *calculation.AnalysisReport) error {
	mc, err := ce.RunMonteCarlo(ctx, cfg)
	if err != nil {
		return fmt.Errorf("monte carlo simulation failed: %w", err)
	}
	report.MonteCarlo = mc
	return nil
}

func breakevenStep(_ context.Context, ce *calculation.CalculationEngine, cfg *domain.Configuration, report *calculation.AnalysisReport) error {
	be, err := ce.SolveBreakeven(cfg)
	if err != nil {
		return fmt.Errorf("breakeven solve failed: %w", err)
	}
	report.Breakeven = be
	return nil
}

func scenariosStep(_ context.Context, ce *calculation.CalculationEngine, cfg *domain.Configuration, report *calculation.AnalysisReport) error {
	sa, err := ce.RunScenarios(cfg)
	if err != nil {
		return fmt.Errorf("scenario generation failed: %w", err)
	}
	report.Scenarios = sa
	return nil
}

func (c *cli) stepCommand(use, short string, run step) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [config.yaml]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfiguration(args)
			if err != nil {
				return err
			}

			logger, err := initializeLogger(cfg.Logging, c.v.GetString("log-level"), c.v.GetString("log-format"))
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			format := c.outputFormat(cfg)
			if output.NormalizeFormatName(format) != "all" {
				if _, err := output.ResolveFormatter(format); err != nil {
					return err
				}
			}

			ce := calculation.NewCalculationEngine()
			ce.SetLogger(logger.Sugar())

			report, err := ce.BaseReport(cfg)
			if err != nil {
				return err
			}
			if err := run(cmd.Context(), ce, cfg, report); err != nil {
				logger.Sugar().Errorw("analysis step failed", "op", use, "error", err)
				return err
			}
			return output.GenerateReport(cmd.OutOrStdout(), report, format)
		},
	}
}

func (c *cli) exampleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print an example input file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.parser.WriteExample(cmd.OutOrStdout())
		},
	}
}

// loadConfiguration reads the input file and applies flag and environment overrides.
func (c *cli) loadConfiguration(args []string) (*domain.Configuration, error) {
	path := c.v.GetString("config")
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return nil, errNoConfig
	}

	cfg, err := c.parser.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	if c.v.IsSet("simulations") {
		cfg.Simulation.NumSimulations = c.v.GetInt("simulations")
	}
	if c.v.IsSet("seed") {
		cfg.Simulation.Seed = c.v.GetInt64("seed")
	}
	if c.v.IsSet("workers") {
		cfg.Simulation.Workers = c.v.GetInt("workers")
	}
	if err := c.parser.ValidateConfiguration(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *cli) outputFormat(cfg *domain.Configuration) string {
	if f := c.v.GetString("format"); f != "" {
		return f
	}
	return cfg.Output.Format
}
