package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"ratiocop/internal/batch"
	"ratiocop/internal/classify"
	"ratiocop/internal/cmdlog"
	"ratiocop/internal/config"
	"ratiocop/internal/logging"
	"ratiocop/internal/metrics"
	"ratiocop/internal/model"
	"ratiocop/internal/report"
	"ratiocop/internal/store"
	"ratiocop/internal/theme"
)

var (
	version = "v1.2.0" // Overwritten at build time
)

// errUsage marks the bad-invocation path: usage goes to stdout and the
// process exits 1 without an extra error line.
var errUsage = errors.New("usage")

const usageText = `Usage: ratiocop <following> <followers>

Pass how many accounts you follow and how many follow you back.
The verdict will not surprise you.

Run "ratiocop --help" for subcommands.`

var (
	outputFormat string
	configPath   string
	cfg          config.Config
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ratiocop <following> <followers>",
		Short: "Judge a follow ratio against the mass-follower thresholds",
		Long: `ratiocop classifies a GitHub following count against fixed thresholds
and prints a verdict, a description, and a recommendation you will
ignore.

The thresholds are not configurable. That is the feature.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = loadConfig(configPath)
			applyColor(cfg)
			metrics.StartServer(cfg.Metrics.Addr)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				fmt.Fprintln(cmd.OutOrStdout(), usageText)
				return errUsage
			}
			return cmdlog.Run("analyze", func() error {
				c := classify.New(model.DefaultThresholds())
				a := c.AnalyzeRatio(parseCount(args[0]), parseCount(args[1]))
				metrics.IncAnalysis(string(a.Verdict))
				format := pickFormat()
				if err := report.WriteRatio(cmd.OutOrStdout(), a, format); err != nil {
					return err
				}
				if a.Shame && format == report.FormatHuman {
					fmt.Fprintln(cmd.OutOrStdout(), c.GenerateMessage(a.Following))
				}
				return nil
			})
		},
	}

	// Disable automatic 'completion' command added by cobra
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "Output format: human, json, or yaml")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./ratiocop.yaml", "Path to the optional config file")

	rootCmd.AddCommand(
		newFollowBackCmd(),
		newMessageCmd(),
		newWallCmd(),
		newBatchCmd(),
		newReportCmd(),
		newInitCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// newFollowBackCmd diagnoses a single follow exchange.
func newFollowBackCmd() *cobra.Command {
	var (
		theyFollowYou  bool
		theirFollowing int
		followedBack   bool
		stillFollows   bool
	)

	cmd := &cobra.Command{
		Use:   "followback",
		Short: "Diagnose a follow-back exchange",
		Long: `Pattern-match one follow exchange against the classic plays.

Examples:
  # They followed, you did not bite, they left
  ratiocop followback --they-follow-you --their-following 2000

  # They followed, you followed back
  ratiocop followback --they-follow-you --their-following 2000 --followed-back`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdlog.Run("followback", func() error {
				c := classify.New(model.DefaultThresholds())
				a := c.AnalyzeFollowBack(theyFollowYou, theirFollowing, followedBack, stillFollows)
				return report.WriteFollowBack(cmd.OutOrStdout(), a, pickFormat())
			})
		},
	}

	cmd.Flags().BoolVar(&theyFollowYou, "they-follow-you", false, "They currently show as following you")
	cmd.Flags().IntVar(&theirFollowing, "their-following", 0, "How many accounts they follow")
	cmd.Flags().BoolVar(&followedBack, "followed-back", false, "You followed them back")
	cmd.Flags().BoolVar(&stillFollows, "still-follows", false, "They still follow you today")

	return cmd
}

// newMessageCmd prints one shame message for a following count.
func newMessageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "message <following>",
		Short: "Generate a shame message for a following count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdlog.Run("message", func() error {
				c := classify.New(model.DefaultThresholds())
				fmt.Fprintln(cmd.OutOrStdout(), c.GenerateMessage(parseCount(args[0])))
				return nil
			})
		},
	}
}

// newWallCmd checks the public wall of shame.
func newWallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wall <username>",
		Short: "Check whether a user is on the public wall of shame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdlog.Run("wall", func() error {
				c := classify.New(model.DefaultThresholds())
				if c.IsOnWallOfShame(args[0]) {
					// Unreachable until someone populates the wall. Nobody will.
					fmt.Fprintf(cmd.OutOrStdout(), "%s is on the wall of shame.\n", args[0])
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is not on the wall of shame. Nobody is. The wall has been empty since launch.\n", args[0])
				return nil
			})
		},
	}
}

// newBatchCmd classifies accounts from a JSONL file.
func newBatchCmd() *cobra.Command {
	var (
		inputFile   string
		resultsFile string
		dbPath      string
		topN        int
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Classify accounts from a JSONL file",
		Long: `Classify every account in a JSONL file and write one result per line.

Input lines look like {"username":"x","following":12000,"followers":80}.
Blank lines and # comments are skipped.

Examples:
  # Classify a list, results to stdout
  ratiocop batch --input accounts.jsonl

  # Keep results in a file and a SQLite database
  ratiocop batch --input accounts.jsonl --results results.jsonl --db results.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdlog.Run("batch", func() error {
				start := time.Now()
				f, err := os.Open(inputFile)
				if err != nil {
					return fmt.Errorf("open input: %w", err)
				}
				defer f.Close()
				accounts, skipped, err := batch.ReadAccounts(f)
				if err != nil {
					return fmt.Errorf("read accounts: %w", err)
				}

				// Spinner for visual feedback on large lists. Stderr, so
				// piped results stay clean.
				s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
				s.Suffix = fmt.Sprintf(" Judging %d accounts...", len(accounts))
				s.Start()
				c := classify.New(model.DefaultThresholds())
				results := batch.Run(c, accounts)
				s.Stop()

				for _, r := range results {
					metrics.IncAnalysis(string(r.Verdict))
				}

				w, err := batch.NewWriter(resultsFile)
				if err != nil {
					return err
				}
				defer w.Close()
				if err := w.WriteResults(results); err != nil {
					return err
				}

				runID := uuid.NewString()
				if dbPath == "" {
					dbPath = cfg.Batch.DBPath
				}
				if dbPath != "" {
					db, err := store.Open(dbPath)
					if err != nil {
						return fmt.Errorf("open results db: %w", err)
					}
					defer db.Close()
					for _, r := range results {
						if err := db.PutResult(cmd.Context(), runID, r.Username, r.RatioAnalysis); err != nil {
							return fmt.Errorf("store result: %w", err)
						}
					}
				}

				if !cmd.Flags().Changed("top") {
					topN = cfg.Batch.Top
				}
				summary := batch.Summarize(runID, results, skipped, topN)
				batch.PrintSummary(os.Stderr, summary)

				metrics.ObserveBatchDuration(start)
				logging.Info("batch_done", map[string]any{
					"run_id":   runID,
					"accounts": len(accounts),
					"skipped":  skipped,
				})
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input JSONL file of accounts")
	cmd.Flags().StringVar(&resultsFile, "results", "", "Results file (JSONL, default: stdout)")
	cmd.Flags().StringVar(&dbPath, "db", "", "Optional SQLite database for results")
	cmd.Flags().IntVar(&topN, "top", 10, "Number of top offenders in the summary")
	cmd.MarkFlagRequired("input")

	return cmd
}

// newReportCmd summarizes previously written batch results.
func newReportCmd() *cobra.Command {
	var (
		inputFile string
		dbPath    string
		runID     string
		topN      int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize previously written batch results",
		Long: `Summarize batch results from a JSONL file or the SQLite sink.

Examples:
  # Summarize a results file
  ratiocop report --input results.jsonl

  # Summarize one run from the database
  ratiocop report --db results.db --run 1f0cdd1e-...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdlog.Run("report", func() error {
				var results []batch.Result
				switch {
				case dbPath != "":
					db, err := store.Open(dbPath)
					if err != nil {
						return fmt.Errorf("open results db: %w", err)
					}
					defer db.Close()
					stored, err := db.LoadResults(cmd.Context(), runID)
					if err != nil {
						return fmt.Errorf("load results: %w", err)
					}
					for _, sr := range stored {
						results = append(results, batch.Result{Username: sr.Username, RatioAnalysis: sr.Analysis})
					}
				case inputFile != "":
					f, err := os.Open(inputFile)
					if err != nil {
						return fmt.Errorf("open input: %w", err)
					}
					defer f.Close()
					results, err = batch.ReadResults(f)
					if err != nil {
						return fmt.Errorf("read results: %w", err)
					}
				default:
					return errors.New("either --input or --db is required")
				}

				summary := batch.Summarize(runID, results, 0, topN)
				batch.PrintSummary(cmd.OutOrStdout(), summary)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input JSONL file with batch results")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database with batch results")
	cmd.Flags().StringVar(&runID, "run", "", "Limit the database summary to one run id")
	cmd.Flags().IntVar(&topN, "top", 10, "Number of top offenders to show")

	return cmd
}

// newInitCmd writes a default config file.
func newInitCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdlog.Run("init", func() error {
				if err := config.Save(path, config.Default()); err != nil {
					return err
				}
				abs, err := filepath.Abs(path)
				if err != nil {
					abs = path
				}
				fmt.Fprint(cmd.OutOrStdout(), theme.Banner())
				fmt.Fprintln(cmd.OutOrStdout(), "Config written to:", abs)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&path, "path", "./ratiocop.yaml", "Where to write the config")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ratiocop version %s\n", version)
		},
	}
}

func loadConfig(path string) config.Config {
	c, err := config.Load(path)
	if err != nil {
		logging.Error("config_load", map[string]any{"path": path, "error": err.Error()})
		return config.Default()
	}
	return c
}

func applyColor(c config.Config) {
	switch c.Output.Color {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
}

func pickFormat() string {
	if outputFormat != "" {
		return outputFormat
	}
	if cfg.Output.Format != "" {
		return cfg.Output.Format
	}
	return report.FormatHuman
}

// parseCount mirrors the tool's number handling: anything unparseable
// becomes NaN and flows through classification unvalidated.
func parseCount(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
