package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/txrisk/internal/config"
	"github.com/cleared-dev/txrisk/internal/graph"
	"github.com/cleared-dev/txrisk/internal/ingest"
	"github.com/cleared-dev/txrisk/internal/logging"
	"github.com/cleared-dev/txrisk/internal/model"
	"github.com/cleared-dev/txrisk/internal/report"
	"github.com/cleared-dev/txrisk/internal/risk"
)

type analyzeOptions struct {
	configPath  string
	envFile     string
	inputFormat string
	output      string
	sample      bool
	cycleMode   string
	maxAccounts int
	maxSet      bool
}

func newAnalyzeCommand() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Ingest transactions, detect cycles and score accounts",
		Long: "Reads sender,receiver,amount rows from a file (or - for stdin), builds the\n" +
			"transaction graph and prints cycle and risk results.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			opts.maxSet = cmd.Flags().Changed("max-accounts")
			return runAnalyze(cmd, path, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to txrisk.yaml (defaults apply when empty)")
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "optional .env file with TXRISK_* overrides")
	cmd.Flags().StringVar(&opts.inputFormat, "format", "", "input format: csv or tsv (default: from file extension)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "output format: text, json, yaml or csv")
	cmd.Flags().BoolVar(&opts.sample, "sample", false, "analyze the built-in sample transactions")
	cmd.Flags().StringVar(&opts.cycleMode, "cycle-mode", "", "override scoring.cycle_mode: reachable or member")
	cmd.Flags().IntVar(&opts.maxAccounts, "max-accounts", 0, "override limits.max_accounts (0 = unbounded)")

	return cmd
}

func loadConfig(opts analyzeOptions) (*config.Config, error) {
	if err := config.LoadDotEnv(opts.envFile); err != nil {
		return nil, err
	}

	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if opts.cycleMode != "" {
		cfg.Scoring.CycleMode = opts.cycleMode
	}
	if opts.maxSet {
		cfg.Limits.MaxAccounts = opts.maxAccounts
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func readTransactions(cmd *cobra.Command, path string, opts analyzeOptions) ([]model.Transaction, error) {
	if opts.sample {
		if path != "" {
			return nil, errors.New("pass either a file or --sample, not both")
		}
		txns := ingest.Sample()
		if err := ingest.Validate(txns); err != nil {
			return nil, fmt.Errorf("sample data: %w", err)
		}
		return txns, nil
	}
	if path == "" {
		return nil, errors.New("no input: pass a file, - for stdin, or --sample")
	}

	format := opts.inputFormat
	if format == "" {
		format = ingest.FormatFromPath(path)
	}

	reg := ingest.DefaultRegistry()
	if path == "-" {
		return reg.Read(cmd.InOrStdin(), format)
	}
	return reg.ReadFile(path, format)
}

func runAnalyze(cmd *cobra.Command, path string, opts analyzeOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger := logging.New(cmd.ErrOrStderr(), cfg.Logging)

	txns, err := readTransactions(cmd, path, opts)
	if err != nil {
		return err
	}
	logger.Debug("transactions loaded", "count", len(txns), "source", sourceName(path, opts.sample))

	g, err := ingestAll(logger, txns, cfg.Limits.MaxAccounts)
	if err != nil {
		return err
	}

	res := report.Analyze(g, risk.NewScorer(cfg.RiskConfig()))
	logger.Info("analysis complete",
		"run_id", res.RunID,
		"accounts", res.AccountCount,
		"edges", res.EdgeCount,
		"cycle_detected", res.CycleDetected,
		"flagged", len(res.Flagged()),
	)

	return writeResult(cmd.OutOrStdout(), opts.output, res)
}

func ingestAll(logger *slog.Logger, txns []model.Transaction, maxAccounts int) (*graph.Graph, error) {
	g := graph.New(maxAccounts)
	if err := g.AddAll(txns); err != nil {
		if errors.Is(err, graph.ErrCapacityExceeded) {
			logger.Error("account capacity exceeded", "limit", g.MaxAccounts(), "accounts", g.Len(), "err", err)
		}
		return nil, fmt.Errorf("ingesting transactions: %w", err)
	}
	return g, nil
}

func writeResult(w io.Writer, format string, res report.Result) error {
	if err := report.Write(w, format, res); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func sourceName(path string, sample bool) string {
	switch {
	case sample:
		return "sample"
	case path == "-":
		return "stdin"
	default:
		return path
	}
}
