// Package main provides the bandscore CLI for estimating IELTS writing bands
// from the terminal.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ajharbinger/ielts-band-estimator/internal/analysis"
	"github.com/ajharbinger/ielts-band-estimator/internal/checker"
	apperrors "github.com/ajharbinger/ielts-band-estimator/internal/errors"
	"github.com/ajharbinger/ielts-band-estimator/internal/logger"
	"github.com/ajharbinger/ielts-band-estimator/internal/scoring"
	"github.com/ajharbinger/ielts-band-estimator/pkg/config"
)

var (
	analyzeTaskType string
	analyzeJSON     bool

	backendOverride string
	verbose         bool
)

func main() {
	_ = godotenv.Load()

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "bandscore",
		Short:        "Estimate IELTS writing band scores",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&backendOverride, "backend", "", "grammar checker backend (remote, local, embedded)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log checker startup and requests to stderr")

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newHealthCmd())
	return rootCmd
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze an essay read from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnalyzeCmd,
	}
	cmd.Flags().StringVarP(&analyzeTaskType, "task-type", "t", string(scoring.TaskEssay), "task type (essay, report, letter)")
	cmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the report as JSON")
	return cmd
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show grammar checker availability",
		Args:  cobra.NoArgs,
		RunE:  runHealthCmd,
	}
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	taskType, err := scoring.ParseTaskType(analyzeTaskType)
	if err != nil {
		return fmt.Errorf("invalid --task-type: %w", err)
	}

	text, err := readEssay(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	handle, log, err := provision(cmd.Context())
	if err != nil {
		return err
	}
	defer handle.Close()

	analyzer := analysis.NewAnalyzer(handle, handle.JavaAvailable(), log)
	report, err := analyzer.Analyze(cmd.Context(), analysis.Essay{Text: text, TaskType: taskType})
	if err != nil {
		if appErr, ok := apperrors.As(err); ok {
			return fmt.Errorf("%s", appErr.Reason())
		}
		return err
	}

	out := cmd.OutOrStdout()
	if analyzeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	_, err = fmt.Fprintln(out, renderReport(report))
	return err
}

func runHealthCmd(cmd *cobra.Command, _ []string) error {
	handle, _, err := provision(cmd.Context())
	if err != nil {
		return err
	}
	defer handle.Close()

	_, err = fmt.Fprintln(cmd.OutOrStdout(), renderHealth(handle))
	return err
}

func provision(ctx context.Context) (*checker.Handle, logger.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	log := logger.NewNop()
	if verbose {
		log = logger.New(cfg.Log.Level, cfg.Log.Format)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return checker.Provision(ctx, cfg.Checker, log), log, nil
}

func loadConfig() (*config.Config, error) {
	if backendOverride != "" {
		if err := os.Setenv("CHECKER_BACKEND", backendOverride); err != nil {
			return nil, fmt.Errorf("failed to apply --backend: %w", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func readEssay(stdin io.Reader, args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("failed to read essay: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("no essay text provided")
	}
	return string(data), nil
}
