package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/pwcheck/internal/batch"
	"github.com/nao1215/pwcheck/internal/config"
	"github.com/nao1215/pwcheck/internal/corpus"
	"github.com/nao1215/pwcheck/internal/model"
	"github.com/nao1215/pwcheck/internal/report"
	"github.com/nao1215/pwcheck/internal/strength"
)

// errNoPasswords is returned when check gets neither arguments nor a list.
var errNoPasswords = errors.New("no passwords provided (pass them as arguments or use --list)")

// failOnExitCode is the exit code used when --fail-on matches.
const failOnExitCode = 2

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [password...]",
		Short: "Evaluate passwords given as arguments or in a file",
		Long: `Check evaluates one or more passwords and prints a report.

Passwords are taken from the arguments and from --list, a file with one
password per line ("-" reads standard input). Leading and trailing
whitespace is removed from both, and blank entries are skipped.

With --corpus-db, short lists are looked up in the database one password
at a time instead of loading the whole corpus.

Beware that passwords given as arguments may end up in your shell history.

Examples:
  # Evaluate a single password
  pwcheck check 'Tr0ub4dor&3'

  # Evaluate a list and write a Markdown report
  pwcheck check --list candidates.txt -f markdown -o report.md

  # Show the report and keep a copy
  pwcheck check 'Tr0ub4dor&3' -o report.txt --tee

  # Fail a CI job when any password is weak or worse
  pwcheck check --list candidates.txt --fail-on weak --mask`,
		Args: cobra.ArbitraryArgs,
		RunE: runCheckCmd,
	}

	cmd.Flags().StringP("list", "l", "",
		"File with one password per line (- for stdin)")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent evaluations")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("tee", false,
		"With --output, also print the report to stdout")
	cmd.Flags().String("fail-on", "",
		"Exit with status 2 when any password is at or below this classification")
	addOutputFlags(cmd)

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildCheckConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg.Verbose)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	list, err := cmd.Flags().GetString("list")
	if err != nil {
		return err
	}
	passwords, err := collectPasswords(ctx, cmd.InOrStdin(), args, list)
	if err != nil {
		return err
	}
	if len(passwords) == 0 {
		return errNoPasswords
	}

	tee, err := cmd.Flags().GetBool("tee")
	if err != nil {
		return err
	}

	member, release, err := openMembership(ctx, cmd, cfg, logger, len(passwords))
	if err != nil {
		return err
	}

	engine := strength.NewEngine(member, strength.WithLogger(logger))
	evaluator := batch.NewEvaluator(engine,
		batch.WithConcurrency(cfg.BatchSize),
		batch.WithLogger(logger),
	)

	results, evalErr := evaluator.Evaluate(ctx, passwords)
	releaseErr := release()
	if evalErr != nil {
		return fmt.Errorf("evaluation interrupted: %w", evalErr)
	}
	if releaseErr != nil {
		return releaseErr
	}

	if err := writeResults(cfg, cmd.OutOrStdout(), results, list != "", tee); err != nil {
		return err
	}

	return checkFailOn(cfg, results)
}

// buildCheckConfig adds the check flags to the shared config.
func buildCheckConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}

	if err := applyOutputFlags(cmd, cfg); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("batch") {
		if cfg.BatchSize, err = flags.GetInt("batch"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("fail-on") {
		if cfg.FailOn, err = flags.GetString("fail-on"); err != nil {
			return nil, err
		}
	}
	if cfg.OutputFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// collectPasswords returns the trimmed, non-blank arguments followed by the
// entries of list.
func collectPasswords(ctx context.Context, stdin io.Reader, args []string, list string) ([]string, error) {
	passwords := make([]string, 0, len(args))
	for _, arg := range args {
		if pw := strings.TrimSpace(arg); pw != "" {
			passwords = append(passwords, pw)
		}
	}

	if list == "" {
		return passwords, nil
	}

	var r io.Reader
	if list == "-" {
		r = stdin
	} else {
		f, err := os.Open(list) //nolint:gosec // User-provided list path is intentional
		if err != nil {
			return nil, fmt.Errorf("failed to open password list: %w", err)
		}
		defer f.Close()
		r = f
	}

	// Lists are typed by people, so read them as UTF-8 rather than Latin-1.
	_, err := corpus.Scan(ctx, r, func(entry string) error {
		passwords = append(passwords, entry)
		return nil
	}, corpus.WithEncoding(corpus.EncodingUTF8))
	if err != nil {
		return nil, fmt.Errorf("failed to read password list: %w", err)
	}

	return passwords, nil
}

// writeResults renders the results to stdout or the configured file, or to
// both when tee is set. A single password from the arguments is rendered as
// one result.
func writeResults(cfg *config.Config, stdout io.Writer, results []*model.EvaluationResult, fromList, tee bool) (err error) {
	output, closeOutput, err := openOutput(cfg.OutputFile, stdout)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOutput(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	writer, err := newWriter(cfg, output)
	if err != nil {
		return err
	}
	if tee && cfg.OutputFile != "" {
		// Each side gets its own writer so only the terminal is colored.
		console, err := newWriter(cfg, stdout)
		if err != nil {
			return err
		}
		writer = report.NewMultiWriter(console, writer)
	}

	if len(results) == 1 && !fromList {
		_, err = writer.Write(results[0])
	} else {
		_, err = writer.WriteBatch(results)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.OutputFile != "" {
		fmt.Fprintf(stdout, "Report written to %s\n", cfg.OutputFile)
	}
	return nil
}

// checkFailOn returns an exitError when any result is at or below the
// FailOn classification.
func checkFailOn(cfg *config.Config, results []*model.EvaluationResult) error {
	threshold, ok, err := cfg.FailOnClassification()
	if err != nil || !ok {
		return err
	}

	failed := 0
	for _, r := range results {
		if r != nil && r.Classification <= threshold {
			failed++
		}
	}
	if failed == 0 {
		return nil
	}

	return &exitError{
		code: failOnExitCode,
		err:  fmt.Errorf("%d password(s) rated %s or weaker", failed, threshold.Label()),
	}
}
