package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nao1215/pwcheck/internal/config"
	"github.com/nao1215/pwcheck/internal/corpus"
	"github.com/nao1215/pwcheck/internal/database"
	pwlog "github.com/nao1215/pwcheck/internal/log"
	"github.com/nao1215/pwcheck/internal/report"
	"github.com/nao1215/pwcheck/internal/strength"
)

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a redacting structured logger on stderr. --log-json
// switches it from text to JSON lines.
func setupLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	if asJSON, _ := cmd.Flags().GetBool("log-json"); asJSON {
		return pwlog.NewSecureJSONLogger(cmd.ErrOrStderr(), verbose)
	}
	return pwlog.NewSecureLogger(cmd.ErrOrStderr(), verbose)
}

// buildConfig creates a Config from defaults, the configuration file and
// the persistent flags, in that order. Flags only override the file when
// they were given explicitly.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicitly requested file must exist; the default locations are optional.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if flags.Changed("corpus") {
		if cfg.CorpusPath, err = flags.GetString("corpus"); err != nil {
			return nil, err
		}
		// An explicit word list wins over a store configured in the file.
		cfg.CorpusStore = ""
	}
	if flags.Changed("corpus-db") {
		if cfg.CorpusStore, err = flags.GetString("corpus-db"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("encoding") {
		if cfg.Encoding, err = flags.GetString("encoding"); err != nil {
			return nil, err
		}
	}
	if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// applyOutputFlags copies the report flags shared by interactive and check.
func applyOutputFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("format") {
		if cfg.Format, err = flags.GetString("format"); err != nil {
			return err
		}
	}
	if flags.Changed("mask") {
		if cfg.MaskPassword, err = flags.GetBool("mask"); err != nil {
			return err
		}
	}
	if flags.Changed("no-color") {
		if cfg.NoColor, err = flags.GetBool("no-color"); err != nil {
			return err
		}
	}
	return nil
}

// addOutputFlags registers the flags read by applyOutputFlags.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", config.DefaultFormat,
		"Output format: text, markdown or json")
	cmd.Flags().BoolP("mask", "m", false,
		"Replace passwords with asterisks in the output")
	cmd.Flags().Bool("no-color", false,
		"Disable colors in text output")
}

// newWriter returns the report writer selected by cfg.
func newWriter(cfg *config.Config, output io.Writer) (report.Writer, error) {
	opts := []report.Option{
		report.WithMaskedPassword(cfg.MaskPassword),
		report.WithColor(!cfg.NoColor && !color.NoColor && isTerminal(output)),
	}
	if cfg.Format == config.FormatJSON && isTerminal(output) {
		opts = append(opts, report.WithPrettyPrint())
	}
	return report.New(cfg.Format, output, opts...)
}

// isTerminal reports whether w is a terminal.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// loadCorpus loads the configured corpus, either from the database or from
// the word list, and fails when it is missing or empty.
func loadCorpus(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) (*corpus.Index, error) {
	var (
		result *corpus.LoadResult
		err    error
	)

	if cfg.CorpusStore != "" {
		result, err = loadStoredCorpus(ctx, cfg)
	} else {
		enc, encErr := cfg.CorpusEncoding()
		if encErr != nil {
			return nil, encErr
		}
		logger.Debug("loading corpus", "path", cfg.CorpusPath, "encoding", string(enc))
		result, err = corpus.Load(ctx, cfg.CorpusPath,
			corpus.WithEncoding(enc),
			corpus.WithProgress(cfg.ProgressEvery, func(lines int) {
				logger.Debug("corpus loading progress", "lines", lines)
			}),
		)
	}
	if err != nil {
		return nil, err
	}
	if err := result.Err(); err != nil {
		return nil, err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Loaded %s passwords from %s\n",
		humanize.Comma(int64(result.Index.Len())), result.Path)
	logger.Debug("corpus loaded",
		"path", result.Path,
		"entries", result.Index.Len(),
		"lines", result.Lines,
	)

	return result.Index, nil
}

// directLookupMax is the largest number of passwords checked against a
// stored corpus with one query each. Longer lists load the whole index.
const directLookupMax = 256

// openMembership returns the corpus to evaluate n passwords against and a
// function that releases it. For a stored corpus and at most directLookupMax
// passwords it queries the database per password; otherwise it loads the
// full index with loadCorpus. Call the release function once evaluation is
// done and check its error: a failed lookup is reported there.
func openMembership(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, n int) (strength.Membership, func() error, error) {
	if cfg.CorpusStore == "" || n > directLookupMax {
		idx, err := loadCorpus(ctx, cmd, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return idx, func() error { return nil }, nil
	}

	dbFile := filepath.Join(cfg.DBDir, database.FileName)
	missing := &corpus.LoadResult{Status: corpus.StatusMissing, Path: dbFile + "#" + cfg.CorpusStore}
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		return nil, nil, missing.Err()
	}

	db, err := database.Open(cfg.DBDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	lookup, err := db.NewLookup(ctx, cfg.CorpusStore)
	if err != nil {
		_ = db.Close()
		if errors.Is(err, database.ErrCorpusNotFound) {
			return nil, nil, missing.Err()
		}
		return nil, nil, err
	}
	if lookup.Info().Entries == 0 {
		_ = db.Close()
		empty := &corpus.LoadResult{Status: corpus.StatusEmpty, Path: missing.Path}
		return nil, nil, empty.Err()
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Using %s stored passwords from %s\n",
		humanize.Comma(int64(lookup.Info().Entries)), missing.Path)
	logger.Debug("checking stored corpus per password",
		"name", cfg.CorpusStore,
		"entries", lookup.Info().Entries,
		"passwords", n,
	)

	release := func() error {
		lookupErr := lookup.Err()
		closeErr := db.Close()
		if lookupErr != nil {
			return fmt.Errorf("corpus lookup failed: %w", lookupErr)
		}
		return closeErr
	}
	return lookup, release, nil
}

// loadStoredCorpus reads a corpus imported into the database. A missing
// database is reported like a missing corpus.
func loadStoredCorpus(ctx context.Context, cfg *config.Config) (*corpus.LoadResult, error) {
	if _, err := os.Stat(filepath.Join(cfg.DBDir, database.FileName)); os.IsNotExist(err) {
		return &corpus.LoadResult{
			Status: corpus.StatusMissing,
			Path:   filepath.Join(cfg.DBDir, database.FileName) + "#" + cfg.CorpusStore,
			Index:  corpus.NewIndex(),
		}, nil
	}

	db, err := database.Open(cfg.DBDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	return db.LoadCorpus(ctx, cfg.CorpusStore)
}

// openOutput returns the report destination: the file named by path with
// owner-only permissions, or stdout when path is empty.
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports may contain passwords, so only the owner can read them.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}
