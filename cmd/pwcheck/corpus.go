package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nao1215/pwcheck/internal/config"
	"github.com/nao1215/pwcheck/internal/corpus"
	"github.com/nao1215/pwcheck/internal/database"
)

// NewCorpusCmd creates the corpus command and its subcommands.
func NewCorpusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Manage imported breached-password corpora",
		Long: `Corpus manages word lists imported into the local database.

Importing decodes and deduplicates a word list once, so later runs can use
it with --corpus-db without parsing the text file again. The database lives
in the XDG data directory unless --db-dir is given.`,
	}

	cmd.AddCommand(newCorpusImportCmd())
	cmd.AddCommand(newCorpusListCmd())
	cmd.AddCommand(newCorpusRemoveCmd())

	return cmd
}

func newCorpusImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a word list into the database",
		Long: `Import reads a word list, one password per line, and stores its distinct
entries under a name. Importing an unchanged file again does nothing.

Examples:
  # Import rockyou.txt as "rockyou"
  pwcheck corpus import rockyou.txt

  # Import under another name and re-import even if unchanged
  pwcheck corpus import /tmp/leak.txt --name leak2024 --force`,
		Args: cobra.ExactArgs(1),
		RunE: runCorpusImportCmd,
	}

	cmd.Flags().StringP("name", "n", "",
		"Corpus name (default: file name without extension)")
	cmd.Flags().Bool("force", false,
		"Re-import even if the file is unchanged")

	return cmd
}

func runCorpusImportCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	enc, err := cfg.CorpusEncoding()
	if err != nil {
		return fmt.Errorf("configuration error: %w", config.ErrInvalidEncoding)
	}

	logger := setupLogger(cmd, cfg.Verbose)

	source := args[0]
	name, err := cmd.Flags().GetString("name")
	if err != nil {
		return err
	}
	if name == "" {
		name = corpusNameFromPath(source)
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	opts := []database.ImportOption{
		database.WithLoadOptions(corpus.WithProgress(cfg.ProgressEvery, func(lines int) {
			logger.Debug("corpus import progress", "name", name, "lines", lines)
		})),
	}
	if force {
		opts = append(opts, database.WithForce())
	}

	result, err := db.ImportCorpus(commandContext(cmd), name, source, enc, opts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.Skipped {
		fmt.Fprintf(out, "Corpus %q is up to date (%s passwords)\n",
			result.Info.Name, humanize.Comma(int64(result.Info.Entries)))
		return nil
	}

	fmt.Fprintf(out, "Imported %s passwords (%s lines) from %s as %q\n",
		humanize.Comma(int64(result.Info.Entries)),
		humanize.Comma(int64(result.Info.Lines)),
		source, result.Info.Name)
	logger.Debug("corpus imported",
		"name", result.Info.Name,
		"digest", result.Info.Digest,
		"db", db.Path(),
	)
	return nil
}

func newCorpusListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List imported corpora",
		Args:    cobra.NoArgs,
		RunE:    runCorpusListCmd,
	}
}

func runCorpusListCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	corpora, err := db.ListCorpora(commandContext(cmd))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(corpora) == 0 {
		fmt.Fprintln(out, "No corpora imported. Use 'pwcheck corpus import <file>' to add one.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPASSWORDS\tENCODING\tIMPORTED\tSOURCE")
	for _, c := range corpora {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			c.Name,
			humanize.Comma(int64(c.Entries)),
			c.Encoding,
			humanize.Time(c.ImportedAt),
			c.SourcePath,
		)
	}
	return tw.Flush()
}

func newCorpusRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove an imported corpus",
		Args:    cobra.ExactArgs(1),
		RunE:    runCorpusRemoveCmd,
	}
}

func runCorpusRemoveCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.DeleteCorpus(commandContext(cmd), args[0]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed corpus %q\n", args[0])
	return nil
}

// corpusNameFromPath derives a corpus name from a file name,
// e.g. /data/rockyou.txt becomes rockyou.
func corpusNameFromPath(path string) string {
	base := filepath.Base(path)
	if name := strings.TrimSuffix(base, filepath.Ext(base)); name != "" {
		return name
	}
	return base
}
