package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/pwcheck/internal/config"
)

// exitError carries a process exit code other than 1.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// NewRootCmd creates the root command for pwcheck.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pwcheck",
		Short: "Evaluate password strength against a breached-password corpus",
		Long: `pwcheck evaluates passwords with two independent signals:
membership in a known-breached password corpus (rockyou.txt by default) and
a complexity score derived from character composition and length.

Every evaluation reports a classification from "Very weak" to "Excellent",
the weaknesses found and an estimated brute-force crack time.

Passwords are never logged and evaluation results are never stored.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write log records as JSON lines")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .pwcheck in current or home directory)")
	cmd.PersistentFlags().StringP("corpus", "w", config.DefaultCorpusPath,
		"Breached-password word list, one password per line")
	cmd.PersistentFlags().String("corpus-db", "",
		"Use a corpus imported with 'pwcheck corpus import' instead of a word list")
	cmd.PersistentFlags().String("encoding", config.DefaultEncoding,
		"Word list encoding: latin1 or utf8")
	cmd.PersistentFlags().String("db-dir", config.XDGDataDir(),
		"Directory of the imported corpus database")

	// Add subcommands
	cmd.AddCommand(NewInteractiveCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewCorpusCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(1)
	}
}
