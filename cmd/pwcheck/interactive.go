package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/pwcheck/internal/config"
	"github.com/nao1215/pwcheck/internal/prompt"
	"github.com/nao1215/pwcheck/internal/strength"
)

// NewInteractiveCmd creates the interactive command.
func NewInteractiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"repl"},
		Short:   "Evaluate passwords typed at a prompt",
		Long: `Interactive loads the corpus once and then evaluates every password you
type, one per line, until you enter the exit keyword or press Ctrl-D / Ctrl-C.

Examples:
  # Use rockyou.txt in the current directory
  pwcheck interactive

  # Use another word list and hide what you type
  pwcheck interactive -w /usr/share/wordlists/rockyou.txt --hide

  # Use a corpus imported with 'pwcheck corpus import'
  pwcheck interactive --corpus-db rockyou

  # Quit with "salir" instead of "exit"
  pwcheck interactive --exit-keyword salir`,
		Args: cobra.NoArgs,
		RunE: runInteractiveCmd,
	}

	cmd.Flags().Bool("hide", false,
		"Do not echo passwords while typing (terminal only)")
	cmd.Flags().String("exit-keyword", config.DefaultExitKeyword,
		"Keyword that ends the session (case-insensitive)")
	addOutputFlags(cmd)

	return cmd
}

// runInteractiveCmd executes the interactive command.
func runInteractiveCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildInteractiveConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg.Verbose)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	idx, err := loadCorpus(ctx, cmd, cfg, logger)
	if err != nil {
		return err
	}

	writer, err := newWriter(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	opts := []prompt.Option{
		prompt.WithInput(cmd.InOrStdin()),
		prompt.WithOutput(cmd.OutOrStdout()),
		prompt.WithPrompt(cfg.Prompt),
		prompt.WithExitKeyword(cfg.ExitKeyword),
		prompt.WithLogger(logger),
	}
	if cfg.HideInput {
		if f, ok := cmd.InOrStdin().(*os.File); ok {
			opts = append(opts, prompt.WithHiddenInput(int(f.Fd())))
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Type %q to quit.\n", cfg.ExitKeyword)

	engine := strength.NewEngine(idx, strength.WithLogger(logger))
	return prompt.NewSession(engine, writer, opts...).Run(ctx)
}

// buildInteractiveConfig adds the interactive flags to the shared config.
func buildInteractiveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}

	if err := applyOutputFlags(cmd, cfg); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("hide") {
		if cfg.HideInput, err = flags.GetBool("hide"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("exit-keyword") {
		if cfg.ExitKeyword, err = flags.GetString("exit-keyword"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// commandContext returns the command context, or Background when unset.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
