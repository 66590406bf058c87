package main

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/nao1215/pwcheck/internal/config"
	"github.com/nao1215/pwcheck/internal/corpus"
)

//go:embed templates/pwcheck.yaml.tmpl
var configTemplateText string

var configTemplate = template.Must(template.New("pwcheck.yaml").Parse(configTemplateText))

// configFileName is the file written by init without -o or --xdg.
const configFileName = config.DefaultConfigFile

// templateValues are substituted into the configuration template.
type templateValues struct {
	CorpusPath string
	Encoding   corpus.Encoding
}

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented pwcheck configuration file",
		Long: `Init writes a configuration file with every option documented.

The word list and encoding come from --corpus and --encoding when given,
so the file starts out pointing at the corpus you already use. The other
options are written with their defaults.

Examples:
  # Create .pwcheck in the current directory
  pwcheck init

  # Create the per-user file in the XDG config directory
  pwcheck init --xdg -w /usr/share/wordlists/rockyou.txt

  # Print the configuration instead of writing it
  pwcheck init --stdout

  # Replace an existing file
  pwcheck init -o ~/.pwcheck -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Output file path for the configuration")
	cmd.Flags().Bool("xdg", false,
		"Write to "+config.XDGConfigFile())
	cmd.Flags().Bool("stdout", false,
		"Print the configuration to stdout instead of writing a file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")
	cmd.MarkFlagsMutuallyExclusive("output", "xdg", "stdout")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	values, err := initTemplateValues(cmd)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := configTemplate.Execute(&buf, values); err != nil {
		return fmt.Errorf("failed to render config template: %w", err)
	}

	flags := cmd.Flags()
	toStdout, err := flags.GetBool("stdout")
	if err != nil {
		return err
	}
	if toStdout {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	path, err := initOutputPath(cmd)
	if err != nil {
		return err
	}
	force, err := flags.GetBool("force")
	if err != nil {
		return err
	}

	if err := writeConfigFile(path, buf.Bytes(), force); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", path)
	fmt.Fprintf(out, "Corpus: %s (%s)\n", values.CorpusPath, values.Encoding)
	fmt.Fprintln(out, "Run 'pwcheck corpus import' to store the word list, then set corpus.store.")
	return nil
}

// initTemplateValues takes the corpus settings from the root flags when they
// were given, and the defaults otherwise.
func initTemplateValues(cmd *cobra.Command) (templateValues, error) {
	values := templateValues{CorpusPath: config.DefaultCorpusPath, Encoding: corpus.EncodingLatin1}

	if f := cmd.Flags().Lookup("corpus"); f != nil && f.Changed {
		values.CorpusPath = f.Value.String()
	}
	if f := cmd.Flags().Lookup("encoding"); f != nil && f.Changed {
		enc, err := corpus.ParseEncoding(f.Value.String())
		if err != nil {
			return values, fmt.Errorf("configuration error: %w", config.ErrInvalidEncoding)
		}
		values.Encoding = enc
	}
	return values, nil
}

// initOutputPath returns the file init writes to.
func initOutputPath(cmd *cobra.Command) (string, error) {
	xdgTarget, err := cmd.Flags().GetBool("xdg")
	if err != nil {
		return "", err
	}
	if xdgTarget {
		return config.XDGConfigFile(), nil
	}
	return cmd.Flags().GetString("output")
}

// writeConfigFile creates path with owner-only permissions. Without force an
// existing file is left untouched.
func writeConfigFile(path string, content []byte, force bool) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	flag := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flag, 0600) //nolint:gosec // User-provided config path is intentional
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", path)
	}
	if err != nil {
		return fmt.Errorf("failed to create configuration file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close configuration file: %w", cerr)
		}
	}()

	if _, err := io.Copy(f, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return nil
}
