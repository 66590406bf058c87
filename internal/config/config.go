package config

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/nao1215/pwcheck/internal/corpus"
	"github.com/nao1215/pwcheck/internal/model"
	"github.com/nao1215/pwcheck/internal/prompt"
	"github.com/nao1215/pwcheck/internal/report"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "pwcheck"

	// DefaultCorpusPath is the word list looked up when none is configured.
	// rockyou.txt is the de facto standard breached-password list.
	DefaultCorpusPath = "rockyou.txt"

	// DefaultEncoding decodes every byte of the word list, so no entry is
	// ever rejected.
	DefaultEncoding = string(corpus.EncodingLatin1)

	// DefaultFormat is the human-readable terminal report.
	DefaultFormat = FormatText

	// DefaultExitKeyword ends the interactive session. It is matched
	// case-insensitively.
	DefaultExitKeyword = prompt.DefaultExitKeyword

	// DefaultPrompt is printed before every interactive read.
	DefaultPrompt = prompt.DefaultPrompt

	// DefaultBatchSize is the number of concurrent evaluations for
	// password lists. Evaluation is CPU bound and fast, so a small pool is
	// enough to saturate output.
	DefaultBatchSize = 8

	// DefaultProgressEvery is how often, in lines, corpus loading reports progress.
	DefaultProgressEvery = 1_000_000
)

// Report formats.
const (
	FormatText     = report.FormatText
	FormatMarkdown = report.FormatMarkdown
	FormatJSON     = report.FormatJSON
)

// Formats lists the supported report formats.
var Formats = []string{FormatText, FormatMarkdown, FormatJSON}

// Config holds all configuration options for pwcheck.
// It is populated from the configuration file and CLI flags and passed
// explicitly to the components that need it.
type Config struct {
	// CorpusPath is the word list to load when CorpusStore is empty.
	CorpusPath string

	// CorpusStore names a corpus previously imported into the local
	// database. When set it takes precedence over CorpusPath.
	CorpusStore string

	// Encoding is the word-list encoding: "latin1" or "utf8".
	Encoding string

	// Format selects the report writer: "text", "markdown" or "json".
	Format string

	// OutputFile receives the report instead of stdout when set.
	OutputFile string

	// MaskPassword replaces the password with asterisks in reports.
	MaskPassword bool

	// NoColor disables ANSI colors in the text report.
	NoColor bool

	// ExitKeyword ends the interactive session.
	ExitKeyword string

	// Prompt is printed before every interactive read.
	Prompt string

	// HideInput reads interactive input without echo when stdin is a terminal.
	HideInput bool

	// BatchSize is the number of concurrent evaluations for password lists.
	BatchSize int

	// FailOn makes the check command exit non-zero when any result is at or
	// below this classification. Empty disables the check.
	FailOn string

	// ProgressEvery is the corpus loading progress interval in lines.
	ProgressEvery int

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the configuration file that was requested.
	ConfigFilePath string

	// DBDir is the directory of the corpus database.
	DBDir string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		CorpusPath:    DefaultCorpusPath,
		Encoding:      DefaultEncoding,
		Format:        DefaultFormat,
		ExitKeyword:   DefaultExitKeyword,
		Prompt:        DefaultPrompt,
		BatchSize:     DefaultBatchSize,
		ProgressEvery: DefaultProgressEvery,
		DBDir:         XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for pwcheck.
// On Linux: ~/.local/share/pwcheck
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for pwcheck.
// On Linux: ~/.config/pwcheck
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// CorpusEncoding returns the parsed word-list encoding.
func (c *Config) CorpusEncoding() (corpus.Encoding, error) {
	return corpus.ParseEncoding(c.Encoding)
}

// FailOnClassification returns the parsed FailOn threshold and whether
// one is configured.
func (c *Config) FailOnClassification() (model.Classification, bool, error) {
	if strings.TrimSpace(c.FailOn) == "" {
		return model.VeryWeak, false, nil
	}
	cl, err := model.ParseClassification(c.FailOn)
	if err != nil {
		return model.VeryWeak, false, err
	}
	return cl, true, nil
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.CorpusPath == "" && c.CorpusStore == "" {
		return ErrNoCorpus
	}

	if _, err := c.CorpusEncoding(); err != nil {
		return ErrInvalidEncoding
	}

	if !isKnownFormat(c.Format) {
		return ErrInvalidFormat
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if strings.TrimSpace(c.ExitKeyword) == "" {
		return ErrEmptyExitKeyword
	}

	if c.ProgressEvery <= 0 {
		return ErrInvalidProgressEvery
	}

	if _, _, err := c.FailOnClassification(); err != nil {
		return ErrInvalidFailOn
	}

	return nil
}

func isKnownFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}
