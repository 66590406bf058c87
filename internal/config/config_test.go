package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/pwcheck/internal/model"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default CorpusPath is rockyou.txt", func(t *testing.T) {
		t.Parallel()
		if cfg.CorpusPath != "rockyou.txt" {
			t.Errorf("expected CorpusPath to be 'rockyou.txt', got %q", cfg.CorpusPath)
		}
	})

	t.Run("default Encoding is latin1", func(t *testing.T) {
		t.Parallel()
		if cfg.Encoding != "latin1" {
			t.Errorf("expected Encoding to be 'latin1', got %q", cfg.Encoding)
		}
	})

	t.Run("default Format is text", func(t *testing.T) {
		t.Parallel()
		if cfg.Format != FormatText {
			t.Errorf("expected Format to be 'text', got %q", cfg.Format)
		}
	})

	t.Run("default ExitKeyword is exit", func(t *testing.T) {
		t.Parallel()
		if cfg.ExitKeyword != "exit" {
			t.Errorf("expected ExitKeyword to be 'exit', got %q", cfg.ExitKeyword)
		}
	})

	t.Run("default BatchSize is 8", func(t *testing.T) {
		t.Parallel()
		if cfg.BatchSize != 8 {
			t.Errorf("expected BatchSize to be 8, got %d", cfg.BatchSize)
		}
	})

	t.Run("masking and hidden input are off", func(t *testing.T) {
		t.Parallel()
		if cfg.MaskPassword || cfg.HideInput {
			t.Error("expected MaskPassword and HideInput to be false")
		}
	})

	t.Run("DBDir is under the XDG data dir", func(t *testing.T) {
		t.Parallel()
		if cfg.DBDir != XDGDataDir() {
			t.Errorf("expected DBDir %q, got %q", XDGDataDir(), cfg.DBDir)
		}
	})

	t.Run("defaults validate", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected default config to be valid, got %v", err)
		}
	})
}

// TestConfigValidate tests the Validate method with one broken rule per case.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"no corpus", func(c *Config) { c.CorpusPath = ""; c.CorpusStore = "" }, ErrNoCorpus},
		{"store without path is valid", func(c *Config) { c.CorpusPath = ""; c.CorpusStore = "rockyou" }, nil},
		{"unknown encoding", func(c *Config) { c.Encoding = "cp1252" }, ErrInvalidEncoding},
		{"utf8 encoding is valid", func(c *Config) { c.Encoding = "utf-8" }, nil},
		{"unknown format", func(c *Config) { c.Format = "html" }, ErrInvalidFormat},
		{"markdown format is valid", func(c *Config) { c.Format = FormatMarkdown }, nil},
		{"zero batch size", func(c *Config) { c.BatchSize = 0 }, ErrInvalidBatchSize},
		{"negative batch size", func(c *Config) { c.BatchSize = -1 }, ErrInvalidBatchSize},
		{"blank exit keyword", func(c *Config) { c.ExitKeyword = "  " }, ErrEmptyExitKeyword},
		{"zero progress interval", func(c *Config) { c.ProgressEvery = 0 }, ErrInvalidProgressEvery},
		{"bad fail-on", func(c *Config) { c.FailOn = "meh" }, ErrInvalidFailOn},
		{"fail-on weak is valid", func(c *Config) { c.FailOn = "weak" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected nil, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFailOnClassification(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	if _, ok, err := cfg.FailOnClassification(); ok || err != nil {
		t.Errorf("expected disabled threshold, got ok=%v err=%v", ok, err)
	}

	cfg.FailOn = "fair"
	cl, ok, err := cfg.FailOnClassification()
	if err != nil || !ok || cl != model.Fair {
		t.Errorf("expected FAIR threshold, got %v ok=%v err=%v", cl, ok, err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("applies every section", func(t *testing.T) {
		t.Parallel()

		content := `
corpus:
  path: /data/rockyou.txt
  encoding: utf8
output:
  format: json
  mask_password: true
  color: false
  fail_on: weak
interactive:
  exit_keyword: salir
  prompt: "> "
  hide_input: true
batch_size: 3
`
		path := filepath.Join(t.TempDir(), ".pwcheck")
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg := NewConfig()
		f.Apply(cfg)

		if cfg.CorpusPath != "/data/rockyou.txt" {
			t.Errorf("CorpusPath = %q", cfg.CorpusPath)
		}
		if cfg.Encoding != "utf8" {
			t.Errorf("Encoding = %q", cfg.Encoding)
		}
		if cfg.Format != FormatJSON {
			t.Errorf("Format = %q", cfg.Format)
		}
		if !cfg.MaskPassword {
			t.Error("expected MaskPassword")
		}
		if !cfg.NoColor {
			t.Error("expected NoColor when color is false")
		}
		if cfg.FailOn != "weak" {
			t.Errorf("FailOn = %q", cfg.FailOn)
		}
		if cfg.ExitKeyword != "salir" {
			t.Errorf("ExitKeyword = %q", cfg.ExitKeyword)
		}
		if cfg.Prompt != "> " {
			t.Errorf("Prompt = %q", cfg.Prompt)
		}
		if !cfg.HideInput {
			t.Error("expected HideInput")
		}
		if cfg.BatchSize != 3 {
			t.Errorf("BatchSize = %d", cfg.BatchSize)
		}
	})

	t.Run("unset values keep defaults", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".pwcheck")
		if err := os.WriteFile(path, []byte("corpus:\n  store: rockyou\n"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cfg := NewConfig()
		f.Apply(cfg)

		if cfg.CorpusStore != "rockyou" {
			t.Errorf("CorpusStore = %q", cfg.CorpusStore)
		}
		if cfg.CorpusPath != DefaultCorpusPath || cfg.Format != DefaultFormat || cfg.BatchSize != DefaultBatchSize {
			t.Errorf("expected defaults to survive, got %+v", cfg)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".pwcheck")
		if err := os.WriteFile(path, []byte("corpus: [unterminated"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfigFile(path); !errors.Is(err, ErrInvalidConfigFile) {
			t.Errorf("expected ErrInvalidConfigFile, got %v", err)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".pwcheck")
		if err := os.WriteFile(path, []byte("output:\n  formt: json\n"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfigFile(path); !errors.Is(err, ErrInvalidConfigFile) {
			t.Errorf("expected ErrInvalidConfigFile, got %v", err)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".pwcheck")
		if err := os.WriteFile(path, nil, 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cfg := NewConfig()
		f.Apply(cfg)
		if cfg.Format != DefaultFormat {
			t.Errorf("empty file changed format to %q", cfg.Format)
		}
	})

	t.Run("nil file applies nothing", func(t *testing.T) {
		t.Parallel()

		var f *File
		cfg := NewConfig()
		f.Apply(cfg)
		if cfg.CorpusPath != DefaultCorpusPath {
			t.Error("nil file must not change config")
		}
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte(""), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("FindConfigFile(%q) = %q", path, got)
		}
	})

	t.Run("explicit missing path", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); got != "" {
			t.Errorf("expected empty path, got %q", got)
		}
	})
}

func TestXDGDirs(t *testing.T) {
	t.Parallel()

	if !strings.HasSuffix(XDGDataDir(), AppName) {
		t.Errorf("XDGDataDir() = %q, expected suffix %q", XDGDataDir(), AppName)
	}
	if !strings.HasSuffix(XDGConfigDir(), AppName) {
		t.Errorf("XDGConfigDir() = %q, expected suffix %q", XDGConfigDir(), AppName)
	}
}
