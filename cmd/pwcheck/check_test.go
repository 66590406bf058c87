package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/nao1215/pwcheck/internal/config"
	"github.com/nao1215/pwcheck/internal/corpus"
)

const testWords = "123456\npassword\n\nqwerty\n"

func TestNewCheckCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCheckCmd()
	for _, name := range []string{"list", "batch", "output", "fail-on", "format", "mask", "no-color"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
	if flag := cmd.Flags().Lookup("batch"); flag != nil && flag.DefValue != "8" {
		t.Errorf("expected default batch 8, got %q", flag.DefValue)
	}
}

func TestCheckCmd(t *testing.T) {
	t.Parallel()

	t.Run("single password", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, testWords)
		stdout, stderr, err := executeCommand(t, "", env.args("check", "abcdefgh")...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"| Classification | Weak", "2.42 days", "no uppercase"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("expected stdout to contain %q, got:\n%s", want, stdout)
			}
		}
		if !strings.Contains(stderr, "Loaded 3 passwords") {
			t.Errorf("expected load message, got %q", stderr)
		}
		if strings.Contains(stdout, "Evaluated") {
			t.Error("single argument should not print a batch summary")
		}
	})

	t.Run("corpus hit is very weak", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, testWords)
		stdout, _, err := executeCommand(t, "", env.args("check", "password")...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Very weak") || !strings.Contains(stdout, "| In corpus      | yes") {
			t.Errorf("expected corpus hit, got:\n%s", stdout)
		}
	})

	t.Run("password list from file", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, testWords)
		list := filepath.Join(env.dir, "list.txt")
		if err := os.WriteFile(list, []byte("qwerty\n\n  Tr0ub4dor&3xyz  \nabc\n"), 0600); err != nil {
			t.Fatalf("failed to write list: %v", err)
		}

		stdout, _, err := executeCommand(t, "", env.args("check", "--list", list)...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Evaluated 3 password(s), 1 found in corpus") {
			t.Errorf("unexpected summary:\n%s", stdout)
		}
	})

	t.Run("password list from stdin as JSON", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, testWords)
		stdout, _, err := executeCommand(t, "123456\naaaaaa\n", env.args("check", "--list", "-", "-f", "json", "-b", "2")...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded struct {
			Summary struct {
				Total int `json:"total"`
			} `json:"summary"`
			Results []struct {
				Password       string `json:"password"`
				Classification string `json:"classification"`
			} `json:"results"`
		}
		if err := json.Unmarshal([]byte(stdout), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout)
		}
		if decoded.Summary.Total != 2 || len(decoded.Results) != 2 {
			t.Fatalf("unexpected document %+v", decoded)
		}
		if decoded.Results[0].Password != "123456" || decoded.Results[0].Classification != "VERY_WEAK" {
			t.Errorf("unexpected first result %+v", decoded.Results[0])
		}
		if decoded.Results[1].Classification != "WEAK" {
			t.Errorf("unexpected second result %+v", decoded.Results[1])
		}
	})

	t.Run("arguments and list are combined", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, testWords)
		stdout, _, err := executeCommand(t, "two\n", env.args("check", "one", "--list", "-", "-f", "json")...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, `"total":2`) {
			t.Errorf("expected two results, got %s", stdout)
		}
	})

	t.Run("masked markdown to file", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, testWords)
		output := filepath.Join(env.dir, "reports", "report.md")
		stdout, _, err := executeCommand(t, "", env.args("check", "s3cr3tPass", "-f", "markdown", "--mask", "-o", output)...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Report written to") {
			t.Errorf("expected confirmation, got %q", stdout)
		}

		content, err := os.ReadFile(output)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(content), "# Password Strength Report") {
			t.Errorf("expected markdown report, got:\n%s", content)
		}
		if strings.Contains(string(content), "s3cr3tPass") {
			t.Error("password should be masked in the report")
		}

		if runtime.GOOS != "windows" {
			info, err := os.Stat(output)
			if err != nil {
				t.Fatalf("failed to stat report: %v", err)
			}
			if perm := info.Mode().Perm(); perm != 0600 {
				t.Errorf("expected permissions 0600, got %o", perm)
			}
		}
	})

	t.Run("tee prints the report and writes the file", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, testWords)
		output := filepath.Join(env.dir, "report.txt")
		stdout, _, err := executeCommand(t, "", env.args("check", "abcdefgh", "-o", output, "--tee")...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "| Classification | Weak") || !strings.Contains(stdout, "Report written to") {
			t.Errorf("expected report and confirmation on stdout, got:\n%s", stdout)
		}

		content, err := os.ReadFile(output)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(content), "| Classification | Weak") {
			t.Errorf("expected report in file, got:\n%s", content)
		}
		if strings.Contains(string(content), "Report written to") {
			t.Error("confirmation must only go to stdout")
		}
	})

	t.Run("tee without output prints once", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, testWords)
		stdout, _, err := executeCommand(t, "", env.args("check", "abcdefgh", "--tee")...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n := strings.Count(stdout, "| Classification |"); n != 1 {
			t.Errorf("expected one report, got %d:\n%s", n, stdout)
		}
	})

	t.Run("arguments are trimmed and blanks skipped", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, testWords)
		stdout, _, err := executeCommand(t, "", env.args("check", "  password  ", "", "   ", "-f", "json")...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, `"password":"password"`) || !strings.Contains(stdout, `"in_corpus":true`) {
			t.Errorf("expected trimmed corpus hit, got %s", stdout)
		}
		if strings.Contains(stdout, `"total"`) {
			t.Errorf("expected a single result, got %s", stdout)
		}
	})

	t.Run("log-json writes JSON log records", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, testWords)
		_, stderr, err := executeCommand(t, "", env.args("-v", "--log-json", "check", "abcdefgh")...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stderr, `"msg":"corpus loaded"`) {
			t.Errorf("expected JSON log record, got %q", stderr)
		}
		if strings.Contains(stderr, "abcdefgh") {
			t.Error("password leaked into the log")
		}
	})

	t.Run("fail-on returns exit code 2", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, testWords)
		_, _, err := executeCommand(t, "", env.args("check", "abc", "Tr0ub4dor&3xyz", "--fail-on", "weak")...)
		var ee *exitError
		if !errors.As(err, &ee) {
			t.Fatalf("expected exitError, got %v", err)
		}
		if ee.code != failOnExitCode {
			t.Errorf("expected exit code %d, got %d", failOnExitCode, ee.code)
		}
		if !strings.Contains(err.Error(), "1 password(s)") {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("fail-on passes for strong passwords", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, testWords)
		if _, _, err := executeCommand(t, "", env.args("check", "Tr0ub4dor&3xyz", "--fail-on", "fair")...); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("config file sets defaults and flags override", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, testWords)
		env.writeConfig(t, "output:\n  format: json\n  fail_on: very_weak\n")

		stdout, _, err := executeCommand(t, "", env.args("check", "abcdefgh")...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(stdout, "{") {
			t.Errorf("expected JSON from config file, got %q", stdout)
		}

		stdout, _, err = executeCommand(t, "", env.args("check", "abcdefgh", "-f", "text")...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "| Classification |") {
			t.Errorf("expected text from flag override, got %q", stdout)
		}

		_, _, err = executeCommand(t, "", env.args("check", "123456")...)
		var ee *exitError
		if !errors.As(err, &ee) {
			t.Errorf("expected fail_on from config file to trigger, got %v", err)
		}
	})
}

func TestCheckCmdErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		words   string
		args    func(env *testEnv) []string
		wantErr error
	}{
		{
			name:  "missing corpus",
			words: testWords,
			args: func(env *testEnv) []string {
				return append(env.args("check", "abc"), "-w", filepath.Join(env.dir, "missing.txt"))
			},
			wantErr: corpus.ErrCorpusMissing,
		},
		{
			name:    "empty corpus",
			words:   "\n   \n",
			args:    func(env *testEnv) []string { return env.args("check", "abc") },
			wantErr: corpus.ErrCorpusEmpty,
		},
		{
			name:    "no passwords",
			words:   testWords,
			args:    func(env *testEnv) []string { return env.args("check") },
			wantErr: errNoPasswords,
		},
		{
			name:    "only blank passwords",
			words:   testWords,
			args:    func(env *testEnv) []string { return env.args("check", "", "  ") },
			wantErr: errNoPasswords,
		},
		{
			name:    "invalid format",
			words:   testWords,
			args:    func(env *testEnv) []string { return env.args("check", "abc", "-f", "xml") },
			wantErr: config.ErrInvalidFormat,
		},
		{
			name:    "invalid batch size",
			words:   testWords,
			args:    func(env *testEnv) []string { return env.args("check", "abc", "-b", "0") },
			wantErr: config.ErrInvalidBatchSize,
		},
		{
			name:    "invalid fail-on",
			words:   testWords,
			args:    func(env *testEnv) []string { return env.args("check", "abc", "--fail-on", "terrible") },
			wantErr: config.ErrInvalidFailOn,
		},
		{
			name:    "invalid encoding",
			words:   testWords,
			args:    func(env *testEnv) []string { return env.args("check", "abc", "--encoding", "ebcdic") },
			wantErr: config.ErrInvalidEncoding,
		},
		{
			name:  "missing config file",
			words: testWords,
			args: func(env *testEnv) []string {
				return append(env.args("check", "abc"), "-c", filepath.Join(env.dir, "nope.yaml"))
			},
			wantErr: config.ErrConfigNotFound,
		},
		{
			name:    "stored corpus without database",
			words:   testWords,
			args:    func(env *testEnv) []string { return env.args("check", "abc", "--corpus-db", "rockyou") },
			wantErr: corpus.ErrCorpusMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, tt.words)
			_, _, err := executeCommand(t, "", tt.args(env)...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
