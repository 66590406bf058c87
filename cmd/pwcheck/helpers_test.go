package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds the files a command test runs against.
type testEnv struct {
	dir        string
	corpusPath string
	configPath string
	dbDir      string
}

// newTestEnv writes a word list and an empty config file into a temp dir.
// The explicit config keeps tests independent of files in the home directory.
func newTestEnv(t *testing.T, words string) *testEnv {
	t.Helper()

	dir := t.TempDir()
	env := &testEnv{
		dir:        dir,
		corpusPath: filepath.Join(dir, "words.txt"),
		configPath: filepath.Join(dir, "config.yaml"),
		dbDir:      filepath.Join(dir, "db"),
	}
	if err := os.WriteFile(env.corpusPath, []byte(words), 0600); err != nil {
		t.Fatalf("failed to write word list: %v", err)
	}
	env.writeConfig(t, "")
	return env
}

func (e *testEnv) writeConfig(t *testing.T, content string) {
	t.Helper()

	if err := os.WriteFile(e.configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

// args prefixes args with the environment's persistent flags.
func (e *testEnv) args(args ...string) []string {
	return append([]string{"-c", e.configPath, "-w", e.corpusPath, "--db-dir", e.dbDir}, args...)
}

// executeCommand runs the root command with args and stdin and returns
// what it wrote to stdout and stderr.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
