package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// CLI provides a clean interface for running CLI commands in tests.
// It manages a temp directory, environment variables and a fake clock.
type CLI struct {
	t   *testing.T
	Dir string
	Env map[string]string
	Now time.Time
}

// NewCLI creates a new test CLI with a temp directory. HOME and the XDG
// variables point into it, and the clock starts at a fixed instant.
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	dir := t.TempDir()

	return &CLI{
		t:   t,
		Dir: dir,
		Env: map[string]string{
			"HOME":            dir,
			"XDG_DATA_HOME":   filepath.Join(dir, "data"),
			"XDG_CONFIG_HOME": filepath.Join(dir, "config"),
		},
		Now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}
}

// Advance moves the fake clock forward.
func (r *CLI) Advance(d time.Duration) {
	r.Now = r.Now.Add(d)
}

// Run executes the CLI with the given args and returns stdout, stderr, and exit code.
// Args should not include "deliverables" or "--cwd" - those are added automatically.
func (r *CLI) Run(args ...string) (string, string, int) {
	return r.run(nil, args)
}

// RunWithInput executes the CLI with stdin and returns stdout, stderr, and exit code.
// stdin must be a string or io.Reader; panics otherwise.
func (r *CLI) RunWithInput(stdin any, args ...string) (string, string, int) {
	var inReader io.Reader

	switch v := stdin.(type) {
	case string:
		inReader = strings.NewReader(v)
	case io.Reader:
		inReader = v
	default:
		panic(fmt.Sprintf("stdin must be string or io.Reader, got %T", stdin))
	}

	return r.run(inReader, args)
}

func (r *CLI) run(stdin io.Reader, args []string) (string, string, int) {
	var outBuf, errBuf bytes.Buffer

	now := r.Now
	fullArgs := append([]string{"deliverables", "--cwd", r.Dir}, args...)
	code := run(stdin, &outBuf, &errBuf, fullArgs, r.Env, nil, func() time.Time { return now })

	return outBuf.String(), errBuf.String(), code
}

// MustRun executes the CLI and fails the test if the command returns non-zero.
// Returns trimmed stdout on success.
func (r *CLI) MustRun(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(args...)
	if code != 0 {
		r.t.Fatalf("command %v failed with exit code %d\nstderr: %s", args, code, stderr)
	}

	return strings.TrimSpace(stdout)
}

// MustFail executes the CLI and fails the test if the command succeeds.
// Also fails if stdout is not empty. Returns trimmed stderr.
func (r *CLI) MustFail(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(args...)
	if code == 0 {
		r.t.Fatalf("command %v should have failed but succeeded\nstdout: %s", args, stdout)
	}

	if stdout != "" {
		r.t.Fatalf("command %v failed but stdout should be empty\nstdout: %s", args, stdout)
	}

	return strings.TrimSpace(stderr)
}

// DataDir returns the default data directory under the test HOME.
func (r *CLI) DataDir() string {
	return filepath.Join(r.Env["XDG_DATA_HOME"], "deliverables")
}

// DataFile returns the path of the record file.
func (r *CLI) DataFile() string {
	return filepath.Join(r.DataDir(), "data.json")
}

// ReadDataFile returns the content of the record file.
func (r *CLI) ReadDataFile() string {
	r.t.Helper()

	content, err := os.ReadFile(r.DataFile())
	if err != nil {
		r.t.Fatalf("failed to read data file: %v", err)
	}

	return string(content)
}

// WriteDataFile replaces the record file, creating its directory.
func (r *CLI) WriteDataFile(content string) {
	r.t.Helper()

	err := os.MkdirAll(r.DataDir(), 0o750)
	if err != nil {
		r.t.Fatalf("failed to create data dir: %v", err)
	}

	err = os.WriteFile(r.DataFile(), []byte(content), 0o600)
	if err != nil {
		r.t.Fatalf("failed to write data file: %v", err)
	}
}

// AssertContains fails the test if content doesn't contain substr.
func AssertContains(t *testing.T, content, substr string) {
	t.Helper()

	if !strings.Contains(content, substr) {
		t.Errorf("content should contain %q\ncontent:\n%s", substr, content)
	}
}

// AssertNotContains fails the test if content contains substr.
func AssertNotContains(t *testing.T, content, substr string) {
	t.Helper()

	if strings.Contains(content, substr) {
		t.Errorf("content should NOT contain %q\ncontent:\n%s", substr, content)
	}
}
