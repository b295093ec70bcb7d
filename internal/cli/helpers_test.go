package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// testEnv is an isolated config and data directory pair for driving the
// root command in-process.
type testEnv struct {
	t         *testing.T
	configDir string
	dataDir   string
}

// newTestEnv creates the directories and writes config.yaml selecting backend.
func newTestEnv(t *testing.T, backend string) *testEnv {
	t.Helper()
	t.Setenv("TODO_BACKEND", "")
	t.Setenv("TODO_LOG_LEVEL", "")
	t.Setenv("TODO_CONFIG_DIR", "")
	t.Setenv("TODO_DATA_DIR", "")

	tmp := t.TempDir()
	env := &testEnv{
		t:         t,
		configDir: filepath.Join(tmp, "config"),
		dataDir:   filepath.Join(tmp, "data"),
	}
	require.NoError(t, os.MkdirAll(env.configDir, 0o755))
	if backend != "" {
		content := "backend: " + backend + "\n"
		require.NoError(t, os.WriteFile(filepath.Join(env.configDir, configFileExt), []byte(content), 0o644))
	}
	return env
}

// cmdResult holds the outcome of one command run.
type cmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// run executes the root command with args, feeding stdin.
func (e *testEnv) run(stdin string, args ...string) cmdResult {
	e.t.Helper()

	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...))

	err := root.Execute()
	if err != nil {
		stderr.WriteString(err.Error())
	}
	return cmdResult{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: exitCode(err)}
}

// mustRun executes the root command and fails the test on a non-zero exit.
func (e *testEnv) mustRun(args ...string) cmdResult {
	e.t.Helper()
	res := e.run("", args...)
	if res.ExitCode != 0 {
		e.t.Fatalf("todo %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, res.ExitCode, res.Stdout, res.Stderr)
	}
	return res
}

// parseJSON decodes command output into T.
func parseJSON[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v), "output: %s", s)
	return v
}
