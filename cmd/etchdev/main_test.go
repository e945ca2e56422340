package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/etch/internal/lint"
)

// emptyConfig pins the config lookup to a file with no overrides so tests
// never pick up a developer's real .etch.toml.
func emptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "etch.toml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return path
}

func execute(t *testing.T, runner lint.Runner, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := newRootCmd(runner)
	var out, errBuf bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errBuf)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errBuf.String(), err
}

func TestSubcommandsPassLiteralArgv(t *testing.T) {
	cfgPath := emptyConfig(t)

	tests := []struct {
		command string
		want    []string
	}{
		{"check", []string{"golangci-lint", "run"}},
		{"fix", []string{"golangci-lint", "run", "--fix"}},
		{"check-all", []string{
			"golangci-lint", "run", "--enable-all",
			"--max-issues-per-linter", "0", "--max-same-issues", "0",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			mock := lint.NewMockRunner()
			_, _, err := execute(t, mock, tt.command, "--config", cfgPath, "--no-color")
			require.NoError(t, err)

			calls := mock.Calls()
			require.Len(t, calls, 1)
			if diff := cmp.Diff(tt.want, calls[0].Argv); diff != "" {
				t.Errorf("argv mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNonZeroLinterExitPropagates(t *testing.T) {
	cfgPath := emptyConfig(t)

	mock := lint.NewMockRunner()
	mock.SetDefaultExitCode(7)

	_, stderr, err := execute(t, mock, "check", "--config", cfgPath, "--no-color")
	require.Error(t, err)

	var exitErr *exitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 7, exitErr.code)
	assert.Contains(t, stderr, "exited with code 7")
}

func TestZeroExitReportsSuccess(t *testing.T) {
	cfgPath := emptyConfig(t)

	_, stderr, err := execute(t, lint.NewMockRunner(), "fix", "--config", cfgPath, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, stderr, "fix passed")
}

func TestDryRunPrintsCommandAndRunsNothing(t *testing.T) {
	cfgPath := emptyConfig(t)

	mock := lint.NewMockRunner()
	stdout, _, err := execute(t, mock, "check-all", "--dry-run", "--config", cfgPath, "--no-color")
	require.NoError(t, err)

	assert.Equal(t,
		"$ golangci-lint run --enable-all --max-issues-per-linter 0 --max-same-issues 0\n",
		stdout)
	assert.Empty(t, mock.Calls())
}

func TestConfigExtrasAppendToArgv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etch.toml")
	body := "[lint]\ntool = \"custom-lint\"\nextra_args = [\"--build-tags\", \"integration\"]\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	mock := lint.NewMockRunner()
	_, _, err := execute(t, mock, "check", "--config", path, "--no-color")
	require.NoError(t, err)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	want := []string{"custom-lint", "run", "--build-tags", "integration"}
	if diff := cmp.Diff(want, calls[0].Argv); diff != "" {
		t.Errorf("argv mismatch (-want +got):\n%s", diff)
	}
}

func TestSpawnFailureExitsNotFound(t *testing.T) {
	cfgPath := emptyConfig(t)

	mock := lint.NewMockRunner()
	mock.SetRunError("golangci-lint run", lint.ExitNotFound,
		errors.New(`running golangci-lint: exec: "golangci-lint": executable file not found in $PATH`))

	_, stderr, err := execute(t, mock, "check", "--config", cfgPath, "--no-color")
	require.Error(t, err)

	var exitErr *exitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, lint.ExitNotFound, exitErr.code)
	assert.Contains(t, stderr, "Error:")
	assert.Contains(t, stderr, "executable file not found")
}

func TestConfigTimeoutAppliesWhenFlagAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etch.toml")
	require.NoError(t, os.WriteFile(path, []byte("[lint]\ntimeout = \"90s\"\n"), 0o644))

	mock := lint.NewMockRunner()
	_, _, err := execute(t, mock, "check", "--config", path, "--no-color")
	require.NoError(t, err)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].HasDeadline, "config timeout should set a deadline")
}

func TestExplicitZeroTimeoutDisablesConfigTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etch.toml")
	require.NoError(t, os.WriteFile(path, []byte("[lint]\ntimeout = \"90s\"\n"), 0o644))

	mock := lint.NewMockRunner()
	_, _, err := execute(t, mock, "check", "--config", path, "--timeout", "0", "--no-color")
	require.NoError(t, err)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.False(t, calls[0].HasDeadline, "--timeout 0 must override the config timeout")
}

func TestTimeoutExitReportsTimeout(t *testing.T) {
	cfgPath := emptyConfig(t)

	mock := lint.NewMockRunner()
	mock.SetDefaultExitCode(lint.ExitTimeout)

	_, stderr, err := execute(t, mock, "check", "--config", cfgPath, "--timeout", "1ms", "--no-color")
	require.Error(t, err)

	var exitErr *exitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, lint.ExitTimeout, exitErr.code)
	assert.Contains(t, stderr, "timed out")
}

func TestUnknownSubcommandFails(t *testing.T) {
	_, _, err := execute(t, lint.NewMockRunner(), "release")
	require.Error(t, err)
}
