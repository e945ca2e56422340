package lint

import (
	"context"
	"strings"
	"sync"
)

// MockRunner records every invocation and returns configurable exit codes.
// Tests assert the exact argument lists targets produce without spawning a
// real linter.
//
//	mock := NewMockRunner()
//	mock.SetResponse("golangci-lint run", 2, "")
//	code, err := mock.Run(ctx, []string{"golangci-lint", "run"}, RunOpts{})
type MockRunner struct {
	mu sync.Mutex

	responses       map[string]mockResponse
	defaultExitCode int

	calls []RunCall
}

type mockResponse struct {
	exitCode int
	stderr   string
	err      error
}

// RunCall is one recorded invocation. HasDeadline reports whether the
// context carried a deadline when the call arrived.
type RunCall struct {
	Argv        []string
	Opts        RunOpts
	HasDeadline bool
}

// NewMockRunner returns a mock whose default response is success.
func NewMockRunner() *MockRunner {
	return &MockRunner{responses: make(map[string]mockResponse)}
}

// SetResponse configures the result for an exact command line (argv joined
// with single spaces).
func (m *MockRunner) SetResponse(cmdline string, exitCode int, stderr string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[cmdline] = mockResponse{exitCode: exitCode, stderr: stderr}
}

// SetRunError configures a spawn-style failure for an exact command line:
// Run returns the given exit code together with a non-nil error, the way
// Local reports a linter that could not be started.
func (m *MockRunner) SetRunError(cmdline string, exitCode int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[cmdline] = mockResponse{exitCode: exitCode, err: err}
}

// SetDefaultExitCode sets the exit code for unmatched command lines.
func (m *MockRunner) SetDefaultExitCode(code int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultExitCode = code
}

// Run records the call and replays the configured response.
func (m *MockRunner) Run(ctx context.Context, argv []string, opts RunOpts) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, hasDeadline := ctx.Deadline()
	m.calls = append(m.calls, RunCall{
		Argv:        append([]string(nil), argv...),
		Opts:        opts,
		HasDeadline: hasDeadline,
	})

	if resp, ok := m.responses[strings.Join(argv, " ")]; ok {
		if resp.stderr != "" && opts.Stderr != nil {
			_, _ = opts.Stderr.Write([]byte(resp.stderr))
		}
		return resp.exitCode, resp.err
	}
	return m.defaultExitCode, nil
}

// Calls returns a copy of the recorded invocations.
func (m *MockRunner) Calls() []RunCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RunCall(nil), m.calls...)
}
