// Package lint defines the fixed dev-task targets and runs them by spawning
// the linter process. The linter itself is an external tool; nothing here
// inspects or re-implements its behavior.
package lint

import "github.com/aledsdavies/etch/internal/config"

// Target is a named linter invocation with a fixed argument list.
type Target struct {
	Name    string
	Summary string
	Args    []string
}

// The three targets. Their argument lists are literal: commands pass them
// through exactly, with config extras appended after, never interleaved.
var (
	Check = Target{
		Name:    "check",
		Summary: "Run the linter with the default rule set",
		Args:    []string{"run"},
	}

	Fix = Target{
		Name:    "fix",
		Summary: "Run the linter and apply automatic fixes",
		Args:    []string{"run", "--fix"},
	}

	CheckAll = Target{
		Name:    "check-all",
		Summary: "Run the linter with every rule enabled and issue caps lifted",
		Args: []string{
			"run",
			"--enable-all",
			"--max-issues-per-linter", "0",
			"--max-same-issues", "0",
		},
	}
)

// Targets returns the targets in display order.
func Targets() []Target {
	return []Target{Check, Fix, CheckAll}
}

// Lookup finds a target by name.
func Lookup(name string) (Target, bool) {
	for _, t := range Targets() {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}

// Argv composes the full command line for this target under cfg: the tool
// binary, the target's literal arguments, then any configured extras.
func (t Target) Argv(cfg config.LintConfig) []string {
	tool := cfg.Tool
	if tool == "" {
		tool = "golangci-lint"
	}
	argv := make([]string, 0, 1+len(t.Args)+len(cfg.ExtraArgs))
	argv = append(argv, tool)
	argv = append(argv, t.Args...)
	argv = append(argv, cfg.ExtraArgs...)
	return argv
}
