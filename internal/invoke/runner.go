// Package invoke runs the target binary's help variants and captures their
// text output. One child process per call, bounded by a timeout, no retries.
package invoke

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/agentstation/helpman/pkg/constants"
	"github.com/agentstation/helpman/pkg/errors"
	"github.com/agentstation/helpman/pkg/logging"
)

// Runner runs the help invocation for one command path (binary first,
// subcommand tokens after) and returns the captured text.
type Runner interface {
	Run(ctx context.Context, path []string) (string, error)
}

// VersionProber is implemented by runners that can also capture the target's
// version string. The probe is best-effort; callers fall back on error.
type VersionProber interface {
	Version(ctx context.Context, binary string) (string, error)
}

// helpFlags are tried in order until one produces output. Clap and cobra
// tools answer --help; some older tools only know -h.
var helpFlags = []string{"--help", "-h"}

// quietEnv disables pagers and interactive prompts in the child so help
// capture cannot block on a terminal.
var quietEnv = []string{
	"PAGER=cat",
	"GIT_PAGER=cat",
	"MANPAGER=cat",
	"TERM=dumb",
	"GIT_TERMINAL_PROMPT=0",
	"NO_COLOR=1",
}

// ExecRunner is the os/exec-backed Runner.
type ExecRunner struct {
	Timeout time.Duration
}

// NewExecRunner returns an ExecRunner with the given per-invocation timeout,
// or the default when zero.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	if timeout <= 0 {
		timeout = constants.DefaultHelpTimeout
	}
	return &ExecRunner{Timeout: timeout}
}

// Run executes path[0] with args path[1:] plus a help flag and returns the
// combined stdout and stderr text. A non-zero exit that still produced output
// is informational, not a failure: clap prints help to stderr and exits 2.
func (r *ExecRunner) Run(ctx context.Context, path []string) (string, error) {
	if len(path) == 0 {
		return "", errors.New("empty command path")
	}
	if _, err := exec.LookPath(path[0]); err != nil {
		return "", errors.WrapInvoke(path, 0, errors.ErrBinaryNotFound)
	}

	var lastErr error
	for _, flag := range helpFlags {
		out, err := r.capture(ctx, path, flag)
		if err != nil {
			lastErr = err
			if errors.Is(err, errors.ErrCanceled) {
				return "", err
			}
			continue
		}
		if strings.TrimSpace(out) != "" {
			return out, nil
		}
		lastErr = errors.WrapInvoke(path, 0, errors.ErrNoHelpOutput)
	}
	return "", lastErr
}

// Version probes `binary --version` and returns the first line of output.
func (r *ExecRunner) Version(ctx context.Context, binary string) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, constants.DefaultVersionTimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, binary, "--version")
	cmd.Env = append(os.Environ(), quietEnv...)
	out, err := cmd.Output()
	if err != nil {
		return "", errors.WrapInvoke([]string{binary, "--version"}, exitCode(err), err)
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return line, nil
}

// capture spawns one child process for path with the given help flag.
func (r *ExecRunner) capture(ctx context.Context, path []string, flag string) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	args := append(append([]string(nil), path[1:]...), flag)
	cmd := exec.CommandContext(runCtx, path[0], args...)
	cmd.Env = append(os.Environ(), quietEnv...)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	out := clip(buf.String())

	switch {
	case ctx.Err() != nil:
		return "", errors.WrapInvoke(path, 0, errors.ErrCanceled)
	case runCtx.Err() == context.DeadlineExceeded:
		return "", errors.WrapInvoke(path, 0, errors.ErrTimeout)
	case err != nil && strings.TrimSpace(out) == "":
		return "", errors.WrapInvoke(path, exitCode(err), err)
	case err != nil:
		logging.FromContext(ctx).Debug().
			Strs("path", path).
			Str("flag", flag).
			Int("exit_code", exitCode(err)).
			Msg("Help exited non-zero but produced output")
	}
	return out, nil
}

// clip bounds captured output so a misbehaving child cannot exhaust memory.
func clip(s string) string {
	if len(s) > constants.MaxHelpOutputBytes {
		return s[:constants.MaxHelpOutputBytes]
	}
	return s
}

// exitCode extracts the child's exit code, or zero when unavailable.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 0
}
