// Package gitexec builds and runs git invocations with an identity injected.
package gitexec

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"go.uber.org/zap"

	"commitas/internal/identity"
)

// ExitError reports a git invocation that ran and exited non-zero. The code
// is surfaced as the tool's own exit status.
type ExitError struct {
	Code int
	Args []string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("git %v exited with status %d", e.Args, e.Code)
}

// Runner executes git with terminal control handed through. The zero value
// is not usable; construct with New.
type Runner struct {
	git    string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *zap.Logger
}

// New returns a Runner that invokes gitPath ("git" if empty) with the
// process's own stdio.
func New(gitPath string, logger *zap.Logger) *Runner {
	if gitPath == "" {
		gitPath = "git"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		git:    gitPath,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: logger,
	}
}

// SetStdio redirects the subprocess streams, used by tests.
func (r *Runner) SetStdio(stdin io.Reader, stdout, stderr io.Writer) {
	r.stdin = stdin
	r.stdout = stdout
	r.stderr = stderr
}

// commitArgs builds the argument list for a single commit attributed to id.
// Extra arguments are appended verbatim, order preserved.
func commitArgs(id identity.Identity, extra []string) []string {
	args := []string{
		"-c", "user.name=" + id.Name,
		"-c", "user.email=" + id.Email,
		"commit",
	}
	return append(args, extra...)
}

// Commit performs one commit as id, passing extra through to git unchanged.
// It blocks until git exits; a non-zero exit becomes *ExitError so the
// caller can mirror git's status.
func (r *Runner) Commit(ctx context.Context, id identity.Identity, extra []string) error {
	return r.run(ctx, commitArgs(id, extra))
}

// SetGlobal persists id as git's global author identity via two sequential
// config invocations, stopping at the first failure.
func (r *Runner) SetGlobal(ctx context.Context, id identity.Identity) error {
	if err := r.run(ctx, []string{"config", "--global", "user.name", id.Name}); err != nil {
		return err
	}
	return r.run(ctx, []string{"config", "--global", "user.email", id.Email})
}

func (r *Runner) run(ctx context.Context, args []string) error {
	r.logger.Debug("executing git", zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, r.git, args...)
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		r.logger.Debug("git exited non-zero", zap.Int("code", exitErr.ExitCode()))
		return &ExitError{Code: exitErr.ExitCode(), Args: args}
	}
	return fmt.Errorf("failed to run %s: %w", r.git, err)
}
