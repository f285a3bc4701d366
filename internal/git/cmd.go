// Package git provides access to the Git CLI with a Git library-like
// interface.
//
// All shell-to-Git interactions should be done through this package.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.abhg.dev/gmoji/internal/silog"
)

// execer controls actual execution of Git commands.
// It provides a single place to hook into for testing.
type execer interface {
	Run(*exec.Cmd) error
	Output(*exec.Cmd) ([]byte, error)
	Start(*exec.Cmd) error
	Wait(*exec.Cmd) error
}

type realExecer struct{}

var _realExec execer = realExecer{}

func (realExecer) Run(cmd *exec.Cmd) error              { return cmd.Run() }
func (realExecer) Output(cmd *exec.Cmd) ([]byte, error) { return cmd.Output() }
func (realExecer) Start(cmd *exec.Cmd) error            { return cmd.Start() }
func (realExecer) Wait(cmd *exec.Cmd) error             { return cmd.Wait() }

// gitCmd provides a fluent API around exec.Cmd for running Git commands.
//
// Stderr of the command is handled as follows:
//
//   - if the logger is at debug level or lower,
//     stderr is streamed to the logger with a "git <cmd>" prefix;
//   - otherwise it is captured in-memory
//     and surfaced in the error if the command fails.
//
// This keeps expected failures quiet: if a command was allowed to fail
// and its error is never reported, the user never sees its stderr.
type gitCmd struct {
	cmd *exec.Cmd

	// Wraps an error with stderr output.
	wrap func(error) error
}

func newGitCmd(ctx context.Context, log *silog.Logger, args ...string) *gitCmd {
	name := "git"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name += " " + args[0]
	}

	stderr, wrap := stderrWriter(name, log)
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Stderr = stderr
	cmd.Env = os.Environ()

	return &gitCmd{
		cmd:  cmd,
		wrap: wrap,
	}
}

func (c *gitCmd) Dir(dir string) *gitCmd {
	c.cmd.Dir = dir
	return c
}

func (c *gitCmd) AppendEnv(env ...string) *gitCmd {
	if len(env) > 0 {
		c.cmd.Env = append(c.cmd.Env, env...)
	}
	return c
}

func (c *gitCmd) Stdin(r io.Reader) *gitCmd {
	c.cmd.Stdin = r
	return c
}

func (c *gitCmd) Stdout(w io.Writer) *gitCmd {
	c.cmd.Stdout = w
	return c
}

// Stderr redirects the command's stderr to the given writer,
// clearing the default capture-or-log behavior.
func (c *gitCmd) Stderr(w io.Writer) *gitCmd {
	c.cmd.Stderr = w
	c.wrap = func(err error) error { return err }
	return c
}

func (c *gitCmd) StdoutPipe() (io.ReadCloser, error) {
	return c.cmd.StdoutPipe()
}

// Run runs the command, blocking until it completes.
// It returns an error if the command exits with a non-zero code.
func (c *gitCmd) Run(exec execer) error {
	return c.wrap(exec.Run(c.cmd))
}

// Start starts the command without waiting for it.
func (c *gitCmd) Start(exec execer) error {
	return c.wrap(exec.Start(c.cmd))
}

// Wait waits for a command started with Start to finish.
func (c *gitCmd) Wait(exec execer) error {
	return c.wrap(exec.Wait(c.cmd))
}

// Output runs the command and returns its stdout.
func (c *gitCmd) Output(exec execer) ([]byte, error) {
	out, err := exec.Output(c.cmd)
	return out, c.wrap(err)
}

// OutputString runs the command and returns its stdout
// with the trailing newline removed.
func (c *gitCmd) OutputString(exec execer) (string, error) {
	out, err := c.Output(exec)
	out, _ = bytes.CutSuffix(out, []byte{'\n'})
	return string(out), err
}

// stderrWriter returns a writer to use as a command's stderr,
// and a function that wraps an error with whatever was written to it.
func stderrWriter(name string, log *silog.Logger) (w io.Writer, wrap func(error) error) {
	if log != nil && log.Level() <= silog.LevelDebug {
		w, done := silog.Writer(log.WithPrefix(name), silog.LevelDebug)
		return w, func(err error) error {
			done()
			return err
		}
	}

	var buf bytes.Buffer
	return &buf, func(err error) error {
		// Don't touch the buffer unless the command failed.
		// If the command was only started, not waited on,
		// its stderr goroutine may still be writing to it.
		if err == nil {
			return err
		}

		stderr := bytes.TrimSpace(buf.Bytes())
		if len(stderr) == 0 {
			return err
		}

		return errors.Join(err, fmt.Errorf("stderr:\n%s", stderr))
	}
}
