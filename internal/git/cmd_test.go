package git

import (
	"bytes"
	"errors"
	"io"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/gmoji/internal/silog"
)

func TestGitCmd_stderrInError(t *testing.T) {
	// Above debug level, stderr is captured
	// and surfaced in the error.
	log := silog.New(io.Discard, &silog.Options{
		Level: silog.LevelInfo,
	})

	execer := &fakeExecer{
		run: func(cmd *exec.Cmd) error {
			_, err := io.WriteString(cmd.Stderr, "fatal: great sadness\n")
			require.NoError(t, err)
			return errors.New("exit status 1")
		},
	}

	err := newGitCmd(t.Context(), log, "commit").Run(execer)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "great sadness")
}

func TestGitCmd_stderrToDebugLog(t *testing.T) {
	var logBuffer bytes.Buffer
	log := silog.New(&logBuffer, &silog.Options{
		Level: silog.LevelDebug,
	})

	execer := &fakeExecer{
		run: func(cmd *exec.Cmd) error {
			_, err := io.WriteString(cmd.Stderr, "hint: be careful\n")
			require.NoError(t, err)
			return errors.New("exit status 1")
		},
	}

	err := newGitCmd(t.Context(), log, "commit").Run(execer)
	require.Error(t, err)

	// In verbose mode, stderr goes to the log,
	// not the error message.
	assert.NotContains(t, err.Error(), "be careful")
	assert.Contains(t, logBuffer.String(), "be careful")
	assert.Contains(t, logBuffer.String(), "git commit")
}

func TestGitCmd_startConcurrentStderr(t *testing.T) {
	// A successful Start must not inspect captured stderr:
	// the command keeps writing to it until Wait returns.
	var stderrDone chan struct{}
	execer := &fakeExecer{
		start: func(cmd *exec.Cmd) error {
			stderrDone = make(chan struct{})
			go func() {
				defer close(stderrDone)
				_, err := io.WriteString(cmd.Stderr, "fatal: great sadness\n")
				assert.NoError(t, err)
			}()
			return nil
		},
		wait: func(*exec.Cmd) error {
			<-stderrDone
			return errors.New("exit status 1")
		},
	}

	cmd := newGitCmd(t.Context(), nil, "commit")
	require.NoError(t, cmd.Start(execer))

	err := cmd.Wait(execer)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "great sadness")
}

func TestGitCmd_successKeepsStderrQuiet(t *testing.T) {
	execer := &fakeExecer{
		run: func(cmd *exec.Cmd) error {
			_, err := io.WriteString(cmd.Stderr, "noise\n")
			require.NoError(t, err)
			return nil
		},
	}

	err := newGitCmd(t.Context(), nil, "status").Run(execer)
	require.NoError(t, err)
}
