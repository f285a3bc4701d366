package git

import "os/exec"

// fakeExecer implements execer with function hooks,
// panicking on calls the test did not expect.
type fakeExecer struct {
	run    func(*exec.Cmd) error
	output func(*exec.Cmd) ([]byte, error)
	start  func(*exec.Cmd) error
	wait   func(*exec.Cmd) error
}

var _ execer = (*fakeExecer)(nil)

func (f *fakeExecer) Run(cmd *exec.Cmd) error {
	if f.run == nil {
		panic("unexpected Run: " + cmd.String())
	}
	return f.run(cmd)
}

func (f *fakeExecer) Output(cmd *exec.Cmd) ([]byte, error) {
	if f.output == nil {
		panic("unexpected Output: " + cmd.String())
	}
	return f.output(cmd)
}

func (f *fakeExecer) Start(cmd *exec.Cmd) error {
	if f.start == nil {
		panic("unexpected Start: " + cmd.String())
	}
	return f.start(cmd)
}

func (f *fakeExecer) Wait(cmd *exec.Cmd) error {
	if f.wait == nil {
		panic("unexpected Wait: " + cmd.String())
	}
	return f.wait(cmd)
}

// startWithStdout returns a Start hook that writes the given output
// to the command's stdout and closes it.
func startWithStdout(out string) func(*exec.Cmd) error {
	return func(cmd *exec.Cmd) error {
		// Writes to the command's stdout must happen in a goroutine
		// because otherwise the pipe will deadlock.
		go func() {
			_, _ = cmd.Stdout.Write([]byte(out))
			if c, ok := cmd.Stdout.(interface{ Close() error }); ok {
				_ = c.Close()
			}
		}()
		return nil
	}
}
