package git

import (
	"context"
	"fmt"
	"os"
)

// CommitRequest is a request to commit changes.
// It relies on the 'git commit' command.
type CommitRequest struct {
	// Message is the commit message.
	Message string

	// All stages all tracked, modified files before committing.
	All bool

	// Amend amends the last commit.
	Amend bool

	// AllowEmpty allows a commit with no changes.
	AllowEmpty bool

	// NoVerify bypasses the pre-commit and commit-msg hooks.
	NoVerify bool

	// Signoff adds a Signed-off-by trailer to the commit message.
	Signoff bool
}

// Commit runs the 'git commit' command with the repository's
// stdio inherited, so hooks and editors behave as they would
// for a plain 'git commit'.
func (r *Repository) Commit(ctx context.Context, req CommitRequest) error {
	args := []string{"commit"}
	if req.All {
		args = append(args, "-a")
	}
	if req.Message != "" {
		args = append(args, "-m", req.Message)
	}
	if req.Amend {
		args = append(args, "--amend")
	}
	if req.AllowEmpty {
		args = append(args, "--allow-empty")
	}
	if req.NoVerify {
		args = append(args, "--no-verify")
	}
	if req.Signoff {
		args = append(args, "--signoff")
	}

	err := r.gitCmd(ctx, args...).
		Stdin(os.Stdin).
		Stdout(os.Stdout).
		Stderr(os.Stderr).
		Run(r.exec)
	if err != nil {
		return fmt.Errorf("git commit: %w", err)
	}
	return nil
}
