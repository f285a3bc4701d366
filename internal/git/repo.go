package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"go.abhg.dev/gmoji/internal/silog"
)

// ErrNotExist is returned when a Git object does not exist.
var ErrNotExist = errors.New("does not exist")

// ErrDetachedHead indicates that the repository is
// unexpectedly in detached HEAD state.
var ErrDetachedHead = errors.New("in detached HEAD state")

// Hash is a 40-character Git object ID.
type Hash string

// EmptyTree is the well-known hash of the empty Git tree.
// Staged changes on an unborn branch are diffed against it.
const EmptyTree Hash = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

func (h Hash) String() string {
	return string(h)
}

// OpenOptions configures the behavior of Open.
type OpenOptions struct {
	// Log specifies the logger to use for messages.
	// If nil, no messages are logged.
	Log *silog.Logger

	exec execer
}

// Open opens the repository whose worktree contains the given directory.
// If dir is empty, the current working directory is used.
func Open(ctx context.Context, dir string, opts OpenOptions) (*Repository, error) {
	if opts.exec == nil {
		opts.exec = _realExec
	}
	if opts.Log == nil {
		opts.Log = silog.Nop()
	}

	out, err := newGitCmd(ctx, opts.Log,
		"rev-parse",
		"--show-toplevel",
		"--absolute-git-dir",
	).Dir(dir).OutputString(opts.exec)
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	root, gitDir, ok := strings.Cut(out, "\n")
	if !ok {
		return nil, fmt.Errorf("unexpected output from git rev-parse: %q", out)
	}

	return &Repository{
		root:   root,
		gitDir: gitDir,
		log:    opts.Log,
		exec:   opts.exec,
	}, nil
}

// Repository is a handle to the worktree of a Git repository.
type Repository struct {
	root   string // absolute path to the worktree root
	gitDir string // absolute path to the .git directory

	log  *silog.Logger
	exec execer
}

// Root returns the absolute path to the root of the worktree.
func (r *Repository) Root() string {
	return r.root
}

func (r *Repository) gitCmd(ctx context.Context, args ...string) *gitCmd {
	return newGitCmd(ctx, r.log, args...).Dir(r.root)
}

// Head reports the commit hash that HEAD points to.
// It returns [ErrNotExist] on an unborn branch.
func (r *Repository) Head(ctx context.Context) (Hash, error) {
	return r.revParse(ctx, "HEAD")
}

// CurrentBranch reports the current branch name.
// It returns [ErrDetachedHead] if the repository is in detached HEAD state.
func (r *Repository) CurrentBranch(ctx context.Context) (string, error) {
	name, err := r.gitCmd(ctx, "branch", "--show-current").
		OutputString(r.exec)
	if err != nil {
		return "", fmt.Errorf("git branch: %w", err)
	}
	if name = strings.TrimSpace(name); name == "" {
		// Per man git-branch, --show-current prints nothing
		// in detached HEAD state.
		return "", ErrDetachedHead
	}
	return name, nil
}

// MergeInProgress reports whether the repository is
// in the middle of a merge (e.g. halted by a conflict).
func (r *Repository) MergeInProgress(ctx context.Context) (bool, error) {
	_, err := r.revParse(ctx, "MERGE_HEAD")
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *Repository) revParse(ctx context.Context, ref string) (Hash, error) {
	out, err := r.gitCmd(ctx, "rev-parse",
		"--verify",         // fail if the object does not exist
		"--quiet",          // no output if object does not exist
		"--end-of-options", // prevent ref from being treated as a flag
		ref,
	).OutputString(r.exec)
	if err != nil {
		exitErr := new(exec.ExitError)
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%v: %w", ref, ErrNotExist)
		}
		return "", err
	}
	return Hash(out), nil
}
