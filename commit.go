package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.abhg.dev/gmoji/internal/git"
	"go.abhg.dev/gmoji/internal/moji"
	"go.abhg.dev/gmoji/internal/silog"
	"go.abhg.dev/gmoji/internal/text"
	"go.abhg.dev/gmoji/internal/ui"
	"go.abhg.dev/gmoji/internal/update"
)

// _updateCheckTimeout bounds the post-commit release lookup
// so a slow network never holds the commit hostage.
const _updateCheckTimeout = 3 * time.Second

type commitCmd struct {
	Message string `arg:"" optional:"" help:"Commit message, without the type tag."`

	Type     string `short:"t" placeholder:"TYPE" xor:"type" predictor:"types" help:"Commit type. One of the names listed by 'gmoji types'."`
	Feat     bool   `xor:"type" help:"Shortcut for --type=feat."`
	Fix      bool   `xor:"type" help:"Shortcut for --type=fix."`
	Docs     bool   `xor:"type" help:"Shortcut for --type=docs."`
	Style    bool   `xor:"type" help:"Shortcut for --type=style."`
	Refactor bool   `xor:"type" help:"Shortcut for --type=refactor."`
	Perf     bool   `xor:"type" help:"Shortcut for --type=perf."`
	Test     bool   `xor:"type" help:"Shortcut for --type=test."`
	Build    bool   `xor:"type" help:"Shortcut for --type=build."`
	Chore    bool   `xor:"type" help:"Shortcut for --type=chore."`
	Release  bool   `xor:"type" help:"Shortcut for --type=release."`

	All        bool `short:"a" help:"Stage all tracked, modified files before committing."`
	Amend      bool `help:"Amend the last commit."`
	AllowEmpty bool `help:"Create a new commit even if it contains no changes."`
	NoVerify   bool `help:"Bypass the pre-commit and commit-msg hooks."`
	Signoff    bool `help:"Add a Signed-off-by trailer to the commit message."`
	Yes        bool `short:"y" help:"Answer yes to all confirmation prompts."`

	TagStyle     moji.TagStyle `config:"tagStyle" enum:"emoji,text" default:"emoji" help:"Tag messages with the type's emoji or its name."`
	Exclude      []string      `config:"exclude" placeholder:"PATTERN" help:"Ask before committing staged paths matching these glob patterns."`
	MaxDiffLines int64         `config:"maxDiffLines" default:"1000" help:"Ask before committing diffs changing more than this many lines."`
	UpdateCheck  bool          `config:"updateCheck" default:"true" negatable:"" help:"Check for a newer gmoji release after committing."`
}

func (*commitCmd) Help() string {
	return text.Dedent(`
		Staged changes are committed to the current branch
		with the commit type's tag prefixed to the message.
		Use this as a replacement for 'git commit'.

		The commit type is taken from a type flag (e.g. --feat),
		inferred from a recognized prefix already on the message,
		or requested with an interactive prompt.
		Similarly, an editor-free prompt requests the message
		if one is not given on the command line.

		Use the -a/--all flag to stage all changes before committing.
		Git hooks are run unless the --no-verify flag is given.
	`)
}

func (cmd *commitCmd) Run(
	ctx context.Context,
	log *silog.Logger,
	view ui.View,
	repo *git.Repository,
) error {
	if err := cmd.validateStaged(ctx, log, view, repo); err != nil {
		return err
	}

	msg, err := cmd.resolveMessage(view)
	if err != nil {
		return err
	}

	if !cmd.Yes {
		var commit bool
		switch err := cmd.confirm(view, &commit, true,
			commitTitle(ctx, repo), msg,
		); {
		case errors.Is(err, ui.ErrPrompt):
			commit = true // can't ask; proceed
		case err != nil:
			return err
		}
		if !commit {
			return errors.New("commit aborted")
		}
	}

	if err := repo.Commit(ctx, git.CommitRequest{
		Message:    msg,
		All:        cmd.All,
		Amend:      cmd.Amend,
		AllowEmpty: cmd.AllowEmpty,
		NoVerify:   cmd.NoVerify,
		Signoff:    cmd.Signoff,
	}); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	// Scripts don't care about new releases; only tell people.
	if cmd.UpdateCheck && ui.Interactive(view) {
		cmd.checkForUpdates(ctx, log)
	}
	return nil
}

// branchReporter reports the currently checked out branch.
type branchReporter interface {
	CurrentBranch(context.Context) (string, error)
}

var _ branchReporter = (*git.Repository)(nil)

// commitTitle phrases the final confirmation question,
// naming the current branch when there is one.
// Detached HEAD and lookup failures fall back to the branchless form.
func commitTitle(ctx context.Context, repo branchReporter) string {
	branch, err := repo.CurrentBranch(ctx)
	if err != nil {
		return "Commit with this message?"
	}
	return fmt.Sprintf("Commit to %v with this message?", branch)
}

// stagedIndex is the subset of [git.Repository]
// that validateStaged needs to inspect the index.
type stagedIndex interface {
	MergeInProgress(context.Context) (bool, error)
	Head(context.Context) (git.Hash, error)
	DiffIndex(context.Context, string) ([]git.FileStatus, error)
	DiffStat(context.Context, string) (added, deleted int64, err error)
}

var _ stagedIndex = (*git.Repository)(nil)

// validateStaged inspects the index before any prompting happens:
// conflicted merges and empty indexes abort the run,
// excluded paths and oversized diffs ask for confirmation.
func (cmd *commitCmd) validateStaged(
	ctx context.Context,
	log *silog.Logger,
	view ui.View,
	repo stagedIndex,
) error {
	if merging, err := repo.MergeInProgress(ctx); err != nil {
		return fmt.Errorf("check merge state: %w", err)
	} else if merging {
		return errors.New("a merge is in progress; finish it with 'git commit' or abort it with 'git merge --abort'")
	}

	treeish := "HEAD"
	if _, err := repo.Head(ctx); err != nil {
		if !errors.Is(err, git.ErrNotExist) {
			return fmt.Errorf("resolve HEAD: %w", err)
		}
		// Unborn branch. Compare the index against the empty tree.
		treeish = git.EmptyTree.String()
	}

	staged, err := repo.DiffIndex(ctx, treeish)
	if err != nil {
		return fmt.Errorf("list staged changes: %w", err)
	}

	var conflicted []string
	for _, f := range staged {
		if f.Status == git.FileUnmerged {
			conflicted = append(conflicted, f.Path)
		}
	}
	if len(conflicted) > 0 {
		log.Error("There are unresolved merge conflicts in:")
		for _, p := range conflicted {
			log.Errorf("  - %s", p)
		}
		return errors.New("resolve the conflicts and stage the files again")
	}

	if len(staged) == 0 && !cmd.All && !cmd.Amend && !cmd.AllowEmpty {
		return errors.New("there are no staged changes; use -a to stage all changes, or --allow-empty")
	}

	if excluded := matchExcluded(staged, cmd.Exclude); len(excluded) > 0 && !cmd.Yes {
		log.Warn("Staged changes include excluded paths:")
		for _, p := range excluded {
			log.Warnf("  - %s", p)
		}

		var proceed bool
		if err := cmd.confirm(view, &proceed, false,
			"Commit the excluded paths anyway?",
			"Unstage them with 'git restore --staged <path>' to leave them out.",
		); err != nil {
			if errors.Is(err, ui.ErrPrompt) {
				return errors.New("staged changes include excluded paths")
			}
			return err
		}
		if !proceed {
			return errors.New("commit aborted")
		}
	}

	if cmd.MaxDiffLines > 0 {
		added, deleted, err := repo.DiffStat(ctx, treeish)
		if err != nil {
			return fmt.Errorf("measure staged changes: %w", err)
		}

		if total := added + deleted; total > cmd.MaxDiffLines && !cmd.Yes {
			log.Warnf("The staged diff changes %s lines (+%s/-%s).",
				humanize.Comma(total), humanize.Comma(added), humanize.Comma(deleted))

			var proceed bool
			if err := cmd.confirm(view, &proceed, false,
				"This is a big commit. Commit it as one?",
				"Consider splitting it into smaller commits.",
			); err != nil {
				if errors.Is(err, ui.ErrPrompt) {
					return fmt.Errorf("staged diff exceeds %d changed lines", cmd.MaxDiffLines)
				}
				return err
			}
			if !proceed {
				return errors.New("commit aborted")
			}
		}
	}

	return nil
}

// resolveMessage builds the final, tagged commit message,
// prompting for the type and the message as needed.
func (cmd *commitCmd) resolveMessage(view ui.View) (string, error) {
	msg := strings.TrimSpace(cmd.Message)

	typ, haveType, err := cmd.typeFromFlags()
	if err != nil {
		return "", err
	}

	// A message that already bears a recognized tag is used as-is,
	// unless a type flag explicitly overrides it.
	if msg != "" && !haveType {
		if _, ok := moji.Detect(msg); ok {
			return msg, nil
		}
	}

	var fields []ui.Field
	if !haveType {
		items := make([]ui.ListItem[moji.Type], 0, len(moji.All()))
		for _, t := range moji.All() {
			items = append(items, ui.ListItem[moji.Type]{
				Title:       t.Emoji + " " + t.Name,
				Description: t.Description,
				Value:       t,
			})
		}

		fields = append(fields, ui.NewList[moji.Type]().
			WithTitle("Change type").
			WithDescription("What kind of change is this?").
			WithValue(&typ).
			WithItems(items...))
	}

	if msg == "" {
		fields = append(fields, ui.NewInput().
			WithTitle("Commit message").
			WithDescription("Summarize the change in one line.").
			WithValue(&msg).
			WithValidate(validateMessage))
	}

	if len(fields) > 0 {
		if err := ui.Run(view, fields...); err != nil {
			if errors.Is(err, ui.ErrPrompt) {
				if msg == "" {
					return "", errors.New("a commit message is required in non-interactive mode")
				}
				return "", errors.New("a commit type is required in non-interactive mode; use --type")
			}
			return "", err
		}
	}

	if err := validateMessage(msg); err != nil {
		return "", err
	}

	return typ.FormatMessage(strings.TrimSpace(msg), cmd.TagStyle), nil
}

// typeFromFlags resolves the commit type selected with flags, if any.
// The type flags are mutually exclusive, enforced by the CLI grammar.
func (cmd *commitCmd) typeFromFlags() (moji.Type, bool, error) {
	name := cmd.Type
	for _, shortcut := range []struct {
		name string
		set  bool
	}{
		{"feat", cmd.Feat},
		{"fix", cmd.Fix},
		{"docs", cmd.Docs},
		{"style", cmd.Style},
		{"refactor", cmd.Refactor},
		{"perf", cmd.Perf},
		{"test", cmd.Test},
		{"build", cmd.Build},
		{"chore", cmd.Chore},
		{"release", cmd.Release},
	} {
		if shortcut.set {
			name = shortcut.name
		}
	}

	if name == "" {
		return moji.Type{}, false, nil
	}

	typ, ok := moji.Lookup(name)
	if !ok {
		return moji.Type{}, false, fmt.Errorf("unknown commit type %q; see 'gmoji types'", name)
	}
	return typ, true, nil
}

func (cmd *commitCmd) confirm(view ui.View, value *bool, def bool, title, desc string) error {
	*value = def
	return ui.Run(view, ui.NewConfirm().
		WithValue(value).
		WithTitle(title).
		WithDescription(desc))
}

// validateMessage rejects empty commit messages.
func validateMessage(msg string) error {
	if strings.TrimSpace(msg) == "" {
		return errors.New("commit message must not be empty")
	}
	return nil
}

// matchExcluded returns the staged paths matching any of the glob patterns.
// Patterns without a separator match against the file's base name too,
// so "*.lock" catches lock files in subdirectories.
func matchExcluded(staged []git.FileStatus, patterns []string) []string {
	var matched []string
	for _, f := range staged {
		for _, pattern := range patterns {
			ok, err := path.Match(pattern, f.Path)
			if err != nil {
				continue // bad pattern; nothing to report here
			}
			if !ok && !strings.Contains(pattern, "/") {
				ok, _ = path.Match(pattern, path.Base(f.Path))
			}
			if ok {
				matched = append(matched, f.Path)
				break
			}
		}
	}
	return matched
}

// checkForUpdates looks up the latest published release
// and tells the user if they're behind.
// Failures are logged at debug level and otherwise ignored.
func (cmd *commitCmd) checkForUpdates(ctx context.Context, log *silog.Logger) {
	if _version == "dev" {
		log.Debug("Skipping update check for development build")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, _updateCheckTimeout)
	defer cancel()

	checker := update.NewChecker("abhinav", "gmoji", &update.Options{
		Token: os.Getenv("GITHUB_TOKEN"),
	})
	rel, err := checker.Check(ctx, _version)
	if err != nil {
		log.Debug("Update check failed", "error", err)
		return
	}
	if rel == nil {
		return
	}

	log.Infof("gmoji %s is available (you have %s).", rel.Version, _version)
	if rel.URL != "" {
		log.Infof("Get it from %s.", rel.URL)
	}
}
