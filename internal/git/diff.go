package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// FileStatusCode specifies the status of a file in a diff.
type FileStatusCode string

// List of file status codes from
// https://git-scm.com/docs/git-diff-index#Documentation/git-diff-index.txt---diff-filterACDMRTUXB82308203.
const (
	FileAdded       FileStatusCode = "A"
	FileCopied      FileStatusCode = "C"
	FileDeleted     FileStatusCode = "D"
	FileModified    FileStatusCode = "M"
	FileRenamed     FileStatusCode = "R"
	FileTypeChanged FileStatusCode = "T"
	FileUnmerged    FileStatusCode = "U"
)

// FileStatus is a single file in a diff.
type FileStatus struct {
	// Status of the file.
	Status FileStatusCode

	// Path to the file relative to the tree root.
	Path string
}

// DiffIndex compares the index with the given tree
// and returns the list of files that are different.
//
// The treeish argument can be any valid tree-ish reference.
func (r *Repository) DiffIndex(ctx context.Context, treeish string) ([]FileStatus, error) {
	cmd := r.gitCmd(ctx, "diff-index", "--cached", "--name-status", treeish)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("pipe: %w", err)
	}

	if err := cmd.Start(r.exec); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}

	var files []FileStatus
	scanner := bufio.NewScanner(out)
	for scanner.Scan() {
		bs := scanner.Bytes()
		if len(bs) == 0 {
			continue
		}

		status, name, ok := bytes.Cut(bs, []byte{'\t'})
		if !ok {
			r.log.Warnf("invalid diff-index output: %s", bs)
			continue
		}

		// Rename and copy statuses carry a similarity score ("R100").
		code := string(status)
		if len(code) > 1 {
			code = code[:1]
		}

		files = append(files, FileStatus{
			Status: FileStatusCode(code),
			Path:   string(name),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	if err := cmd.Wait(r.exec); err != nil {
		return nil, fmt.Errorf("diff-index: %w", err)
	}

	return files, nil
}

// DiffStat reports the total number of inserted and deleted lines
// staged in the index relative to the given tree.
// Binary files contribute nothing to the count.
func (r *Repository) DiffStat(ctx context.Context, treeish string) (added, deleted int64, err error) {
	cmd := r.gitCmd(ctx, "diff", "--cached", "--numstat", treeish)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return 0, 0, fmt.Errorf("pipe: %w", err)
	}

	if err := cmd.Start(r.exec); err != nil {
		return 0, 0, fmt.Errorf("start: %w", err)
	}

	scanner := bufio.NewScanner(out)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		// Each line has the form:
		//
		//	added <TAB> deleted <TAB> path
		//
		// with "-" in place of the counts for binary files.
		fields := strings.SplitN(line, "\t", 3)
		if len(fields) < 3 {
			r.log.Warnf("invalid numstat output: %s", line)
			continue
		}

		if n, err := strconv.ParseInt(fields[0], 10, 64); err == nil {
			added += n
		}
		if n, err := strconv.ParseInt(fields[1], 10, 64); err == nil {
			deleted += n
		}
	}

	if err := scanner.Err(); err != nil {
		return 0, 0, fmt.Errorf("scan: %w", err)
	}

	if err := cmd.Wait(r.exec); err != nil {
		return 0, 0, fmt.Errorf("diff: %w", err)
	}

	return added, deleted, nil
}
