package git

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/CompassSecurity/commitleak/pkg/scanner/types"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/rs/zerolog/log"
)

// ErrNoBranch is returned when neither conventional branch exists. This is a
// repository shape problem, not an empty history, and callers treat it as
// fatal.
var ErrNoBranch = errors.New("neither main nor master branch found")

// ErrNoCommits is returned when the history walk of an existing branch
// yields nothing.
var ErrNoCommits = errors.New("no commits found")

// branchCandidates are tried in order when walking history.
var branchCandidates = []string{"main", "master"}

// shortHashLength is the reported commit hash length.
const shortHashLength = 8

// RecentCommits walks the newest n commits of the primary branch, falling
// back to the secondary conventional branch name. Commits are returned
// newest first, with per-file diff entries and a tree reader for the
// full-blob fallback.
func RecentCommits(r *Repository, n int) ([]types.Commit, error) {
	iter, branch, err := r.logIterator()
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	commits := []types.Commit{}
	for len(commits) < n {
		commitObj, err := iter.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed walking history: %w", err)
		}

		commit := buildCommit(commitObj)
		log.Info().Str("commit", commit.Hash).Str("subject", subjectLine(commit.Message)).Msg("Collected commit")
		commits = append(commits, commit)
	}

	if len(commits) == 0 {
		return nil, ErrNoCommits
	}

	log.Info().Int("count", len(commits)).Str("branch", branch).Msg("Collected commits")
	return commits, nil
}

func (r *Repository) logIterator() (object.CommitIter, string, error) {
	for _, branch := range branchCandidates {
		ref, err := r.repo.Reference(plumbing.NewBranchReferenceName(branch), true)
		if err != nil {
			log.Debug().Str("branch", branch).Msg("Branch not found")
			continue
		}

		iter, err := r.repo.Log(&gogit.LogOptions{From: ref.Hash()})
		if err != nil {
			log.Debug().Err(err).Str("branch", branch).Msg("Failed starting history walk")
			continue
		}

		return iter, branch, nil
	}

	return nil, "", ErrNoBranch
}

func buildCommit(commitObj *object.Commit) types.Commit {
	return types.Commit{
		Hash:    commitObj.Hash.String()[:shortHashLength],
		Message: strings.TrimSpace(commitObj.Message),
		Diffs:   diffEntries(commitObj),
		Tree:    treeReader{commit: commitObj},
	}
}

// diffEntries produces one entry per changed file, diffing against the first
// parent, or against the empty tree for root commits. A file whose patch
// cannot be rendered gets an empty RawDiff, which triggers the blob fallback
// downstream.
func diffEntries(commitObj *object.Commit) []types.DiffEntry {
	commitTree, err := commitObj.Tree()
	if err != nil {
		log.Error().Err(err).Str("commit", commitObj.Hash.String()).Msg("Failed reading commit tree")
		return nil
	}

	parentTree := &object.Tree{}
	if commitObj.NumParents() > 0 {
		parent, err := commitObj.Parent(0)
		if err == nil {
			parentTree, err = parent.Tree()
			if err != nil {
				log.Error().Err(err).Str("commit", commitObj.Hash.String()).Msg("Failed reading parent tree")
				return nil
			}
		}
	}

	changes, err := parentTree.Diff(commitTree)
	if err != nil {
		log.Error().Err(err).Str("commit", commitObj.Hash.String()).Msg("Failed diffing trees")
		return nil
	}

	entries := make([]types.DiffEntry, 0, len(changes))
	for _, change := range changes {
		entry := types.DiffEntry{
			PathBefore: change.From.Name,
			PathAfter:  change.To.Name,
		}

		patch, err := change.Patch()
		if err != nil {
			log.Debug().Err(err).Str("file", entry.Path(len(entries))).Msg("Failed rendering patch, leaving diff empty")
		} else {
			entry.RawDiff = patch.String()
		}

		entries = append(entries, entry)
	}

	return entries
}

// treeReader reads blob content from a commit's tree snapshot.
type treeReader struct {
	commit *object.Commit
}

func (t treeReader) FileContents(path string) (string, error) {
	file, err := t.commit.File(path)
	if err != nil {
		return "", err
	}
	return file.Contents()
}

func subjectLine(message string) string {
	subject, _, _ := strings.Cut(message, "\n")
	if len(subject) > 50 {
		subject = subject[:50]
	}
	return subject
}
