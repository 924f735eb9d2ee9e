// Package git acquires repositories and walks their recent history, handing
// read-only commit values to the detection pipeline.
package git

import (
	"fmt"
	"os"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/rs/zerolog/log"
)

// Repository wraps an opened or cloned git repository. Close releases the
// temporary working directory when the repository was cloned.
type Repository struct {
	repo    *gogit.Repository
	tempDir string
}

// Open opens a local repository path, or clones a remote URL into a
// temporary directory. The caller must Close the repository on all exit
// paths so clone directories are released.
func Open(pathOrURL string) (*Repository, error) {
	if isRemote(pathOrURL) {
		return clone(pathOrURL)
	}

	repo, err := gogit.PlainOpen(pathOrURL)
	if err != nil {
		return nil, fmt.Errorf("failed opening repository %s: %w", pathOrURL, err)
	}

	log.Debug().Str("path", pathOrURL).Msg("Opened local repository")
	return &Repository{repo: repo}, nil
}

func clone(url string) (*Repository, error) {
	tempDir, err := os.MkdirTemp("", "commitleak-clone-")
	if err != nil {
		return nil, fmt.Errorf("failed creating clone directory: %w", err)
	}

	log.Info().Str("url", url).Str("dir", tempDir).Msg("Cloning repository")
	repo, err := gogit.PlainClone(tempDir, false, &gogit.CloneOptions{URL: url})
	if err != nil {
		_ = os.RemoveAll(tempDir)
		return nil, fmt.Errorf("failed cloning %s: %w", url, err)
	}

	return &Repository{repo: repo, tempDir: tempDir}, nil
}

// Close removes the temporary clone directory, if any. Safe to call more
// than once.
func (r *Repository) Close() {
	if r.tempDir == "" {
		return
	}

	if err := os.RemoveAll(r.tempDir); err != nil {
		log.Error().Err(err).Str("dir", r.tempDir).Msg("Failed removing clone directory")
		return
	}

	log.Debug().Str("dir", r.tempDir).Msg("Removed clone directory")
	r.tempDir = ""
}

func isRemote(pathOrURL string) bool {
	return strings.HasPrefix(pathOrURL, "http://") ||
		strings.HasPrefix(pathOrURL, "https://") ||
		strings.HasPrefix(pathOrURL, "ssh://") ||
		strings.HasPrefix(pathOrURL, "git@")
}
