package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateRepo validates the repository target: a non-empty local path, or a
// well-formed URL when a remote scheme is used.
func ValidateRepo(repo string) error {
	if repo == "" {
		return fmt.Errorf("repository cannot be empty")
	}

	if strings.HasPrefix(repo, "http://") || strings.HasPrefix(repo, "https://") {
		parsed, err := url.Parse(repo)
		if err != nil {
			return fmt.Errorf("invalid repository URL: %w", err)
		}
		if parsed.Host == "" {
			return fmt.Errorf("repository URL must include a host")
		}
	}

	return nil
}

// ValidateCommitCount validates the number of commits to scan.
func ValidateCommitCount(n int) error {
	if n < 1 {
		return fmt.Errorf("commit count must be at least 1, got %d", n)
	}
	return nil
}

// ValidateThreadCount validates that the thread count is within acceptable bounds.
func ValidateThreadCount(threads int) error {
	if threads < 1 {
		return fmt.Errorf("thread count must be at least 1, got %d", threads)
	}
	if threads > 100 {
		return fmt.Errorf("thread count too high (max 100), got %d", threads)
	}
	return nil
}

// ValidateOutputPath validates the report output path.
func ValidateOutputPath(path string) error {
	if path == "" {
		return fmt.Errorf("output path cannot be empty")
	}
	return nil
}
