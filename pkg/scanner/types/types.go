package types

import (
	"fmt"
	"strings"
)

// Confidence is the qualitative strength tier attached to a finding.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ParseConfidence maps a confidence label from an external source (rules
// file, analyzer output) onto the known tiers. Unknown labels degrade to low.
func ParseConfidence(value string) Confidence {
	switch strings.ToLower(value) {
	case "high", "high-verified":
		return ConfidenceHigh
	case "medium":
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Source identifies which detector produced a finding.
type Source string

const (
	// SourceHeuristic marks findings produced by the built-in rule table.
	SourceHeuristic Source = "heuristic"
	// SourceTruffleHog marks findings produced by the TruffleHog detectors.
	SourceTruffleHog Source = "trufflehog"
	// SourceContextual marks findings produced by an external analyzer command.
	SourceContextual Source = "contextual"
)

// Finding is a single reported candidate secret. After creation only the
// confidence may change, and only while reconciling independent sources.
type Finding struct {
	CommitHash string     `json:"commit_hash"`
	File       string     `json:"file"`
	Line       int        `json:"line"`
	Snippet    string     `json:"snippet"`
	Type       string     `json:"type"`
	Rationale  string     `json:"rationale"`
	Confidence Confidence `json:"confidence"`
	Source     Source     `json:"-"`
}

// PatternBased reports whether the finding came from the regex rule table.
func (f Finding) PatternBased() bool {
	return f.Source == SourceHeuristic
}

// DetectionResult is the outcome of scanning one unit of text.
type DetectionResult struct {
	Findings []Finding
	Error    error
}

// DiffEntry describes one changed file of a commit. RawDiff may be empty,
// in which case the caller falls back to the file's full blob content.
type DiffEntry struct {
	PathBefore string
	PathAfter  string
	RawDiff    string
}

// Path returns the path used for reporting: the post-change path when
// present, the pre-change path otherwise, or a synthetic placeholder.
func (d DiffEntry) Path(index int) string {
	if d.PathAfter != "" {
		return d.PathAfter
	}
	if d.PathBefore != "" {
		return d.PathBefore
	}
	return fmt.Sprintf("unknown_file_%d", index)
}

// TreeReader reads a file's full content from a commit's tree snapshot.
type TreeReader interface {
	FileContents(path string) (string, error)
}

// Commit is the read-only unit handed over by the repository walker.
type Commit struct {
	Hash    string
	Message string
	Diffs   []DiffEntry
	Tree    TreeReader
}
