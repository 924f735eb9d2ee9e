// Package scan orchestrates the detection pipeline over commits: message
// scan, per-file diff normalization and matching, reconciliation of the
// independent detector sources, and live hit reporting.
package scan

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/CompassSecurity/commitleak/pkg/logging"
	"github.com/CompassSecurity/commitleak/pkg/scanner/analyzer"
	"github.com/CompassSecurity/commitleak/pkg/scanner/diff"
	"github.com/CompassSecurity/commitleak/pkg/scanner/engine"
	"github.com/CompassSecurity/commitleak/pkg/scanner/rules"
	"github.com/CompassSecurity/commitleak/pkg/scanner/types"
	"github.com/rs/zerolog/log"
)

// Options configures a scan run. The rule set is shared read-only across
// commits; everything else is stateless.
type Options struct {
	RuleSet    *rules.RuleSet
	TruffleHog bool
	Verify     bool
	Analyzer   *analyzer.CommandAnalyzer
	MaxThreads int
}

// commitMessageFile is the synthetic file name for message findings.
const commitMessageFile = "COMMIT_MESSAGE"

var commitsScanned atomic.Int64

// CommitsScanned returns the number of commits analyzed so far in this run.
func CommitsScanned() int64 {
	return commitsScanned.Load()
}

// DiffResult is the per-entry outcome. Failures are collected and reported,
// never raised past the commit loop.
type DiffResult struct {
	File     string
	Source   logging.SecretSource
	Findings []types.Finding
	Err      error
}

// AnalyzeCommit scans one commit: its message first, then every diff entry
// in the order the repository reported them. A failing entry is logged and
// skipped. All findings are tagged with the commit hash, and the returned
// order follows file-processing order.
func AnalyzeCommit(ctx context.Context, commit types.Commit, opts Options) []types.Finding {
	findings := []types.Finding{}

	messageFindings := detect(ctx, commit.Message, "commit message "+commit.Hash, opts)
	for _, finding := range messageFindings {
		finding.CommitHash = commit.Hash
		finding.File = commitMessageFile
		ReportFinding(finding, logging.SecretSourceCommitMessage)
		findings = append(findings, finding)
	}

	for i, entry := range commit.Diffs {
		result := scanDiffEntry(ctx, commit, i, entry, opts)
		if result.Err != nil {
			log.Error().Err(result.Err).Int("index", i).Str("file", result.File).Str("commit", commit.Hash).Msg("Failed processing diff entry")
			continue
		}

		for _, finding := range result.Findings {
			ReportFinding(finding, result.Source)
		}
		findings = append(findings, result.Findings...)
	}

	commitsScanned.Add(1)
	log.Debug().Str("commit", commit.Hash).Int("findings", len(findings)).Msg("Commit analyzed")
	return findings
}

// scanDiffEntry normalizes one entry's diff text and matches it, falling
// back to the file's full blob content when no diff text is available. A
// panicking detector must not abort the remaining entries.
func scanDiffEntry(ctx context.Context, commit types.Commit, index int, entry types.DiffEntry, opts Options) (result DiffResult) {
	result.File = entry.Path(index)
	result.Source = logging.SecretSourceDiff

	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("panic while scanning %s: %v", result.File, r)
			result.Findings = nil
		}
	}()

	text := diff.Normalize(entry.RawDiff)
	if strings.TrimSpace(text) == "" && commit.Tree != nil {
		content, err := commit.Tree.FileContents(result.File)
		if err != nil {
			log.Debug().Err(err).Str("file", result.File).Str("commit", commit.Hash).Msg("No blob content for fallback")
			content = ""
		} else {
			result.Source = logging.SecretSourceBlob
		}
		text = content
	}

	if strings.TrimSpace(text) == "" {
		log.Debug().Str("file", result.File).Str("commit", commit.Hash).Msg("No content found")
		return result
	}

	detected := detect(ctx, text, "file "+result.File, opts)
	for i := range detected {
		detected[i].CommitHash = commit.Hash
		detected[i].File = result.File
	}
	result.Findings = detected
	return result
}

// detect runs the primary pattern matcher plus any enabled secondary
// sources over the same text and reconciles their findings.
func detect(ctx context.Context, text string, source string, opts Options) []types.Finding {
	sets := [][]types.Finding{
		engine.MatchPatterns(text, opts.RuleSet, engine.Options{Source: source}),
	}

	if opts.TruffleHog {
		sets = append(sets, engine.DetectWithTruffleHog(ctx, text, opts.MaxThreads, opts.Verify))
	}

	if opts.Analyzer != nil {
		sets = append(sets, opts.Analyzer.Analyze(ctx, text))
	}

	return engine.Reconcile(sets...)
}
