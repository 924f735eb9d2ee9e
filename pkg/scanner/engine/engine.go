package engine

import (
	"strings"

	"github.com/CompassSecurity/commitleak/pkg/format"
	"github.com/CompassSecurity/commitleak/pkg/scanner/rules"
	"github.com/CompassSecurity/commitleak/pkg/scanner/types"
	"github.com/rs/zerolog/log"
)

// Options controls one pattern-matching pass.
type Options struct {
	// Source names the scanned unit in diagnostics, e.g. "file config/app.env".
	Source string
	// MinLineLength is the minimum trimmed line length worth scanning.
	// Zero means DefaultMinLineLength.
	MinLineLength int
}

// DefaultMinLineLength is the minimum meaningful content length of a line.
const DefaultMinLineLength = 10

// MaxSnippetLength caps the reported snippet size.
const MaxSnippetLength = 200

// MatchPatterns scans normalized text line by line against the rule set and
// returns the raw pattern-based findings. The first rule matching a line
// claims it; a suppressed match still ends evaluation for that line, so a
// line yields at most one finding. Pure function of (text, ruleset).
func MatchPatterns(text string, ruleSet *rules.RuleSet, opts Options) []types.Finding {
	findings := []types.Finding{}
	if strings.TrimSpace(text) == "" {
		return findings
	}

	minLineLength := opts.MinLineLength
	if minLineLength == 0 {
		minLineLength = DefaultMinLineLength
	}

	log.Debug().Str("source", opts.Source).Int("bytes", len(text)).Msg("Scanning")
	logContentPreview(text, opts.Source)

	for lineIdx, line := range strings.Split(text, "\n") {
		if len(strings.TrimSpace(line)) < minLineLength {
			continue
		}

		for _, rule := range ruleSet.Rules() {
			matched := rule.Pattern.FindString(line)
			if matched == "" {
				continue
			}

			if ruleSet.Suppressed(rule, matched) {
				log.Trace().Str("source", opts.Source).Str("rule", rule.Name).Msg("Suppressed match")
				break
			}

			snippet := strings.TrimSpace(matched)
			if rule.CaptureFullLine && strings.Contains(line, "=") {
				snippet = strings.TrimSpace(line)
			}
			snippet = format.TruncateString(snippet, MaxSnippetLength)

			log.Debug().Str("source", opts.Source).Str("rule", rule.Name).Str("match", format.TruncateString(snippet, 60)).Msg("Pattern match")

			findings = append(findings, types.Finding{
				Line:       lineIdx + 1,
				Snippet:    snippet,
				Type:       rule.Name,
				Rationale:  "Matched " + rule.Name + " pattern",
				Confidence: rule.Confidence,
				Source:     types.SourceHeuristic,
			})
			break
		}
	}

	return findings
}

func logContentPreview(text string, source string) {
	if log.Trace().Enabled() {
		for i, line := range strings.Split(text, "\n") {
			if i >= 5 {
				break
			}
			log.Trace().Str("source", source).Str("line", line).Msg("Content preview")
		}
	}
}

// LocateLine resolves a 1-based line number by finding the snippet inside the
// scanned text. Sources without positional output (TruffleHog, contextual
// analyzers) report their hits this way; unresolvable snippets map to line 1.
func LocateLine(text string, snippet string) int {
	idx := strings.Index(text, snippet)
	if idx < 0 {
		return 1
	}
	return 1 + strings.Count(text[:idx], "\n")
}
