package rules

import (
	"regexp"
	"strings"

	"github.com/CompassSecurity/commitleak/pkg/format"
	"github.com/CompassSecurity/commitleak/pkg/scanner/types"
	"github.com/rs/zerolog/log"
)

// SecretRule is one named detection pattern. Rules are evaluated
// case-insensitively and never mutated after construction.
type SecretRule struct {
	Name           string
	Pattern        *regexp.Regexp
	MinMatchLength int
	// CaptureFullLine widens the snippet to the whole trimmed line when the
	// matched line carries an assignment, so the variable name survives triage.
	CaptureFullLine bool
	Confidence      types.Confidence
}

// RuleSet is an immutable ordered collection of secret rules plus the
// suppression policy applied to their matches. Reconfiguration means
// building a new RuleSet.
type RuleSet struct {
	rules        []SecretRule
	placeholders []string
}

// placeholderMarkers flag matches that carry obviously non-real data.
var placeholderMarkers = []string{"example", "test", "sample", "dummy", "fake"}

const defaultMinMatchLength = 15

// Default returns the built-in rule table. Order matters: the first rule
// matching a line claims it, so specific categories come before generic ones.
func Default() *RuleSet {
	return &RuleSet{
		rules: []SecretRule{
			{
				Name:           "AWS Access Key ID",
				Pattern:        regexp.MustCompile(`(?i)\b(?:AKIA|ASIA|ABIA|AGPA|AIDA)[A-Z0-9]{16}\b`),
				MinMatchLength: defaultMinMatchLength,
				Confidence:     types.ConfidenceHigh,
			},
			{
				Name:            "AWS Secret Access Key",
				Pattern:         regexp.MustCompile(`(?i)\baws[_-]?secret[_-]?access[_-]?key\b\s*[=:]\s*["']?[A-Za-z0-9+/]{30,}={0,2}["']?`),
				MinMatchLength:  defaultMinMatchLength,
				CaptureFullLine: true,
				Confidence:      types.ConfidenceHigh,
			},
			{
				Name:           "Vendor API Key",
				Pattern:        regexp.MustCompile(`(?i)\bsk[_-][a-z0-9_-]{20,}`),
				MinMatchLength: defaultMinMatchLength,
				Confidence:     types.ConfidenceHigh,
			},
			{
				Name:           "Generic Secret Assignment",
				Pattern:        regexp.MustCompile(`(?i)\b(?:password|passwd|pwd|secret|token|api[_-]?key|access[_-]?key)\b\s*[=:]\s*["']?[A-Za-z0-9_+/=.-]{16,}["']?`),
				MinMatchLength: defaultMinMatchLength,
				Confidence:     types.ConfidenceHigh,
			},
			{
				Name:           "High Entropy Token",
				Pattern:        regexp.MustCompile(`\b[A-Za-z0-9+/]{40,}={0,2}\b`),
				MinMatchLength: 40,
				Confidence:     types.ConfidenceHigh,
			},
		},
		placeholders: placeholderMarkers,
	}
}

// Rules returns the ordered rule slice. Callers must treat it as read-only.
func (rs *RuleSet) Rules() []SecretRule {
	return rs.rules
}

// Len returns the number of rules in the set.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Suppressed reports whether a matched substring must be discarded: shorter
// than the rule's minimum once trimmed, or carrying a placeholder marker.
func (rs *RuleSet) Suppressed(rule SecretRule, match string) bool {
	trimmed := strings.TrimSpace(match)
	if len(trimmed) < rule.MinMatchLength {
		return true
	}

	for _, marker := range rs.placeholders {
		if format.ContainsI(trimmed, marker) {
			return true
		}
	}
	return false
}

// Extend returns a new RuleSet with the given patterns appended after the
// receiver's rules. The receiver is left untouched. Patterns that do not
// compile are skipped.
func (rs *RuleSet) Extend(patterns []PatternElement) *RuleSet {
	extended := make([]SecretRule, len(rs.rules), len(rs.rules)+len(patterns))
	copy(extended, rs.rules)

	for _, pattern := range patterns {
		re, err := regexp.Compile(`(?i)` + pattern.Pattern.Regex)
		if err != nil {
			log.Debug().Err(err).Str("name", pattern.Pattern.Name).Str("regex", pattern.Pattern.Regex).Msg("Skipping uncompilable rule")
			continue
		}

		extended = append(extended, SecretRule{
			Name:           pattern.Pattern.Name,
			Pattern:        re,
			MinMatchLength: defaultMinMatchLength,
			Confidence:     types.ParseConfidence(pattern.Pattern.Confidence),
		})
	}

	return &RuleSet{rules: extended, placeholders: rs.placeholders}
}
