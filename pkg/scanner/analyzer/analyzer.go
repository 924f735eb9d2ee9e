// Package analyzer adapts an external contextual classifier into the
// detection pipeline. The classifier is an arbitrary local command whose
// stdout must be a JSON findings document; its output is parsed under a
// strict schema and never interpreted as anything but data.
package analyzer

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/CompassSecurity/commitleak/pkg/format"
	"github.com/CompassSecurity/commitleak/pkg/scanner/engine"
	"github.com/CompassSecurity/commitleak/pkg/scanner/types"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// CommandAnalyzer runs a user-supplied command with the scanned text on
// stdin. Expected output shape:
//
//	{"findings": [{"snippet": "...", "type": "...", "rationale": "...", "confidence": "high|medium|low"}]}
//
// Malformed output yields zero findings.
type CommandAnalyzer struct {
	command []string
}

// New builds a CommandAnalyzer from a whitespace-separated command line.
// Returns nil for an empty command.
func New(command string) *CommandAnalyzer {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return nil
	}
	return &CommandAnalyzer{command: parts}
}

// Analyze feeds the text to the analyzer command and parses its findings.
// Failures to run the command or to parse its output are logged and treated
// as zero findings; the scan never aborts on analyzer trouble.
func (a *CommandAnalyzer) Analyze(ctx context.Context, text string) []types.Finding {
	findings := []types.Finding{}

	cmd := exec.CommandContext(ctx, a.command[0], a.command[1:]...)
	cmd.Stdin = strings.NewReader(text)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		log.Warn().Err(err).Str("command", a.command[0]).Msg("Contextual analyzer failed")
		return findings
	}

	return ParseFindings(stdout.Bytes(), text)
}

// ParseFindings validates and converts an analyzer's JSON output. Entries
// without a snippet string are dropped, unknown confidence values degrade
// to low.
func ParseFindings(output []byte, text string) []types.Finding {
	findings := []types.Finding{}

	if !gjson.ValidBytes(output) {
		log.Warn().Msg("Contextual analyzer returned invalid JSON, ignoring output")
		return findings
	}

	entries := gjson.GetBytes(output, "findings")
	if !entries.IsArray() {
		log.Warn().Msg("Contextual analyzer output has no findings array, ignoring output")
		return findings
	}

	entries.ForEach(func(_, entry gjson.Result) bool {
		snippetValue := entry.Get("snippet")
		if snippetValue.Type != gjson.String || snippetValue.String() == "" {
			log.Debug().Str("entry", entry.Raw).Msg("Dropping analyzer finding without snippet")
			return true
		}

		snippet := format.TruncateString(strings.TrimSpace(snippetValue.String()), 200)

		findingType := entry.Get("type").String()
		if findingType == "" {
			findingType = "CONTEXTUAL"
		}

		rationale := entry.Get("rationale").String()
		if rationale == "" {
			rationale = "Flagged by contextual analyzer"
		}

		findings = append(findings, types.Finding{
			Line:       engine.LocateLine(text, snippet),
			Snippet:    snippet,
			Type:       findingType,
			Rationale:  rationale,
			Confidence: types.ParseConfidence(entry.Get("confidence").String()),
			Source:     types.SourceContextual,
		})
		return true
	})

	return findings
}
