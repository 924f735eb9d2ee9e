package scan

import (
	"github.com/CompassSecurity/commitleak/pkg/logging"
	"github.com/CompassSecurity/commitleak/pkg/scanner/types"
)

// ReportFinding emits a single finding through the hit-level logger. All
// scan paths use this consistent format.
func ReportFinding(finding types.Finding, source logging.SecretSource) {
	logging.Hit().
		Str("confidence", string(finding.Confidence)).
		Str("ruleName", finding.Type).
		Str("commit", finding.CommitHash).
		Str("file", finding.File).
		Int("line", finding.Line).
		Str("source", string(source)).
		Str("value", finding.Snippet).
		Msg("HIT")
}
