// Package report renders scan output as the JSON report document.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/CompassSecurity/commitleak/pkg/format"
	"github.com/CompassSecurity/commitleak/pkg/scanner/types"
)

// Summary aggregates one scan run.
type Summary struct {
	TotalCommitsScanned int    `json:"total_commits_scanned"`
	TotalFindings       int    `json:"total_findings"`
	Timestamp           string `json:"timestamp"`
}

// Document is the full report written to disk.
type Document struct {
	Summary  Summary         `json:"summary"`
	Findings []types.Finding `json:"findings"`
}

// New builds a report document. A run without findings serializes an empty
// findings array, not null.
func New(commitsScanned int, findings []types.Finding) Document {
	if findings == nil {
		findings = []types.Finding{}
	}

	return Document{
		Summary: Summary{
			TotalCommitsScanned: commitsScanned,
			TotalFindings:       len(findings),
			Timestamp:           format.ReportTimestamp(time.Now()),
		},
		Findings: findings,
	}
}

// Write serializes the document to path as indented JSON.
func (d Document) Write(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed marshalling report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed writing report to %s: %w", path, err)
	}

	return nil
}
