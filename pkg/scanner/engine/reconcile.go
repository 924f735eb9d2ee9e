package engine

import (
	"github.com/CompassSecurity/commitleak/pkg/scanner/types"
)

// Reconcile merges finding sets that were computed independently over the
// same unit of text. Findings are deduplicated by exact snippet text: the
// first-seen entry keeps its type and rationale, and the merged confidence
// escalates to high when either side is a pattern-based high. Output order
// is first-seen insertion order.
func Reconcile(sets ...[]types.Finding) []types.Finding {
	merged := []types.Finding{}
	bySnippet := map[string]int{}

	for _, set := range sets {
		for _, finding := range set {
			idx, seen := bySnippet[finding.Snippet]
			if !seen {
				bySnippet[finding.Snippet] = len(merged)
				merged = append(merged, finding)
				continue
			}

			// The existing entry already carries high confidence when it is a
			// pattern-based high itself, so only the incoming side matters here.
			if finding.PatternBased() && finding.Confidence == types.ConfidenceHigh {
				merged[idx].Confidence = types.ConfidenceHigh
			}
		}
	}

	return merged
}
