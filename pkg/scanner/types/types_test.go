package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseConfidence(t *testing.T) {
	tests := []struct {
		value    string
		expected Confidence
	}{
		{value: "high", expected: ConfidenceHigh},
		{value: "HIGH", expected: ConfidenceHigh},
		{value: "high-verified", expected: ConfidenceHigh},
		{value: "medium", expected: ConfidenceMedium},
		{value: "low", expected: ConfidenceLow},
		{value: "definitely", expected: ConfidenceLow},
		{value: "", expected: ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run("label "+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseConfidence(tt.value))
		})
	}
}

func TestDiffEntryPath(t *testing.T) {
	assert.Equal(t, "after.txt", DiffEntry{PathBefore: "before.txt", PathAfter: "after.txt"}.Path(0))
	assert.Equal(t, "before.txt", DiffEntry{PathBefore: "before.txt"}.Path(0))
	assert.Equal(t, "unknown_file_3", DiffEntry{}.Path(3))
}
