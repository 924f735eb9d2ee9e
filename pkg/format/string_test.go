package format

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		max      int
		expected string
	}{
		{name: "shorter than max", s: "short", max: 10, expected: "short"},
		{name: "exactly max", s: "exact", max: 5, expected: "exact"},
		{name: "longer than max", s: "truncate me", max: 8, expected: "truncate"},
		{name: "zero max returns input", s: "keep", max: 0, expected: "keep"},
		{name: "negative max returns input", s: "keep", max: -1, expected: "keep"},
		{name: "empty input", s: "", max: 5, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateString(tt.s, tt.max))
		})
	}

	t.Run("long input is bounded", func(t *testing.T) {
		assert.Len(t, TruncateString(strings.Repeat("a", 500), 200), 200)
	})
}

func TestContainsI(t *testing.T) {
	assert.True(t, ContainsI("hello", "hello"))
	assert.True(t, ContainsI("Hello World", "world"))
	assert.True(t, ContainsI("AKIAEXAMPLE123", "example"))
	assert.False(t, ContainsI("hello", "absent"))
	assert.True(t, ContainsI("anything", ""))
}

func TestReportTimestamp(t *testing.T) {
	ts := time.Date(2025, 6, 1, 13, 45, 9, 0, time.UTC)
	assert.Equal(t, "2025-06-01 13:45:09", ReportTimestamp(ts))
}
