package analyzer

import (
	"context"
	"testing"

	"github.com/CompassSecurity/commitleak/pkg/scanner/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}

func TestNew(t *testing.T) {
	assert.Nil(t, New(""))
	assert.Nil(t, New("   "))
	assert.NotNil(t, New("secret-judge --json"))
}

func TestParseFindings(t *testing.T) {
	t.Run("valid output is converted", func(t *testing.T) {
		output := []byte(`{"findings":[{"snippet":"api_key=zzz111222333444555","type":"API_KEY","rationale":"looks live","confidence":"medium"}]}`)
		text := "before\napi_key=zzz111222333444555\nafter"

		findings := ParseFindings(output, text)

		require.Len(t, findings, 1)
		assert.Equal(t, "api_key=zzz111222333444555", findings[0].Snippet)
		assert.Equal(t, "API_KEY", findings[0].Type)
		assert.Equal(t, "looks live", findings[0].Rationale)
		assert.Equal(t, types.ConfidenceMedium, findings[0].Confidence)
		assert.Equal(t, types.SourceContextual, findings[0].Source)
		assert.Equal(t, 2, findings[0].Line)
	})

	t.Run("non-json output yields zero findings", func(t *testing.T) {
		assert.Empty(t, ParseFindings([]byte("I think line 3 contains a secret"), "text"))
	})

	t.Run("missing findings array yields zero findings", func(t *testing.T) {
		assert.Empty(t, ParseFindings([]byte(`{"result":"ok"}`), "text"))
	})

	t.Run("findings as non-array yields zero findings", func(t *testing.T) {
		assert.Empty(t, ParseFindings([]byte(`{"findings":"none"}`), "text"))
	})

	t.Run("entries without a snippet string are dropped", func(t *testing.T) {
		output := []byte(`{"findings":[{"type":"NO_SNIPPET"},{"snippet":42},{"snippet":"kept_snippet_value_1234"}]}`)

		findings := ParseFindings(output, "kept_snippet_value_1234")

		require.Len(t, findings, 1)
		assert.Equal(t, "kept_snippet_value_1234", findings[0].Snippet)
	})

	t.Run("unknown confidence degrades to low", func(t *testing.T) {
		output := []byte(`{"findings":[{"snippet":"some_snippet_value_5678","confidence":"definitely"}]}`)

		findings := ParseFindings(output, "")

		require.Len(t, findings, 1)
		assert.Equal(t, types.ConfidenceLow, findings[0].Confidence)
	})

	t.Run("missing type and rationale get defaults", func(t *testing.T) {
		output := []byte(`{"findings":[{"snippet":"defaulted_snippet_value_1"}]}`)

		findings := ParseFindings(output, "")

		require.Len(t, findings, 1)
		assert.Equal(t, "CONTEXTUAL", findings[0].Type)
		assert.Equal(t, "Flagged by contextual analyzer", findings[0].Rationale)
	})
}

func TestAnalyze(t *testing.T) {
	t.Run("round-trips through a real command", func(t *testing.T) {
		// cat echoes stdin, so feeding the findings document as the scanned
		// text exercises the full command plumbing.
		a := New("cat")
		text := `{"findings":[{"snippet":"piped_snippet_value_999","confidence":"high"}]}`

		findings := a.Analyze(context.Background(), text)

		require.Len(t, findings, 1)
		assert.Equal(t, "piped_snippet_value_999", findings[0].Snippet)
		assert.Equal(t, types.ConfidenceHigh, findings[0].Confidence)
	})

	t.Run("failing command yields zero findings", func(t *testing.T) {
		a := New("false")
		assert.Empty(t, a.Analyze(context.Background(), "whatever"))
	})

	t.Run("missing command yields zero findings", func(t *testing.T) {
		a := New("commitleak-no-such-binary-xyz")
		assert.Empty(t, a.Analyze(context.Background(), "whatever"))
	})
}
