package diff

import (
	"strings"

	"github.com/acarl005/stripansi"
)

// fileHeaderPrefixes are the per-file metadata lines a unified diff carries
// before the first hunk. They are structural noise, not scannable content.
var fileHeaderPrefixes = []string{
	"diff --git",
	"index ",
	"--- ",
	"+++ ",
	"old mode",
	"new mode",
	"new file mode",
	"deleted file mode",
	"similarity index",
	"rename from",
	"rename to",
	"copy from",
	"copy to",
	"Binary files",
}

// Normalize converts raw unified-diff text into a scannable text blob.
// Hunk headers and file metadata lines are dropped, the leading diff sign
// and whitespace run is stripped from content lines, and lines that end up
// blank are discarded. Empty input yields empty output.
func Normalize(rawDiff string) string {
	if rawDiff == "" {
		return ""
	}

	var cleaned []string
	for _, line := range strings.Split(rawDiff, "\n") {
		if strings.HasPrefix(line, "@@") || isFileHeader(line) {
			continue
		}

		if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "-") {
			continue
		}

		content := stripDiffSign(line)
		content = stripansi.Strip(content)
		if strings.TrimSpace(content) == "" {
			continue
		}
		cleaned = append(cleaned, content)
	}

	return strings.Join(cleaned, "\n")
}

// stripDiffSign removes the single leading diff marker plus any whitespace
// run that follows it.
func stripDiffSign(line string) string {
	content := line[1:]
	return strings.TrimLeft(content, " \t")
}

func isFileHeader(line string) bool {
	for _, prefix := range fileHeaderPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
