package format

import "time"

// reportTimeLayout is the timestamp format used in scan reports.
const reportTimeLayout = "2006-01-02 15:04:05"

// ReportTimestamp formats t the way scan report summaries expect it.
func ReportTimestamp(t time.Time) string {
	return t.Format(reportTimeLayout)
}
