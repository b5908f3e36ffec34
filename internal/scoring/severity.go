package scoring

// Severity is the qualitative rating of a CVSS v2 score.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// SeverityOf maps a score to the NVD v2 bands: 0.0-3.9 low, 4.0-6.9 medium,
// 7.0-10.0 high.
func SeverityOf(score float64) Severity {
	switch {
	case score < 4.0:
		return SeverityLow
	case score < 7.0:
		return SeverityMedium
	default:
		return SeverityHigh
	}
}
