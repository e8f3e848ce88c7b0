package render

const (
	RiskHigh   = "High"
	RiskMedium = "Medium"
	RiskLow    = "Low"
)

// RiskLevel maps a fraud confidence in [0,1] to its label.
func RiskLevel(confidence float64) string {
	switch {
	case confidence > 0.8:
		return RiskHigh
	case confidence > 0.5:
		return RiskMedium
	default:
		return RiskLow
	}
}
