package suitability

// Severity is the qualitative band of an aggregate percentage.
type Severity int

// Severities ordered worst to best.
const (
	SeverityPoor Severity = iota
	SeverityFair
	SeverityGood
	SeverityExcellent
)

func (s Severity) String() string {
	switch s {
	case SeverityExcellent:
		return "excellent"
	case SeverityGood:
		return "good"
	case SeverityFair:
		return "fair"
	default:
		return "poor"
	}
}

// Icon is the status glyph shown with the rating label.
func (s Severity) Icon() string {
	switch s {
	case SeverityExcellent:
		return "🟢"
	case SeverityGood:
		return "🔵"
	case SeverityFair:
		return "🟡"
	default:
		return "🔴"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Rating is the label and severity pair derived from a percentage.
type Rating struct {
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
}

// Rating thresholds are inclusive lower bounds, checked highest first.
const (
	ExcellentThreshold = 90
	GoodThreshold      = 75
	FairThreshold      = 50
)

// Rate returns the overall rating for an aggregate percentage.
func Rate(percentage int) Rating {
	switch {
	case percentage >= ExcellentThreshold:
		return Rating{Label: "Excellent Meeting Time", Severity: SeverityExcellent}
	case percentage >= GoodThreshold:
		return Rating{Label: "Good Meeting Time", Severity: SeverityGood}
	case percentage >= FairThreshold:
		return Rating{Label: "Fair Meeting Time", Severity: SeverityFair}
	default:
		return Rating{Label: "Poor Meeting Time", Severity: SeverityPoor}
	}
}
