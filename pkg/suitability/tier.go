// Package suitability classifies local hours into meeting suitability tiers
// and rates aggregate scores.
package suitability

// Tier ranks how acceptable a local hour is for a meeting.
// The zero value is Poor so an unset Tier never overstates suitability.
type Tier int

// Tiers ordered worst to best; Weight is derived from the ordinal.
const (
	Poor Tier = iota
	Fair
	Good
	Excellent
)

// MaxWeight is the weight of an Excellent tier, the per-zone ceiling.
const MaxWeight = 4

// AllTiers returns the tiers ordered best to worst.
func AllTiers() []Tier {
	return []Tier{Excellent, Good, Fair, Poor}
}

// Classify maps a local hour (0-23) to a tier.
//
// The rules overlap and are checked in order; the first match wins:
//   - 09:00-17:59 excellent
//   - 07:00-20:59 good
//   - 06:00-22:59 fair
//   - anything else poor
func Classify(hour int) Tier {
	if hour >= 9 && hour <= 17 {
		return Excellent
	}
	if hour >= 7 && hour <= 20 {
		return Good
	}
	if hour >= 6 && hour <= 22 {
		return Fair
	}
	return Poor
}

// Weight returns the numeric score of the tier: 4, 3, 2 or 1.
func (t Tier) Weight() int {
	switch t {
	case Excellent:
		return 4
	case Good:
		return 3
	case Fair:
		return 2
	default:
		return 1
	}
}

func (t Tier) String() string {
	switch t {
	case Excellent:
		return "excellent"
	case Good:
		return "good"
	case Fair:
		return "fair"
	default:
		return "poor"
	}
}

// Label is the badge text shown next to a single timezone.
func (t Tier) Label() string {
	switch t {
	case Excellent:
		return "Perfect Time"
	case Good:
		return "Good Time"
	case Fair:
		return "Early/Late"
	default:
		return "Off Hours"
	}
}

// Short is the heading used in the per-tier counts grid.
func (t Tier) Short() string {
	switch t {
	case Excellent:
		return "Perfect"
	case Good:
		return "Good"
	case Fair:
		return "Early/Late"
	default:
		return "Off Hours"
	}
}

// Severity maps a tier onto the rating severity with the same rank.
func (t Tier) Severity() Severity {
	switch t {
	case Excellent:
		return SeverityExcellent
	case Good:
		return SeverityGood
	case Fair:
		return SeverityFair
	default:
		return SeverityPoor
	}
}

// MarshalText implements encoding.TextMarshaler so tiers serialize by name.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
