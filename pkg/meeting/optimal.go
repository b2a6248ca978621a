package meeting

import (
	"fmt"
	"time"

	"github.com/codeGROOVE-dev/meetsync/pkg/constants"
	"github.com/codeGROOVE-dev/meetsync/pkg/tzconvert"
)

// Sample is the aggregate score of one candidate slot in a day sweep.
type Sample struct {
	Instant    time.Time `json:"instant"`
	Minute     int       `json:"minute"`
	Total      int       `json:"total"`
	Percentage int       `json:"percentage"`
}

// Sweep scores every 30-minute slot of the day containing dateContext.
// Slots are built by replacing the hour and minute of dateContext in its
// own location, so the day is the one on dateContext's wall clock.
func Sweep(dateContext time.Time, zones []Zone) ([]Sample, error) {
	enabled := Enabled(zones)
	samples := make([]Sample, 0, constants.SamplesPerDay)

	for minute := 0; minute < constants.MinutesPerDay; minute += constants.SampleStepMinutes {
		candidate, err := tzconvert.AtMinuteOfDay(dateContext, minute)
		if err != nil {
			return nil, err
		}
		result, err := Score(candidate, enabled)
		if err != nil {
			return nil, fmt.Errorf("sweep at minute %d: %w", minute, err)
		}
		samples = append(samples, Sample{
			Instant:    candidate,
			Minute:     minute,
			Total:      result.Total,
			Percentage: result.Percentage,
		})
	}
	return samples, nil
}

// FindOptimal returns the minute of day (0-1410, on a 30-minute grid) with
// the highest total score. Ties go to the earliest slot. With no enabled
// zones nothing scores above zero and 9:00 (540) is returned.
func FindOptimal(dateContext time.Time, zones []Zone) (int, error) {
	samples, err := Sweep(dateContext, zones)
	if err != nil {
		return 0, err
	}
	return Best(samples), nil
}

// Best picks the optimal minute from a sweep. Comparison is strictly
// greater, so the first slot of a plateau wins.
func Best(samples []Sample) int {
	bestScore := 0
	bestMinute := constants.DefaultOptimalMinute
	for _, s := range samples {
		if s.Total > bestScore {
			bestScore = s.Total
			bestMinute = s.Minute
		}
	}
	return bestMinute
}
