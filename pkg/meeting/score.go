package meeting

import (
	"fmt"
	"math"
	"time"

	"github.com/codeGROOVE-dev/meetsync/pkg/suitability"
	"github.com/codeGROOVE-dev/meetsync/pkg/tzconvert"
)

// ZoneScore is the classification of one enabled zone at an instant.
type ZoneScore struct {
	Zone      Zone             `json:"zone"`
	LocalHour int              `json:"local_hour"`
	Tier      suitability.Tier `json:"tier"`
}

// Result is the aggregate suitability of an instant across enabled zones.
type Result struct {
	Counts      map[suitability.Tier]int `json:"counts"`
	Zones       []ZoneScore              `json:"zones"`
	Total       int                      `json:"total"`
	MaxPossible int                      `json:"max_possible"`
	Percentage  int                      `json:"percentage"`
}

// Rating returns the qualitative rating of the percentage.
func (r *Result) Rating() suitability.Rating {
	return suitability.Rate(r.Percentage)
}

// Count returns the number of enabled zones in the given tier.
func (r *Result) Count(tier suitability.Tier) int {
	return r.Counts[tier]
}

// Score classifies every enabled zone at instant and aggregates the weights.
// With no enabled zones the result is all zeros: no signal, not an error.
// The only error is an unresolvable timezone.
func Score(instant time.Time, zones []Zone) (*Result, error) {
	result := &Result{
		Counts: make(map[suitability.Tier]int, 4),
		Zones:  make([]ZoneScore, 0, len(zones)),
	}
	for _, tier := range suitability.AllTiers() {
		result.Counts[tier] = 0
	}

	for i := range zones {
		zone := &zones[i]
		if !zone.Enabled {
			continue
		}
		hour, err := tzconvert.LocalHour(instant, zone.Timezone)
		if err != nil {
			return nil, fmt.Errorf("scoring zone %q: %w", zone.ID, err)
		}
		tier := suitability.Classify(hour)

		result.Zones = append(result.Zones, ZoneScore{Zone: *zone, LocalHour: hour, Tier: tier})
		result.Total += tier.Weight()
		result.Counts[tier]++
	}

	result.MaxPossible = len(result.Zones) * suitability.MaxWeight
	result.Percentage = percentage(result.Total, result.MaxPossible)
	return result, nil
}

// percentage rounds total/maxPossible*100 half up; 5 of 8 is 63.
func percentage(total, maxPossible int) int {
	if maxPossible <= 0 {
		return 0
	}
	return int(math.Floor(float64(total)/float64(maxPossible)*100 + 0.5))
}
