// Package meeting scores instants for cross-timezone meetings and searches
// a day for the best shared slot.
package meeting

// Zone is a user-configured timezone column.
type Zone struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Timezone     string `json:"timezone" yaml:"timezone"`
	Enabled      bool   `json:"enabled" yaml:"enabled"`
	IsMyTimezone bool   `json:"is_my_timezone" yaml:"my_timezone"`
}

// DefaultZones returns the starting set of zones. Each call returns a
// fresh slice.
func DefaultZones() []Zone {
	return []Zone{
		{ID: "1", Name: "San Francisco", Timezone: "America/Los_Angeles", Enabled: true},
		{ID: "2", Name: "New York", Timezone: "America/New_York", Enabled: true, IsMyTimezone: true},
		{ID: "3", Name: "Amsterdam", Timezone: "Europe/Amsterdam", Enabled: true},
		{ID: "4", Name: "Mumbai", Timezone: "Asia/Kolkata", Enabled: true},
	}
}

// Enabled returns the zones included in scoring, in input order.
func Enabled(zones []Zone) []Zone {
	out := make([]Zone, 0, len(zones))
	for i := range zones {
		if zones[i].Enabled {
			out = append(out, zones[i])
		}
	}
	return out
}
