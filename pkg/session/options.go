package session

import (
	"log/slog"
	"time"

	"github.com/codeGROOVE-dev/meetsync/pkg/catalog"
	"github.com/codeGROOVE-dev/meetsync/pkg/meeting"
)

// Option configures a Session.
type Option func(*optionHolder)

type optionHolder struct {
	clock           Clock
	catalog         *catalog.Catalog
	logger          *slog.Logger
	location        *time.Location
	zones           []meeting.Zone
	refreshInterval time.Duration
	is24Hour        bool
}

// WithClock sets the source of the current instant.
func WithClock(clock Clock) Option {
	return func(o *optionHolder) {
		o.clock = clock
	}
}

// WithCatalog sets the catalog used to validate timezone changes.
func WithCatalog(c *catalog.Catalog) Option {
	return func(o *optionHolder) {
		o.catalog = c
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *optionHolder) {
		o.logger = logger
	}
}

// WithLocation sets the ambient location: the wall clock on which slider
// minutes and the optimal sweep are interpreted.
func WithLocation(loc *time.Location) Option {
	return func(o *optionHolder) {
		o.location = loc
	}
}

// WithZones replaces the default zone set. The same set is restored by Reset.
func WithZones(zones []meeting.Zone) Option {
	return func(o *optionHolder) {
		o.zones = zones
	}
}

// With24Hour selects 24-hour display.
func With24Hour(enabled bool) Option {
	return func(o *optionHolder) {
		o.is24Hour = enabled
	}
}

// WithRefreshInterval overrides how often Run re-reads the clock.
func WithRefreshInterval(d time.Duration) Option {
	return func(o *optionHolder) {
		o.refreshInterval = d
	}
}
