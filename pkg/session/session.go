// Package session holds the state of one meeting-planner session: the
// ordered zone collection, the selected instant and whether that instant
// follows the wall clock or has been pinned by the user.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/codeGROOVE-dev/meetsync/pkg/catalog"
	"github.com/codeGROOVE-dev/meetsync/pkg/constants"
	"github.com/codeGROOVE-dev/meetsync/pkg/meeting"
	"github.com/codeGROOVE-dev/meetsync/pkg/tzconvert"
)

// Session errors.
var (
	ErrUnknownZone    = errors.New("unknown zone id")
	ErrDuplicateZone  = errors.New("duplicate zone id")
	ErrMultipleMyZone = errors.New("more than one zone marked as my timezone")
	ErrEmptyName      = errors.New("zone name is empty")
	ErrBadIndex       = errors.New("zone index out of range")
)

// Mode says whether the selected instant tracks the clock.
type Mode int

const (
	// Following advances the selected instant on every refresh.
	Following Mode = iota
	// Pinned keeps an instant chosen explicitly by the user.
	Pinned
)

func (m Mode) String() string {
	if m == Pinned {
		return "pinned"
	}
	return "following"
}

// Snapshot is a consistent copy of the session state.
type Snapshot struct {
	Selected time.Time      `json:"selected"`
	Zones    []meeting.Zone `json:"zones"`
	Mode     Mode           `json:"mode"`
	Is24Hour bool           `json:"is_24_hour"`
}

// Session is safe for concurrent use; every mutation is applied to
// completion under a single lock.
type Session struct {
	clock           Clock
	catalog         *catalog.Catalog
	logger          *slog.Logger
	location        *time.Location
	selected        time.Time
	defaults        []meeting.Zone
	zones           []meeting.Zone
	refreshInterval time.Duration
	mu              sync.Mutex
	mode            Mode
	is24Hour        bool
	defaults24Hour  bool
}

// New creates a session in Following mode at the current instant.
func New(opts ...Option) (*Session, error) {
	o := &optionHolder{}
	for _, opt := range opts {
		opt(o)
	}
	if o.clock == nil {
		o.clock = RealClock{}
	}
	if o.catalog == nil {
		o.catalog = catalog.Default()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.location == nil {
		o.location = time.Local
	}
	if o.refreshInterval <= 0 {
		o.refreshInterval = constants.RefreshInterval
	}
	if o.zones == nil {
		o.zones = meeting.DefaultZones()
	}
	if err := validateZones(o.zones); err != nil {
		return nil, err
	}

	s := &Session{
		clock:           o.clock,
		catalog:         o.catalog,
		logger:          o.logger,
		location:        o.location,
		defaults:        cloneZones(o.zones),
		zones:           cloneZones(o.zones),
		refreshInterval: o.refreshInterval,
		is24Hour:        o.is24Hour,
		defaults24Hour:  o.is24Hour,
		mode:            Following,
	}
	s.selected = s.now()
	return s, nil
}

func validateZones(zones []meeting.Zone) error {
	ids := make(map[string]bool, len(zones))
	mine := 0
	for i := range zones {
		z := &zones[i]
		if ids[z.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateZone, z.ID)
		}
		ids[z.ID] = true
		if z.IsMyTimezone {
			mine++
		}
		if _, err := tzconvert.Load(z.Timezone); err != nil {
			return fmt.Errorf("zone %q: %w", z.ID, err)
		}
	}
	if mine > 1 {
		return ErrMultipleMyZone
	}
	return nil
}

func cloneZones(zones []meeting.Zone) []meeting.Zone {
	out := make([]meeting.Zone, len(zones))
	copy(out, zones)
	return out
}

func (s *Session) now() time.Time {
	return s.clock.Now().In(s.location)
}

// indexLocked returns the position of id. Caller holds s.mu.
func (s *Session) indexLocked(id string) (int, error) {
	for i := range s.zones {
		if s.zones[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownZone, id)
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Selected: s.selected,
		Zones:    cloneZones(s.zones),
		Mode:     s.mode,
		Is24Hour: s.is24Hour,
	}
}

// Zones returns the zone collection in display order.
func (s *Session) Zones() []meeting.Zone {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneZones(s.zones)
}

// Enabled returns the zones currently included in scoring.
func (s *Session) Enabled() []meeting.Zone {
	s.mu.Lock()
	defer s.mu.Unlock()
	return meeting.Enabled(s.zones)
}

// MyTimezone returns the zone marked as the user's own, if any.
func (s *Session) MyTimezone() (meeting.Zone, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.zones {
		if s.zones[i].IsMyTimezone {
			return s.zones[i], true
		}
	}
	return meeting.Zone{}, false
}

// Selected returns the candidate meeting instant on the ambient wall clock.
func (s *Session) Selected() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Mode returns whether the selected instant follows the clock.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Location returns the ambient location.
func (s *Session) Location() *time.Location {
	return s.location
}

// Catalog returns the catalog used to validate timezone changes.
func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

// Is24Hour reports the display format.
func (s *Session) Is24Hour() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.is24Hour
}

// Set24Hour switches between 12-hour and 24-hour display.
func (s *Session) Set24Hour(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.is24Hour = enabled
}

// SetTime pins the selected instant.
func (s *Session) SetTime(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pinLocked(t)
}

func (s *Session) pinLocked(t time.Time) {
	s.selected = t.In(s.location)
	if s.mode != Pinned {
		s.logger.Debug("session pinned", "selected", s.selected)
	}
	s.mode = Pinned
}

// SliderMinute snaps minute to the nearest slider step. The last step of
// the day is 23:45.
func SliderMinute(minute int) int {
	step := constants.SliderStepMinutes
	last := constants.MinutesPerDay - step
	snapped := (minute + step/2) / step * step
	return max(0, min(snapped, last))
}

// SetMinuteOfDay pins the selected instant to minute (0-1439) of the
// selected day on the ambient wall clock, as the time slider does.
func (s *Session) SetMinuteOfDay(minute int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := tzconvert.AtMinuteOfDay(s.selected, minute)
	if err != nil {
		return err
	}
	s.pinLocked(t)
	return nil
}

// JumpToOptimal pins the selected instant to the optimal slot of the
// selected day and returns that slot's minute of day.
func (s *Session) JumpToOptimal() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	minute, err := meeting.FindOptimal(s.selected, s.zones)
	if err != nil {
		return 0, err
	}
	t, err := tzconvert.AtMinuteOfDay(s.selected, minute)
	if err != nil {
		return 0, err
	}
	s.pinLocked(t)
	return minute, nil
}

// ResetToNow returns to Following mode at the current instant.
func (s *Session) ResetToNow() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = s.now()
	s.mode = Following
	s.logger.Debug("session following clock", "selected", s.selected)
}

// Reset restores the initial zones and display format and follows the clock.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zones = cloneZones(s.defaults)
	s.is24Hour = s.defaults24Hour
	s.selected = s.now()
	s.mode = Following
	s.logger.Info("session reset to defaults", "zones", len(s.zones))
}

// Tick re-reads the clock while Following and reports whether the selected
// instant moved. Pinned sessions are left untouched.
func (s *Session) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == Pinned {
		return false
	}
	s.selected = s.now()
	return true
}

// Run refreshes the session every refresh interval until ctx is done,
// calling onTick with the new state after each refresh that moved the
// selected instant. onTick may be nil.
func (s *Session) Run(ctx context.Context, onTick func(Snapshot)) {
	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("session refresh stopped", "reason", ctx.Err())
			return
		case <-ticker.C:
			if !s.Tick() {
				continue
			}
			if onTick != nil {
				onTick(s.Snapshot())
			}
		}
	}
}

// Toggle flips whether a zone takes part in scoring.
func (s *Session) Toggle(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.indexLocked(id)
	if err != nil {
		return err
	}
	s.zones[i].Enabled = !s.zones[i].Enabled
	return nil
}

// SetMyTimezone marks id as the user's zone and clears the mark from every
// other zone in the same step.
func (s *Session) SetMyTimezone(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.indexLocked(id); err != nil {
		return err
	}
	for i := range s.zones {
		s.zones[i].IsMyTimezone = s.zones[i].ID == id
	}
	return nil
}

// UpdateTimezone changes the IANA timezone of a zone. Only catalog
// timezones are accepted.
func (s *Session) UpdateTimezone(id, timezone string) error {
	if err := s.catalog.Validate(timezone); err != nil {
		return err
	}
	if _, err := tzconvert.Load(timezone); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.indexLocked(id)
	if err != nil {
		return err
	}
	s.zones[i].Timezone = timezone
	return nil
}

// Rename changes the display name of a zone. Surrounding whitespace is
// dropped and blank names are rejected.
func (s *Session) Rename(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.indexLocked(id)
	if err != nil {
		return err
	}
	s.zones[i].Name = name
	return nil
}

// Score rates the selected instant across the enabled zones.
func (s *Session) Score() (*meeting.Result, error) {
	snap := s.Snapshot()
	return meeting.Score(snap.Selected, snap.Zones)
}

// Optimal returns the optimal minute of the selected day.
func (s *Session) Optimal() (int, error) {
	snap := s.Snapshot()
	return meeting.FindOptimal(snap.Selected, snap.Zones)
}

// Sweep returns the half-hour samples of the selected day.
func (s *Session) Sweep() ([]meeting.Sample, error) {
	snap := s.Snapshot()
	return meeting.Sweep(snap.Selected, snap.Zones)
}

// Move repositions a zone to index, shifting the zones in between.
func (s *Session) Move(id string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	from, err := s.indexLocked(id)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(s.zones) {
		return fmt.Errorf("%w: %d", ErrBadIndex, index)
	}
	z := s.zones[from]
	s.zones = slices.Delete(s.zones, from, from+1)
	s.zones = slices.Insert(s.zones, index, z)
	return nil
}
