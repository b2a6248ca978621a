// Package config loads meetsync settings from YAML files and flag values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/codeGROOVE-dev/meetsync/pkg/catalog"
	"github.com/codeGROOVE-dev/meetsync/pkg/meeting"
	"github.com/codeGROOVE-dev/meetsync/pkg/tzconvert"
)

// Environment variables consulted when the matching flag is empty.
const (
	EnvConfig   = "MEETSYNC_CONFIG"
	EnvTimezone = "MEETSYNC_TZ"
)

// Configuration errors.
var (
	ErrMultipleMyZone = errors.New("more than one zone has my_timezone set")
	ErrDuplicateID    = errors.New("duplicate zone id")
	ErrBadZoneSpec    = errors.New("invalid zone spec")
)

// Config is the resolved configuration.
type Config struct {
	Timezone string           // ambient timezone; empty means the host zone
	Zones    []meeting.Zone   // nil means the built-in defaults
	Extra    []catalog.Option // catalog additions
	Is24Hour bool
}

// fileZone mirrors meeting.Zone with an optional enabled flag so omitted
// entries default to enabled.
type fileZone struct {
	Enabled    *bool  `yaml:"enabled"`
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Timezone   string `yaml:"timezone"`
	MyTimezone bool   `yaml:"my_timezone"`
}

type fileConfig struct {
	Timezone string           `yaml:"timezone"`
	Zones    []fileZone       `yaml:"zones"`
	Catalog  []catalog.Option `yaml:"catalog"`
	Is24Hour bool             `yaml:"24h"`
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config dir: %w", err)
	}
	return filepath.Join(dir, "meetsync", "config.yaml"), nil
}

// Load reads a config file. A missing file yields an empty Config when
// optional is true.
func Load(path string, optional bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates YAML config data.
func Parse(data []byte) (*Config, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &Config{}, nil
	}

	var doc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := &Config{
		Timezone: strings.TrimSpace(doc.Timezone),
		Is24Hour: doc.Is24Hour,
		Extra:    doc.Catalog,
	}
	if len(doc.Zones) > 0 {
		cfg.Zones = make([]meeting.Zone, 0, len(doc.Zones))
		for _, fz := range doc.Zones {
			enabled := true
			if fz.Enabled != nil {
				enabled = *fz.Enabled
			}
			cfg.Zones = append(cfg.Zones, newZone(fz.ID, fz.Name, fz.Timezone, enabled, fz.MyTimezone))
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newZone(id, name, timezone string, enabled, mine bool) meeting.Zone {
	timezone = strings.TrimSpace(timezone)
	name = strings.TrimSpace(name)
	if id == "" {
		id = uuid.NewString()
	}
	if name == "" {
		name = cityName(timezone)
	}
	return meeting.Zone{
		ID:           id,
		Name:         name,
		Timezone:     timezone,
		Enabled:      enabled,
		IsMyTimezone: mine,
	}
}

// cityName derives a display name from the last path segment:
// "America/Sao_Paulo" becomes "Sao Paulo".
func cityName(timezone string) string {
	if i := strings.LastIndex(timezone, "/"); i >= 0 {
		timezone = timezone[i+1:]
	}
	return strings.ReplaceAll(timezone, "_", " ")
}

// ParseZones parses the -zones flag: a comma-separated list of
// "Name=Area/City" or bare "Area/City" entries. A leading '*' marks the
// user's own zone, e.g. "*Berlin=Europe/Berlin,Asia/Tokyo".
func ParseZones(spec string) ([]meeting.Zone, error) {
	var zones []meeting.Zone
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		mine := strings.HasPrefix(part, "*")
		part = strings.TrimPrefix(part, "*")

		name, timezone, found := strings.Cut(part, "=")
		if !found {
			name, timezone = "", part
		}
		if strings.TrimSpace(timezone) == "" {
			return nil, fmt.Errorf("%w: %q", ErrBadZoneSpec, part)
		}
		zones = append(zones, newZone("", name, timezone, true, mine))
	}
	if len(zones) == 0 {
		return nil, fmt.Errorf("%w: no zones in %q", ErrBadZoneSpec, spec)
	}
	if err := validateZones(zones); err != nil {
		return nil, err
	}
	return zones, nil
}

// Validate checks that every timezone resolves, ids are unique and at most
// one zone is marked as the user's own.
func (c *Config) Validate() error {
	if c.Timezone != "" {
		if _, err := tzconvert.Load(c.Timezone); err != nil {
			return fmt.Errorf("timezone: %w", err)
		}
	}
	return validateZones(c.Zones)
}

func validateZones(zones []meeting.Zone) error {
	ids := make(map[string]bool, len(zones))
	mine := 0
	for i := range zones {
		z := &zones[i]
		if ids[z.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateID, z.ID)
		}
		ids[z.ID] = true
		if z.IsMyTimezone {
			mine++
		}
		if _, err := tzconvert.Load(z.Timezone); err != nil {
			return fmt.Errorf("zone %q: %w", z.Name, err)
		}
	}
	if mine > 1 {
		return ErrMultipleMyZone
	}
	return nil
}

// Catalog builds the catalog of selectable timezones: the built-in set,
// the configured extras and every timezone used by a configured zone.
func (c *Config) Catalog() (*catalog.Catalog, error) {
	extra := make([]catalog.Option, 0, len(c.Extra)+len(c.Zones))
	extra = append(extra, c.Extra...)
	base := catalog.Default()
	seen := make(map[string]bool)
	for _, opt := range c.Extra {
		seen[opt.Value] = true
	}
	for i := range c.Zones {
		tz := c.Zones[i].Timezone
		if base.Supported(tz) || seen[tz] {
			continue
		}
		seen[tz] = true
		extra = append(extra, catalog.Option{Value: tz})
	}
	return catalog.New(extra)
}
