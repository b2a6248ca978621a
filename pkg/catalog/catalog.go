// Package catalog holds the supported timezones offered for selection.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/codeGROOVE-dev/meetsync/pkg/tzconvert"
)

// ErrUnsupported is returned for timezones outside the catalog.
var ErrUnsupported = errors.New("unsupported timezone")

// Option is a selectable timezone with its display label and abbreviation.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
	Abbr  string `json:"abbr" yaml:"abbr"`
}

var builtin = []Option{
	{Value: "America/Los_Angeles", Label: "Pacific Time (PST/PDT)", Abbr: "PST"},
	{Value: "America/New_York", Label: "Eastern Time (EST/EDT)", Abbr: "EST"},
	{Value: "Europe/London", Label: "London (GMT/BST)", Abbr: "GMT"},
	{Value: "Europe/Amsterdam", Label: "Central Europe (CET/CEST)", Abbr: "CET"},
	{Value: "Asia/Kolkata", Label: "India Standard Time (IST)", Abbr: "IST"},
	{Value: "Asia/Tokyo", Label: "Japan Standard Time (JST)", Abbr: "JST"},
	{Value: "Australia/Sydney", Label: "Australian Eastern Time", Abbr: "AEST"},
}

// Catalog is an ordered, immutable set of supported timezones.
type Catalog struct {
	byValue map[string]Option
	options []Option
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(nil)
	if err != nil {
		// Built-in entries are known-good.
		panic(err)
	}
	return c
}

// New returns the built-in catalog extended with extra entries. Every
// extra value must resolve to a location; duplicates override the label
// and abbreviation of the earlier entry while keeping its position.
func New(extra []Option) (*Catalog, error) {
	c := &Catalog{byValue: make(map[string]Option, len(builtin)+len(extra))}
	for _, opt := range builtin {
		c.add(opt)
	}
	for _, opt := range extra {
		opt.Value = strings.TrimSpace(opt.Value)
		if _, err := tzconvert.Load(opt.Value); err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", opt.Value, err)
		}
		if opt.Label == "" {
			opt.Label = opt.Value
		}
		if opt.Abbr == "" {
			opt.Abbr = fallbackAbbr(opt.Value)
		}
		c.add(opt)
	}
	return c, nil
}

func (c *Catalog) add(opt Option) {
	if _, exists := c.byValue[opt.Value]; exists {
		for i := range c.options {
			if c.options[i].Value == opt.Value {
				c.options[i] = opt
			}
		}
	} else {
		c.options = append(c.options, opt)
	}
	c.byValue[opt.Value] = opt
}

// Options returns a copy of the catalog in display order.
func (c *Catalog) Options() []Option {
	out := make([]Option, len(c.options))
	copy(out, c.options)
	return out
}

// Lookup returns the catalog entry for an IANA identifier.
func (c *Catalog) Lookup(value string) (Option, bool) {
	opt, ok := c.byValue[value]
	return opt, ok
}

// Supported reports whether value is in the catalog.
func (c *Catalog) Supported(value string) bool {
	_, ok := c.byValue[value]
	return ok
}

// Validate returns an error wrapping ErrUnsupported when value is not in
// the catalog.
func (c *Catalog) Validate(value string) error {
	if !c.Supported(value) {
		return fmt.Errorf("%w: %q", ErrUnsupported, value)
	}
	return nil
}

// Abbr returns the short label for a timezone: the catalog abbreviation
// when known, otherwise the city part of the identifier.
func (c *Catalog) Abbr(value string) string {
	if opt, ok := c.byValue[value]; ok {
		return opt.Abbr
	}
	return fallbackAbbr(value)
}

// fallbackAbbr turns "America/Sao_Paulo" into "Sao Paulo". Only the first
// underscore is replaced, matching what the cards have always shown.
func fallbackAbbr(value string) string {
	parts := strings.Split(value, "/")
	if len(parts) < 2 || parts[1] == "" {
		return "UTC"
	}
	return strings.Replace(parts[1], "_", " ", 1)
}
