package catalog

import (
	"errors"
	"testing"
	_ "time/tzdata"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	opts := c.Options()
	if len(opts) != 7 {
		t.Fatalf("len(Options()) = %d, want 7", len(opts))
	}
	if opts[0].Value != "America/Los_Angeles" || opts[6].Value != "Australia/Sydney" {
		t.Errorf("unexpected order: first=%s last=%s", opts[0].Value, opts[6].Value)
	}

	// Options returns a copy.
	opts[0].Label = "changed"
	if got, _ := c.Lookup("America/Los_Angeles"); got.Label == "changed" {
		t.Error("Options() exposed internal slice")
	}
}

func TestValidate(t *testing.T) {
	c := Default()
	if err := c.Validate("Asia/Kolkata"); err != nil {
		t.Errorf("Validate(Asia/Kolkata) = %v", err)
	}
	if err := c.Validate("America/Chicago"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Validate(America/Chicago) = %v, want ErrUnsupported", err)
	}
}

func TestAbbr(t *testing.T) {
	c := Default()
	tests := []struct {
		value string
		want  string
	}{
		{"America/New_York", "EST"},
		{"Australia/Sydney", "AEST"},
		{"America/Sao_Paulo", "Sao Paulo"},
		{"America/Port_of_Spain", "Port of_Spain"},
		{"America/Argentina/Buenos_Aires", "Argentina"},
		{"UTC", "UTC"},
		{"", "UTC"},
	}
	for _, tt := range tests {
		if got := c.Abbr(tt.value); got != tt.want {
			t.Errorf("Abbr(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestNewWithExtra(t *testing.T) {
	c, err := New([]Option{
		{Value: "America/Chicago", Label: "Central Time (CST/CDT)", Abbr: "CST"},
		{Value: "Asia/Singapore"},
		{Value: "Europe/London", Label: "UK", Abbr: "UK"},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if !c.Supported("America/Chicago") {
		t.Error("extra entry not supported")
	}
	if got := c.Abbr("Asia/Singapore"); got != "Singapore" {
		t.Errorf("Abbr(Asia/Singapore) = %q, want Singapore", got)
	}
	if got, _ := c.Lookup("Asia/Singapore"); got.Label != "Asia/Singapore" {
		t.Errorf("default label = %q", got.Label)
	}

	opts := c.Options()
	if len(opts) != 9 {
		t.Fatalf("len(Options()) = %d, want 9", len(opts))
	}
	// Overridden entry keeps its built-in position.
	if opts[2].Value != "Europe/London" || opts[2].Abbr != "UK" {
		t.Errorf("opts[2] = %+v, want overridden Europe/London", opts[2])
	}
}

func TestNewRejectsUnknownZone(t *testing.T) {
	if _, err := New([]Option{{Value: "Atlantis/Capital"}}); err == nil {
		t.Error("New() accepted an unresolvable timezone")
	}
}
