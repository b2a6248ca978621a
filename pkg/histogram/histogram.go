// Package histogram provides visualization of meeting suitability across a day.
package histogram

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/codeGROOVE-dev/meetsync/pkg/constants"
	"github.com/codeGROOVE-dev/meetsync/pkg/meeting"
	"github.com/codeGROOVE-dev/meetsync/pkg/suitability"
	"github.com/codeGROOVE-dev/meetsync/pkg/tzconvert"
)

// barWidth is the length of a 100% bar.
const barWidth = 20

// Strip is a day of half-hour samples with the markers to draw on it.
type Strip struct {
	Samples  []meeting.Sample
	Label    string // ambient timezone shown in the header
	Optimal  int    // minute of day of the optimal slot
	Selected int    // minute of day of the selected instant, -1 for none
	Is24Hour bool
}

// severityColor returns the color for a rating severity.
func severityColor(sev suitability.Severity) *color.Color {
	switch sev {
	case suitability.SeverityExcellent:
		return color.New(color.FgGreen)
	case suitability.SeverityGood:
		return color.New(color.FgBlue)
	case suitability.SeverityFair:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

// TierColor returns the color used for a single zone's tier badge.
func TierColor(tier suitability.Tier) *color.Color {
	return severityColor(tier.Severity())
}

// RatingColor returns the color used for an aggregate rating badge.
func RatingColor(r suitability.Rating) *color.Color {
	return severityColor(r.Severity)
}

// slotOf returns the start minute of the half-hour slot containing minute.
func slotOf(minute int) int {
	return minute - minute%constants.SampleStepMinutes
}

// Generate creates a visual representation of suitability across the day.
func Generate(strip *Strip) string {
	var output strings.Builder

	header := "📊 Meeting Suitability (30-minute resolution)"
	if strip.Label != "" {
		header += " · " + strip.Label
	}
	output.WriteString(header + "\n")
	output.WriteString(strings.Repeat("─", 50) + "\n")

	if len(strip.Samples) == 0 {
		return output.String() + "No samples available\n"
	}

	maxTotal := 0
	for _, s := range strip.Samples {
		if s.Total > maxTotal {
			maxTotal = s.Total
		}
	}
	if maxTotal == 0 {
		return output.String() + "No timezones enabled\n"
	}

	optimalColor := color.New(color.FgYellow, color.Bold)
	selectedColor := color.New(color.FgCyan, color.Bold)
	selectedSlot := -1
	if strip.Selected >= 0 {
		selectedSlot = slotOf(strip.Selected)
	}

	// Time labels are padded to the widest form ("12:30 PM").
	width := 5
	if !strip.Is24Hour {
		width = 8
	}

	for _, s := range strip.Samples {
		line := fmt.Sprintf("%*s ", width, tzconvert.FormatMinute(s.Minute, strip.Is24Hour))

		// Marker column, single character + space.
		switch {
		case s.Minute == strip.Optimal:
			line += optimalColor.Sprint("★") + " "
		case s.Minute == selectedSlot:
			line += selectedColor.Sprint("▶") + " "
		default:
			line += "  "
		}

		line += fmt.Sprintf("(%3d%%) ", s.Percentage)

		rating := suitability.Rate(s.Percentage)
		barLength := s.Percentage * barWidth / 100
		if barLength == 0 && s.Total > 0 {
			barLength = 1
		}
		line += severityColor(rating.Severity).Sprint(strings.Repeat("█", barLength))

		if s.Minute == selectedSlot && s.Minute == strip.Optimal {
			line += " " + selectedColor.Sprint("◀ selected")
		}

		output.WriteString(line + "\n")
	}

	output.WriteString(strings.Repeat("─", 50) + "\n")
	output.WriteString(fmt.Sprintf("%s optimal %s", optimalColor.Sprint("★"), tzconvert.FormatMinute(strip.Optimal, strip.Is24Hour)))
	if strip.Selected >= 0 {
		output.WriteString(fmt.Sprintf("   %s selected %s", selectedColor.Sprint("▶"), tzconvert.FormatMinute(strip.Selected, strip.Is24Hour)))
	}
	output.WriteString("\n")

	return output.String()
}
