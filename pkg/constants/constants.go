// Package constants defines shared constants for the meetsync application.
package constants

import "time"

// MinutesPerDay is the length of the sweep window and the slider range.
const MinutesPerDay = 24 * 60

// SampleStepMinutes is the granularity of the optimal meeting time search.
// 30 minutes gives 48 samples per day, which covers every half-hour offset
// zone (India, Newfoundland) without needing a finer scan.
const SampleStepMinutes = 30

// SamplesPerDay is the number of candidate slots in a sweep.
const SamplesPerDay = MinutesPerDay / SampleStepMinutes

// DefaultOptimalMinute is returned when no candidate beats a score of zero,
// which only happens when no timezone is enabled (9:00 AM).
const DefaultOptimalMinute = 9 * 60

// SliderStepMinutes is the increment used by the interactive time slider.
const SliderStepMinutes = 15

// RefreshInterval is how often a following session re-reads the clock.
const RefreshInterval = time.Minute
