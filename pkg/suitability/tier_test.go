package suitability

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		hour int
		want Tier
	}{
		{0, Poor},
		{3, Poor},
		{5, Poor},
		{6, Fair},
		{7, Good},
		{8, Good},
		{9, Excellent},
		{12, Excellent},
		{17, Excellent},
		{18, Good},
		{20, Good},
		{21, Fair},
		{22, Fair},
		{23, Poor},
	}

	for _, tt := range tests {
		if got := Classify(tt.hour); got != tt.want {
			t.Errorf("Classify(%d) = %v, want %v", tt.hour, got, tt.want)
		}
	}
}

// Tiers never improve when moving away from the 9-17 window in either direction.
func TestClassifyWorsensAwayFromWorkday(t *testing.T) {
	for hour := 9; hour > 0; hour-- {
		if Classify(hour-1) > Classify(hour) {
			t.Errorf("Classify(%d)=%v is better than Classify(%d)=%v", hour-1, Classify(hour-1), hour, Classify(hour))
		}
	}
	for hour := 17; hour < 23; hour++ {
		if Classify(hour+1) > Classify(hour) {
			t.Errorf("Classify(%d)=%v is better than Classify(%d)=%v", hour+1, Classify(hour+1), hour, Classify(hour))
		}
	}
}

func TestClassifyIsTotal(t *testing.T) {
	seen := map[Tier]int{}
	for hour := range 24 {
		tier := Classify(hour)
		if tier < Poor || tier > Excellent {
			t.Fatalf("Classify(%d) returned out-of-range tier %d", hour, tier)
		}
		seen[tier]++
	}

	// 9 excellent hours, 5 good, 3 fair, 7 poor.
	want := map[Tier]int{Excellent: 9, Good: 5, Fair: 3, Poor: 7}
	for tier, n := range want {
		if seen[tier] != n {
			t.Errorf("%v hours = %d, want %d", tier, seen[tier], n)
		}
	}
}

func TestWeight(t *testing.T) {
	tests := []struct {
		tier Tier
		want int
	}{
		{Excellent, 4},
		{Good, 3},
		{Fair, 2},
		{Poor, 1},
	}
	for _, tt := range tests {
		if got := tt.tier.Weight(); got != tt.want {
			t.Errorf("%v.Weight() = %d, want %d", tt.tier, got, tt.want)
		}
	}
	if Excellent.Weight() != MaxWeight {
		t.Errorf("MaxWeight = %d, Excellent weighs %d", MaxWeight, Excellent.Weight())
	}
}

func TestAllTiersBestFirst(t *testing.T) {
	tiers := AllTiers()
	for i := 1; i < len(tiers); i++ {
		if tiers[i].Weight() >= tiers[i-1].Weight() {
			t.Errorf("AllTiers()[%d]=%v not worse than %v", i, tiers[i], tiers[i-1])
		}
	}
}

func TestLabels(t *testing.T) {
	if got := Fair.Label(); got != "Early/Late" {
		t.Errorf("Fair.Label() = %q", got)
	}
	if got := Excellent.Short(); got != "Perfect" {
		t.Errorf("Excellent.Short() = %q", got)
	}
	if got := Poor.Label(); got != "Off Hours" {
		t.Errorf("Poor.Label() = %q", got)
	}
}
