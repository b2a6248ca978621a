package suitability

import "testing"

func TestRate(t *testing.T) {
	tests := []struct {
		name       string
		percentage int
		wantLabel  string
		wantSev    Severity
	}{
		{"perfect", 100, "Excellent Meeting Time", SeverityExcellent},
		{"excellent boundary", 90, "Excellent Meeting Time", SeverityExcellent},
		{"just below excellent", 89, "Good Meeting Time", SeverityGood},
		{"good boundary", 75, "Good Meeting Time", SeverityGood},
		{"just below good", 74, "Fair Meeting Time", SeverityFair},
		{"fair boundary", 50, "Fair Meeting Time", SeverityFair},
		{"just below fair", 49, "Poor Meeting Time", SeverityPoor},
		{"no signal", 0, "Poor Meeting Time", SeverityPoor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rate(tt.percentage)
			if got.Label != tt.wantLabel || got.Severity != tt.wantSev {
				t.Errorf("Rate(%d) = %+v, want {%s %v}", tt.percentage, got, tt.wantLabel, tt.wantSev)
			}
		})
	}
}

func TestSeverityIcon(t *testing.T) {
	if SeverityExcellent.Icon() != "🟢" || SeverityPoor.Icon() != "🔴" {
		t.Errorf("unexpected icons: %s %s", SeverityExcellent.Icon(), SeverityPoor.Icon())
	}
	if Good.Severity() != SeverityGood {
		t.Errorf("Good.Severity() = %v", Good.Severity())
	}
}
