package sentiment

import (
	"math"
	"testing"
	"time"
)

func TestRecencyWeight(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	if w := RecencyWeight(now, now); w != 1.0 {
		t.Errorf("fresh article weight = %.3f, want 1.0", w)
	}

	dayOld := RecencyWeight(now.Add(-24*time.Hour), now)
	if math.Abs(dayOld-math.Exp(-1)) > 1e-9 {
		t.Errorf("24h weight = %.4f, want e^-1", dayOld)
	}

	if w := RecencyWeight(now.Add(-30*24*time.Hour), now); w != 0.1 {
		t.Errorf("month-old weight = %.3f, want floor 0.1", w)
	}

	// Future timestamps clamp to full weight rather than exceeding it.
	if w := RecencyWeight(now.Add(2*time.Hour), now); w != 1.0 {
		t.Errorf("future article weight = %.3f, want 1.0", w)
	}

	if w := RecencyWeight(time.Time{}, now); w != 0.1 {
		t.Errorf("zero timestamp weight = %.3f, want 0.1", w)
	}
}

func TestSpecificityWeight(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"Company announces reorganization", 0.5},
		{"Revenue rose 12% on the year", 0.8}, // percent + digit
		{"Backlog hit $4 billion", 0.8},       // currency + digit
		{"Shares up 3% to $150", 1.0},         // all three, capped
		{"Top 5 stories today", 0.6},          // digit only
	}
	for _, tc := range cases {
		if got := SpecificityWeight(tc.text); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("SpecificityWeight(%q) = %.2f, want %.2f", tc.text, got, tc.want)
		}
	}
}

func TestImpactWeight(t *testing.T) {
	cases := []struct {
		text     string
		weight   float64
		category string
	}{
		{"Quarterly earnings beat expectations", 1.0, "earnings"},
		{"Regulators open antitrust probe", 1.0, "regulatory"},
		{"Analyst upgrade lifts the shares", 0.8, "analyst"},
		{"Company to unveil new device next week", 0.8, "product"},
		{"Deliveries slipped in August", 0.6, "sales"},
		{"CEO to resign at year end", 0.6, "leadership"},
		{"Stock drifts in quiet session", 0.3, "general"},
	}
	for _, tc := range cases {
		weight, category := ImpactWeight(tc.text)
		if weight != tc.weight || category != tc.category {
			t.Errorf("ImpactWeight(%q) = (%.1f, %q), want (%.1f, %q)",
				tc.text, weight, category, tc.weight, tc.category)
		}
	}
}

func TestImpactWeightHighestCategoryWins(t *testing.T) {
	// Both earnings and analyst vocabulary present; earnings outranks.
	weight, category := ImpactWeight("Analyst reacts to the earnings report")
	if category != "earnings" || weight != 1.0 {
		t.Errorf("got (%.1f, %q), want (1.0, earnings)", weight, category)
	}
}

func TestPolarity(t *testing.T) {
	pos := Polarity("Strong growth and excellent results")
	if pos.Score <= 0 {
		t.Errorf("positive text score = %.1f, want > 0", pos.Score)
	}
	if len(pos.PositiveWords) == 0 {
		t.Error("expected positive words recorded")
	}

	neg := Polarity("Crisis deepens amid bankruptcy fears")
	if neg.Score >= 0 {
		t.Errorf("negative text score = %.1f, want < 0", neg.Score)
	}

	flat := Polarity("The meeting is scheduled for Tuesday")
	if flat.Score != 0 || flat.PositiveWords != nil || flat.NegativeWords != nil {
		t.Errorf("neutral text = %+v, want zero result", flat)
	}
}

func TestMatchTermsWholeWords(t *testing.T) {
	// "surges" matches; "outperformance" must not match "outperform".
	got := matchTerms("Stock surges on outperformance hopes", positiveTerms)
	if len(got) != 1 || got[0] != "surges" {
		t.Errorf("matchTerms = %v, want [surges]", got)
	}
}
