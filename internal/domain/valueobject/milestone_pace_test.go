package valueobject

import "testing"

func TestMilestonePace_MilestoneCount(t *testing.T) {
	intPtr := func(n int) *int { return &n }

	tests := []struct {
		name     string
		pace     MilestonePace
		custom   *int
		expected int
	}{
		{name: "aggressive", pace: MilestonePaceAggressive, expected: 3},
		{name: "moderate", pace: MilestonePaceModerate, expected: 4},
		{name: "relaxed", pace: MilestonePaceRelaxed, expected: 5},
		{name: "custom count wins", pace: MilestonePaceAggressive, custom: intPtr(7), expected: 7},
		{name: "custom count clamped low", pace: MilestonePaceModerate, custom: intPtr(1), expected: 2},
		{name: "custom count clamped high", pace: MilestonePaceModerate, custom: intPtr(25), expected: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pace.MilestoneCount(tt.custom); got != tt.expected {
				t.Errorf("expected %d milestones, got %d", tt.expected, got)
			}
		})
	}
}
