package valueobject

// MilestonePace controls how many milestones are generated for a goal.
type MilestonePace string

const (
	MilestonePaceAggressive MilestonePace = "aggressive"
	MilestonePaceModerate   MilestonePace = "moderate"
	MilestonePaceRelaxed    MilestonePace = "relaxed"
)

const (
	// MinMilestoneCount is the lower bound for a custom milestone count.
	MinMilestoneCount = 2
	// MaxMilestoneCount is the upper bound for a custom milestone count.
	MaxMilestoneCount = 10
)

// IsValid reports whether the pace is one of the known values.
func (p MilestonePace) IsValid() bool {
	switch p {
	case MilestonePaceAggressive, MilestonePaceModerate, MilestonePaceRelaxed:
		return true
	}
	return false
}

// MilestoneCount returns the number of milestones for the pace.
// A non-nil custom count wins and is clamped to [MinMilestoneCount, MaxMilestoneCount].
func (p MilestonePace) MilestoneCount(custom *int) int {
	if custom != nil {
		n := *custom
		if n < MinMilestoneCount {
			return MinMilestoneCount
		}
		if n > MaxMilestoneCount {
			return MaxMilestoneCount
		}
		return n
	}

	switch p {
	case MilestonePaceAggressive:
		return 3
	case MilestonePaceRelaxed:
		return 5
	default:
		return 4
	}
}
