package sim

// Rank is the banded grade for a final score.
type Rank string

const (
	RankGold             Rank = "GOLD"
	RankSilver           Rank = "SILVER"
	RankBronze           Rank = "BRONZE"
	RankNeedsImprovement Rank = "NEEDS IMPROVEMENT"
)

// Upper bounds (exclusive) of the rank bands.
const (
	goldBelow   = 1000
	silverBelow = 2000
	bronzeBelow = 3000
)

// Score is the total cost so far. Lower is better; it never decreases.
func Score(s *State) int { return s.TotalCost }

// RankFor maps a score onto half-open bands:
// [0,1000) GOLD, [1000,2000) SILVER, [2000,3000) BRONZE, [3000,∞) NEEDS IMPROVEMENT.
func RankFor(score int) Rank {
	switch {
	case score < goldBelow:
		return RankGold
	case score < silverBelow:
		return RankSilver
	case score < bronzeBelow:
		return RankBronze
	default:
		return RankNeedsImprovement
	}
}
