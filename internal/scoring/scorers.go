package scoring

import (
	"math"

	"github.com/strideware/fitmatch/internal/catalog"
	"github.com/strideware/fitmatch/internal/profile"
)

// Breakdown maps dimension name to its score for one candidate.
type Breakdown map[string]float64

// terrainCompat scores known cross-terrain pairs. Unlisted pairs fall back to
// a low 0.3 rather than zero so a sparse catalog still produces a ranking.
var terrainCompat = map[[2]string]float64{
	{catalog.TerrainRoad, catalog.TerrainTreadmill}: 0.9,
	{catalog.TerrainRoad, catalog.TerrainTrack}:     0.7,
	{catalog.TerrainRoad, catalog.TerrainTrail}:     0.4,
	{catalog.TerrainTrack, catalog.TerrainTrail}:    0.3,
}

// ScoreTerrain compares the user's stated terrain with the shoe's design
// terrain.
func ScoreTerrain(shoe *catalog.Shoe, user *profile.UserProfile) float64 {
	want := user.Prefs.Terrain
	have := shoe.Terrain

	if want == "" || have == "" {
		return 0.5
	}
	if want == catalog.TerrainMixed || have == catalog.TerrainMixed {
		return 0.8
	}
	if want == have {
		return 1.0
	}
	if v, ok := terrainCompat[[2]string{want, have}]; ok {
		return v
	}
	if v, ok := terrainCompat[[2]string{have, want}]; ok {
		return v
	}
	return 0.3
}

// ScorePronation matches the user's foot-roll tendency against the shoe's
// support classification (declared or inferred).
func ScorePronation(shoe *catalog.Shoe, user *profile.UserProfile) float64 {
	support := supportFor(shoe)

	switch user.Foot.Pronation {
	case profile.Overpronation:
		switch support {
		case catalog.SupportStability:
			return 1.0
		case catalog.SupportMotionControl:
			return 0.9
		default:
			// Neutral shoes give overpronators no guidance. Penalized hard
			// so stability models win the pronation dimension outright.
			return 0.3
		}
	case profile.Underpronation:
		switch support {
		case catalog.SupportNeutral:
			if isHighlyCushioned(shoe) {
				return 0.9
			}
			return 0.8
		case catalog.SupportStability:
			return 0.4
		default:
			return 0.2
		}
	default:
		switch support {
		case catalog.SupportNeutral:
			return 1.0
		case catalog.SupportStability:
			return 0.7
		default:
			return 0.4
		}
	}
}

// ScoreWidth rewards shoes offered in the user's preferred width.
func ScoreWidth(shoe *catalog.Shoe, user *profile.UserProfile) float64 {
	if len(shoe.WidthOptions) > 0 && shoe.HasWidthOption(user.Foot.Width) {
		return 1.0
	}
	return 0.6
}

// ScoreArch matches arch type against support and cushioning. Flat arches
// favor guided platforms, high arches favor cushioned neutral ones.
func ScoreArch(shoe *catalog.Shoe, user *profile.UserProfile) float64 {
	support := supportFor(shoe)

	switch user.Foot.Arch {
	case profile.ArchFlat:
		if support == catalog.SupportStability || support == catalog.SupportMotionControl {
			return 1.0
		}
		return 0.5
	case profile.ArchHigh:
		if support == catalog.SupportNeutral && isHighlyCushioned(shoe) {
			return 1.0
		}
		if support == catalog.SupportNeutral {
			return 0.8
		}
		return 0.6
	default:
		return 0.8
	}
}

// issueAdjustments holds per-issue multiplicative factors. Each entry returns
// the factor to apply for one flagged condition.
var issueAdjustments = map[string]func(*catalog.Shoe) float64{
	profile.IssueWideFeet: func(s *catalog.Shoe) float64 {
		if s.HasWidthOption(profile.WidthWide) {
			return 1.2
		}
		return 0.7
	},
	profile.IssueNarrowFeet: func(s *catalog.Shoe) float64 {
		if s.HasWidthOption(profile.WidthNarrow) {
			return 1.2
		}
		return 0.85
	},
	profile.IssuePlantarFasciitis: func(s *catalog.Shoe) float64 {
		if isHighlyCushioned(s) && s.DropMm >= highDropMm {
			return 1.15
		}
		return 0.8
	},
	profile.IssueShinSplints: func(s *catalog.Shoe) float64 {
		if isHighlyCushioned(s) {
			return 1.1
		}
		return 0.85
	},
	profile.IssueKneePain: func(s *catalog.Shoe) float64 {
		if cushionLevelFor(s) == CushionMax {
			return 1.1
		}
		return 0.85
	},
	profile.IssueAchillesTendinits: func(s *catalog.Shoe) float64 {
		switch {
		case s.DropMm >= highDropMm:
			return 1.1
		case s.DropMm > 0 && s.DropMm < lowDropMm:
			return 0.7
		default:
			return 1.0
		}
	},
}

// ScoreIssues starts at 1.0 and applies the per-issue adjustment factors,
// clamped to [0.1, 1.0]. Unknown issue flags are ignored.
func ScoreIssues(shoe *catalog.Shoe, user *profile.UserProfile) float64 {
	score := 1.0
	for _, issue := range user.Foot.Issues {
		if adjust, ok := issueAdjustments[issue]; ok {
			score *= adjust(shoe)
		}
	}
	return clamp(score, 0.1, 1.0)
}

// ScoreCushion rates how well the shoe's cushioning matches what the profile
// implies the user needs. Evidence is additive to a 0.5 base, clamped to
// [0.3, 1.0].
func ScoreCushion(shoe *catalog.Shoe, user *profile.UserProfile) float64 {
	level := cushionLevelFor(shoe)
	if level == "" {
		return 0.5
	}

	score := 0.5
	if wantsCushion(user) {
		switch level {
		case CushionMax:
			score += 0.5
		case CushionHigh:
			score += 0.35
		case CushionModerate:
			score += 0.1
		case CushionFirm:
			score -= 0.2
		}
	} else {
		switch level {
		case CushionModerate, CushionHigh:
			score += 0.3
		case CushionMax:
			score += 0.15
		case CushionFirm:
			score += 0.05
		}
	}
	return clamp(score, 0.3, 1.0)
}

func wantsCushion(user *profile.UserProfile) bool {
	for _, p := range user.Prefs.Priorities {
		if p == "cushion" || p == "comfort" {
			return true
		}
	}
	for _, d := range user.Prefs.Distances {
		if d == profile.DistanceMarathon || d == profile.DistanceUltra {
			return true
		}
	}
	return false
}

// ScorePriorities accumulates evidence for each stated priority on top of a
// 0.5 base, clamped to [0.2, 1.0]. Absent attributes simply contribute
// nothing.
func ScorePriorities(shoe *catalog.Shoe, user *profile.UserProfile) float64 {
	if len(user.Prefs.Priorities) == 0 {
		return 0.5
	}

	score := 0.5
	for _, p := range user.Prefs.Priorities {
		switch p {
		case "speed":
			if shoe.WeightOz > 0 && shoe.WeightOz < lightWeightOz {
				score += 0.25
			}
			if shoe.CarbonPlate || isRacingModel(shoe) {
				score += 0.15
			}
		case "cushion", "comfort":
			if isHighlyCushioned(shoe) {
				score += 0.25
			}
		case "stability":
			support := supportFor(shoe)
			if support == catalog.SupportStability || support == catalog.SupportMotionControl {
				score += 0.25
			}
		case "durability":
			if shoe.WeightOz >= 9.0 {
				score += 0.1
			}
		case "value":
			if price := currentPrice(shoe); price > 0 && price <= 120 {
				score += 0.2
			}
		case "long_runs":
			if shoe.HeelStackMm >= highCushionStack {
				score += 0.15
			}
			if shoe.Rocker {
				score += 0.1
			}
		}
	}
	return clamp(score, 0.2, 1.0)
}

// ScoreDistance rates distance suitability from weight, stack and rocker
// bands, additive to a 0.5 base, clamped to [0.2, 1.0].
func ScoreDistance(shoe *catalog.Shoe, user *profile.UserProfile) float64 {
	long := false
	short := false
	for _, d := range user.Prefs.Distances {
		switch d {
		case profile.DistanceMarathon, profile.DistanceUltra:
			long = true
		case profile.Distance5K:
			short = true
		}
	}

	score := 0.5
	if long {
		if shoe.HeelStackMm >= highCushionStack {
			score += 0.25
		}
		if shoe.Rocker {
			score += 0.1
		}
		if shoe.WeightOz > heavyWeightOz {
			score -= 0.1
		}
	}
	if short {
		if shoe.WeightOz > 0 && shoe.WeightOz < lightWeightOz {
			score += 0.2
		}
		if shoe.CarbonPlate {
			score += 0.1
		}
	}
	return clamp(score, 0.2, 1.0)
}

// budgetWindow returns the (min, max) price window for a budget band. A zero
// max means unbounded.
func budgetWindow(band string) (float64, float64, bool) {
	switch band {
	case profile.BudgetUnder100:
		return 0, 100, true
	case profile.Budget100To150:
		return 100, 150, true
	case profile.Budget150To200:
		return 150, 200, true
	case profile.Budget150Plus:
		return 150, 0, true
	default:
		return 0, 0, false
	}
}

// ScoreBudget applies the band window schedule: inside 1.0, below 0.95, above
// penalized by how far over the window the price lands.
func ScoreBudget(shoe *catalog.Shoe, user *profile.UserProfile) float64 {
	min, max, ok := budgetWindow(user.Prefs.Budget)
	if !ok {
		return 1.0
	}

	price := currentPrice(shoe)
	if price <= 0 {
		// Unknown price cannot be penalized.
		return 1.0
	}

	if price < min {
		return 0.95
	}
	if max == 0 || price <= max {
		return 1.0
	}

	overPercent := (price - max) / max
	switch {
	case overPercent > 0.5:
		return 0.1
	case overPercent > 0.25:
		return 0.2
	default:
		return math.Max(0.3, 0.8-2*overPercent)
	}
}

// ScorePosition, ScoreCourt and ScoreCut are stubbed at neutral 0.5 while the
// basketball catalog lacks position/court/cut attributes. Intentionally
// preserved rather than guessed at.
func ScorePosition(*catalog.Shoe, *profile.UserProfile) float64 { return 0.5 }

func ScoreCourt(*catalog.Shoe, *profile.UserProfile) float64 { return 0.5 }

func ScoreCut(*catalog.Shoe, *profile.UserProfile) float64 { return 0.5 }

// ScoreSentiment is a constant placeholder until review-derived sentiment
// lands in the catalog.
func ScoreSentiment(*catalog.Shoe, *profile.UserProfile) float64 { return 0.5 }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
