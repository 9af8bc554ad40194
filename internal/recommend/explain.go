package recommend

import (
	"fmt"
	"strings"

	"github.com/strideware/fitmatch/internal/catalog"
	"github.com/strideware/fitmatch/internal/profile"
)

// FitNotes is the structured companion to the reasoning sentence.
type FitNotes struct {
	SizingHint     string   `json:"sizing_hint,omitempty"`
	WidthHint      string   `json:"width_hint,omitempty"`
	Highlights     []string `json:"highlights,omitempty"`
	Considerations []string `json:"considerations,omitempty"`
}

// Spec bands for explanation text. Kept separate from the scoring bands so
// wording thresholds can drift without touching scores.
const (
	lightWeightOz   = 7.5
	heavyWeightOz   = 10.5
	maxCushionStack = 35.0
	lowDropMm       = 4.0
	highDropMm      = 10.0
)

// BuildReasoning derives a short reasoning sentence from the shoe's specs and
// the user profile, using at most two reason fragments.
func BuildReasoning(shoe *catalog.Shoe, user *profile.UserProfile) string {
	reasons := reasonFragments(shoe, user)

	switch len(reasons) {
	case 0:
		return fmt.Sprintf("The %s is a well-rounded pick for your profile.", shoe.FullName())
	case 1:
		return fmt.Sprintf("The %s %s.", shoe.FullName(), reasons[0])
	default:
		return fmt.Sprintf("The %s %s and %s.", shoe.FullName(), reasons[0], reasons[1])
	}
}

// reasonFragments collects up to two fragments in priority order: explicit
// numeric specs, then support/category, then terrain, then width options,
// with a price fallback only when fewer than two reasons were found.
func reasonFragments(shoe *catalog.Shoe, user *profile.UserProfile) []string {
	var reasons []string
	add := func(r string) bool {
		reasons = append(reasons, r)
		return len(reasons) >= 2
	}

	if shoe.WeightOz > 0 && shoe.WeightOz < lightWeightOz {
		if add(fmt.Sprintf("comes in light at %.1f oz", shoe.WeightOz)) {
			return reasons
		}
	}
	if shoe.HeelStackMm >= maxCushionStack {
		if add(fmt.Sprintf("stacks a plush %.0f mm of foam underfoot", shoe.HeelStackMm)) {
			return reasons
		}
	}
	if shoe.DropMm > 0 && shoe.DropMm < lowDropMm {
		if add(fmt.Sprintf("runs a low %.0f mm drop for a more natural stride", shoe.DropMm)) {
			return reasons
		}
	}

	switch shoe.Support {
	case catalog.SupportStability:
		if user.Foot.Pronation == profile.Overpronation {
			if add("offers the stability platform your overpronation calls for") {
				return reasons
			}
		} else if add("offers a stability platform with guided support") {
			return reasons
		}
	case catalog.SupportMotionControl:
		if add("delivers maximum motion control") {
			return reasons
		}
	}

	if shoe.Terrain != "" && shoe.Terrain == user.Prefs.Terrain {
		if add(fmt.Sprintf("is built specifically for %s running", shoe.Terrain)) {
			return reasons
		}
	}

	if n := len(shoe.WidthOptions); n > 1 {
		if add(fmt.Sprintf("comes in %d width options", n)) {
			return reasons
		}
	}

	// Price-based fallback only when the specs produced too little to say.
	if len(reasons) < 2 && shoe.MSRP > 0 {
		reasons = append(reasons, fmt.Sprintf("lands at an accessible $%.0f", shoe.MSRP))
	}

	if len(reasons) > 2 {
		reasons = reasons[:2]
	}
	return reasons
}

// BuildFitNotes derives sizing and fit guidance from the shoe's attributes
// and the user's foot profile.
func BuildFitNotes(shoe *catalog.Shoe, user *profile.UserProfile) FitNotes {
	notes := FitNotes{SizingHint: "true to size"}

	switch user.Foot.Width {
	case profile.WidthWide:
		if shoe.HasWidthOption(profile.WidthWide) {
			notes.WidthHint = "available in wide; order your usual size in the wide fit"
		} else {
			notes.WidthHint = "standard fit only; wide-footed runners may want to size up half"
		}
	case profile.WidthNarrow:
		if shoe.HasWidthOption(profile.WidthNarrow) {
			notes.WidthHint = "available in narrow for a locked-down fit"
		} else {
			notes.WidthHint = "standard fit; narrow feet may need tighter lacing"
		}
	}

	if shoe.CarbonPlate {
		notes.Highlights = append(notes.Highlights, "carbon plate propulsion")
	}
	if shoe.Rocker {
		notes.Highlights = append(notes.Highlights, "rocker geometry for smooth transitions")
	}
	if shoe.HeelStackMm >= maxCushionStack || shoe.CushionLevel == "max" {
		notes.Highlights = append(notes.Highlights, "max cushioning")
	}
	notes.Highlights = append(notes.Highlights, shoe.KeyFeatures...)
	if shoe.WeightOz > 0 && shoe.WeightOz < lightWeightOz {
		notes.Highlights = append(notes.Highlights, fmt.Sprintf("light weight (%.1f oz)", shoe.WeightOz))
	}

	if shoe.WeightOz > heavyWeightOz {
		notes.Considerations = append(notes.Considerations, fmt.Sprintf("on the heavier side at %.1f oz", shoe.WeightOz))
	}
	if shoe.DropMm > 0 && shoe.DropMm < lowDropMm {
		notes.Considerations = append(notes.Considerations,
			fmt.Sprintf("low %.0f mm drop loads the calves more than traditional trainers", shoe.DropMm))
	}

	return notes
}

// combineReasoning prefers provider reasoning when the overlay produced one
// for this shoe, falling back to the heuristic sentence.
func combineReasoning(shoe *catalog.Shoe, user *profile.UserProfile, outcome Outcome) string {
	if outcome.Applied {
		if reason := strings.TrimSpace(outcome.Reasonings[shoe.ID]); reason != "" {
			return reason
		}
	}
	return BuildReasoning(shoe, user)
}
