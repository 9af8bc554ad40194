package scoring

import (
	"strings"

	"github.com/strideware/fitmatch/internal/catalog"
)

// Numeric bands used when the catalog lacks explicit attributes. These are
// deliberately low-confidence fallbacks for sparse catalog data; once data
// completeness improves they can be replaced by declared attributes.
const (
	lightWeightOz    = 7.5
	heavyWeightOz    = 10.5
	maxCushionStack  = 35.0
	highCushionStack = 30.0
	firmStack        = 25.0
	highDropMm       = 8.0
	lowDropMm        = 4.0
)

// stabilityModelTerms are name fragments of known stability or motion-control
// lines, used only when the catalog does not declare a support classification.
var stabilityModelTerms = []string{
	"gts",
	"guide",
	"structure",
	"kayano",
	"adrenaline",
	"arahi",
	"tempus",
	"wave inspire",
	"vongo",
}

// racingModelTerms identify race-day lines, which are treated as neutral and
// count as speed evidence for the priorities dimension.
var racingModelTerms = []string{
	"vaporfly",
	"alphafly",
	"metaspeed",
	"takumi",
	"streakfly",
	"endorphin pro",
	"rocket x",
	"deviate nitro elite",
}

// supportFor returns the declared support classification, falling back to the
// model-name lookup tables above.
func supportFor(shoe *catalog.Shoe) string {
	if shoe.Support != "" {
		return shoe.Support
	}

	name := strings.ToLower(shoe.FullName())
	for _, term := range stabilityModelTerms {
		if strings.Contains(name, term) {
			return catalog.SupportStability
		}
	}
	return catalog.SupportNeutral
}

func isRacingModel(shoe *catalog.Shoe) bool {
	name := strings.ToLower(shoe.FullName())
	for _, term := range racingModelTerms {
		if strings.Contains(name, term) {
			return true
		}
	}
	return false
}

// Cushion levels the catalog may declare.
const (
	CushionFirm     = "firm"
	CushionModerate = "moderate"
	CushionHigh     = "high"
	CushionMax      = "max"
)

// cushionLevelFor returns the declared cushion level, inferring one from the
// heel stack band when absent. Empty when no signal exists at all.
func cushionLevelFor(shoe *catalog.Shoe) string {
	if shoe.CushionLevel != "" {
		return shoe.CushionLevel
	}

	switch {
	case shoe.HeelStackMm >= maxCushionStack:
		return CushionMax
	case shoe.HeelStackMm >= highCushionStack:
		return CushionHigh
	case shoe.HeelStackMm > 0 && shoe.HeelStackMm < firmStack:
		return CushionFirm
	case shoe.HeelStackMm > 0:
		return CushionModerate
	default:
		return ""
	}
}

func isHighlyCushioned(shoe *catalog.Shoe) bool {
	level := cushionLevelFor(shoe)
	return level == CushionHigh || level == CushionMax
}

// currentPrice returns the cheapest in-stock offer price, falling back to
// MSRP. Zero means the price is unknown.
func currentPrice(shoe *catalog.Shoe) float64 {
	best := 0.0
	for _, offer := range shoe.InStockOffers() {
		p := offer.EffectivePrice()
		if p <= 0 {
			continue
		}
		if best == 0 || p < best {
			best = p
		}
	}
	if best == 0 {
		return shoe.MSRP
	}
	return best
}
