package scoring

import (
	"github.com/strideware/fitmatch/internal/catalog"
	"github.com/strideware/fitmatch/internal/profile"
)

// ScoreFunc computes one dimension's score in [0, 1].
type ScoreFunc func(*catalog.Shoe, *profile.UserProfile) float64

// Dimension binds a dimension name to its scorer.
type Dimension struct {
	Name  string
	Score ScoreFunc
}

// Strategy lists the dimensions active for one product category. It is
// selected once per request; scorers never branch on the category themselves.
type Strategy interface {
	Name() string
	Dimensions() []Dimension
}

type runningStrategy struct{}

func (runningStrategy) Name() string { return profile.CategoryRunning }

func (runningStrategy) Dimensions() []Dimension {
	return []Dimension{
		{DimTerrain, ScoreTerrain},
		{DimPronation, ScorePronation},
		{DimWidth, ScoreWidth},
		{DimArch, ScoreArch},
		{DimIssues, ScoreIssues},
		{DimCushion, ScoreCushion},
		{DimPriorities, ScorePriorities},
		{DimDistance, ScoreDistance},
		{DimBudget, ScoreBudget},
		{DimSentiment, ScoreSentiment},
	}
}

type basketballStrategy struct{}

func (basketballStrategy) Name() string { return profile.CategoryBasketball }

func (basketballStrategy) Dimensions() []Dimension {
	return []Dimension{
		{DimWidth, ScoreWidth},
		{DimArch, ScoreArch},
		{DimIssues, ScoreIssues},
		{DimCushion, ScoreCushion},
		{DimPriorities, ScorePriorities},
		{DimBudget, ScoreBudget},
		{DimPosition, ScorePosition},
		{DimCourt, ScoreCourt},
		{DimCut, ScoreCut},
		{DimSentiment, ScoreSentiment},
	}
}

// StrategyFor returns the scoring strategy for a category, defaulting to
// running for unknown tags.
func StrategyFor(category string) Strategy {
	if category == profile.CategoryBasketball {
		return basketballStrategy{}
	}
	return runningStrategy{}
}
