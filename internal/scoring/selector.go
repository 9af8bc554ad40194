package scoring

import (
	"sort"

	"go.uber.org/zap"

	"github.com/strideware/fitmatch/internal/catalog"
	"github.com/strideware/fitmatch/internal/profile"
)

// RefinementPoolSize is how many heuristic leaders are handed to the
// refinement overlay.
const RefinementPoolSize = 10

// Scored pairs a candidate with its final score and per-dimension breakdown.
type Scored struct {
	Shoe      *catalog.Shoe
	Score     float64
	Breakdown Breakdown
}

// Selector filters a catalog snapshot and scores every surviving candidate.
// It holds no mutable state beyond its configuration, so one instance can
// serve concurrent requests over shared read-only snapshots.
type Selector struct {
	weights Weights
	filters []Filter
	logger  *zap.Logger
}

func NewSelector(weights Weights, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{
		weights: weights,
		filters: DefaultFilters(),
		logger:  logger,
	}
}

// Weights exposes the injected weight table for audit snapshots.
func (s *Selector) Weights() Weights { return s.weights }

// Select filters and scores the snapshot, returning candidates sorted by
// score descending. Ties break on shoe ID ascending so repeated runs over the
// same snapshot produce identical orderings.
func (s *Selector) Select(user *profile.UserProfile, snapshot *catalog.Shoes) []Scored {
	strategy := StrategyFor(user.Category)

	pool := RunFilters(s.filters, user, snapshot, s.logger)
	if pool.Len() == 0 {
		return nil
	}

	scored := make([]Scored, 0, pool.Len())
	for _, shoe := range pool.Items {
		breakdown := make(Breakdown)
		for _, dim := range strategy.Dimensions() {
			breakdown[dim.Name] = dim.Score(shoe, user)
		}
		scored = append(scored, Scored{
			Shoe:      shoe,
			Score:     Combine(breakdown, s.weights),
			Breakdown: breakdown,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Shoe.ID < scored[j].Shoe.ID
	})

	s.logger.Debug("candidates scored",
		zap.String("strategy", strategy.Name()),
		zap.Int("count", len(scored)),
	)

	return scored
}

// TopN returns the first n scored candidates.
func TopN(scored []Scored, n int) []Scored {
	if n <= 0 || len(scored) <= n {
		return scored
	}
	return scored[:n]
}
