package recommend

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/strideware/fitmatch/internal/catalog"
	"github.com/strideware/fitmatch/internal/profile"
	"github.com/strideware/fitmatch/internal/scoring"
)

// AlgorithmVersion tags every persisted recommendation so later review can
// tell which scoring generation produced it.
const AlgorithmVersion = "fitmatch-v2"

// Store is the persistence boundary for recommendation audit records.
type Store interface {
	SaveRecommendation(ctx context.Context, rec *catalog.RecommendationRecord) error
}

// Engine runs one recommendation request end to end: profile extraction,
// heuristic selection, optional refinement, explanation and assembly. It
// holds only immutable configuration, so a single instance serves concurrent
// requests over shared read-only snapshots.
type Engine struct {
	selector *scoring.Selector
	overlay  *Overlay
	store    Store
	logger   *zap.Logger
}

// NewEngine wires the engine. store may be nil when auditing is not needed
// (tests, dry runs).
func NewEngine(selector *scoring.Selector, overlay *Overlay, store Store, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		selector: selector,
		overlay:  overlay,
		store:    store,
		logger:   logger,
	}
}

// Recommend produces the ranked short-list for one quiz submission. An empty
// candidate pool yields an empty result, not an error; provider trouble is
// absorbed into the outcome.
func (e *Engine) Recommend(ctx context.Context, category string, answers map[string]any, snapshot *catalog.Shoes) (*Result, Outcome, error) {
	user := profile.Extract(category, answers)

	e.logger.Info("recommendation request",
		zap.String("category", user.Category),
		zap.String("terrain", user.Prefs.Terrain),
		zap.String("budget", user.Prefs.Budget),
		zap.Int("catalog_size", snapshot.Len()),
	)

	scored := e.selector.Select(user, snapshot)
	if len(scored) == 0 {
		e.logger.Info("no candidates after filtering")
		return &Result{Items: []RankedItem{}, NotRecommended: []DisqualifiedItem{}}, Outcome{FallbackReason: "empty candidate pool"}, nil
	}

	shortList := scoring.TopN(scored, scoring.RefinementPoolSize)
	refined, outcome := e.overlay.Refine(ctx, user, shortList)

	result := Assemble(refined, user, outcome)

	e.logger.Info("recommendation assembled",
		zap.Int("candidates", len(scored)),
		zap.Int("returned", len(result.Items)),
		zap.Bool("refinement_applied", outcome.Applied),
	)

	if err := e.persist(ctx, result); err != nil {
		// Auditing must not fail the request; the ranking is still valid.
		e.logger.Warn("persisting recommendation record failed", zap.Error(err))
	}

	return result, outcome, nil
}

func (e *Engine) persist(ctx context.Context, result *Result) error {
	if e.store == nil {
		return nil
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return e.store.SaveRecommendation(ctx, &catalog.RecommendationRecord{
		AlgorithmVersion: AlgorithmVersion,
		Payload:          payload,
		Weights:          e.selector.Weights().Snapshot(),
	})
}
