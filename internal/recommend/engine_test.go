package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/strideware/fitmatch/internal/ai"
	"github.com/strideware/fitmatch/internal/catalog"
	"github.com/strideware/fitmatch/internal/scoring"
)

type stubStore struct {
	saved []*catalog.RecommendationRecord
	err   error
}

func (s *stubStore) SaveRecommendation(_ context.Context, rec *catalog.RecommendationRecord) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, rec)
	return nil
}

func roadSnapshot(n int) *catalog.Shoes {
	items := make([]*catalog.Shoe, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, &catalog.Shoe{
			ID:      fmt.Sprintf("shoe-%d", i+1),
			Brand:   "Brand",
			Model:   fmt.Sprintf("Model %d", i+1),
			Active:  true,
			Gender:  catalog.GenderUnisex,
			Terrain: catalog.TerrainRoad,
			MSRP:    90 + float64(i)*10,
		})
	}
	return &catalog.Shoes{Items: items}
}

func heuristicEngine(store Store) *Engine {
	selector := scoring.NewSelector(scoring.DefaultWeights(), zap.NewNop())
	overlay := NewOverlay(ai.Disabled{}, 0, 0, zap.NewNop())
	return NewEngine(selector, overlay, store, zap.NewNop())
}

func TestEngineEmptyCatalogYieldsEmptyResult(t *testing.T) {
	engine := heuristicEngine(nil)

	result, outcome, err := engine.Recommend(context.Background(), "running", nil, roadSnapshot(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Items) != 0 {
		t.Fatalf("expected empty items, got %d", len(result.Items))
	}
	if result.NotRecommended == nil {
		t.Fatalf("expected not_recommended slot to be emitted")
	}
	if outcome.Applied || outcome.FallbackReason == "" {
		t.Fatalf("expected heuristic outcome with a reason, got %+v", outcome)
	}
}

func TestEngineCapsFinalList(t *testing.T) {
	tests := []struct {
		catalogSize int
		expect      int
	}{
		{catalogSize: 1, expect: 1},
		{catalogSize: 5, expect: 5},
		{catalogSize: 10, expect: FinalListSize},
		{catalogSize: 40, expect: FinalListSize},
	}

	engine := heuristicEngine(nil)
	answers := map[string]any{"terrain": "road", "budget": "any"}

	for _, tt := range tests {
		result, _, err := engine.Recommend(context.Background(), "running", answers, roadSnapshot(tt.catalogSize))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Items) != tt.expect {
			t.Fatalf("catalog of %d: expected %d items, got %d", tt.catalogSize, tt.expect, len(result.Items))
		}
		for i, item := range result.Items {
			if item.Rank != i+1 {
				t.Fatalf("expected rank %d at position %d, got %d", i+1, i, item.Rank)
			}
		}
	}
}

func TestEngineIsDeterministicWithoutProvider(t *testing.T) {
	engine := heuristicEngine(nil)
	answers := map[string]any{
		"terrain":    "road",
		"budget":     "under_100",
		"issues":     []string{"overpronation"},
		"priorities": []string{"stability", "value"},
	}

	var runs [][]string
	for i := 0; i < 3; i++ {
		result, _, err := engine.Recommend(context.Background(), "running", answers, roadSnapshot(12))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		order := make([]string, 0, len(result.Items))
		for _, item := range result.Items {
			order = append(order, item.ShoeID)
		}
		runs = append(runs, order)
	}

	if !reflect.DeepEqual(runs[0], runs[1]) || !reflect.DeepEqual(runs[1], runs[2]) {
		t.Fatalf("expected identical order across runs, got %v", runs)
	}
}

func TestEnginePersistsAuditRecord(t *testing.T) {
	store := &stubStore{}
	engine := heuristicEngine(store)

	result, _, err := engine.Recommend(context.Background(), "running", map[string]any{"terrain": "road"}, roadSnapshot(6))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.saved) != 1 {
		t.Fatalf("expected 1 persisted record, got %d", len(store.saved))
	}
	rec := store.saved[0]
	if rec.AlgorithmVersion != AlgorithmVersion {
		t.Fatalf("expected algorithm version %q, got %q", AlgorithmVersion, rec.AlgorithmVersion)
	}

	var persisted Result
	if err := json.Unmarshal(rec.Payload, &persisted); err != nil {
		t.Fatalf("persisted payload is not valid JSON: %v", err)
	}
	if len(persisted.Items) != len(result.Items) {
		t.Fatalf("persisted %d items, returned %d", len(persisted.Items), len(result.Items))
	}

	var weights map[string]float64
	if err := json.Unmarshal(rec.Weights, &weights); err != nil {
		t.Fatalf("persisted weights are not valid JSON: %v", err)
	}
	if weights["budget"] != 2.5 {
		t.Fatalf("expected budget weight 2.5 in snapshot, got %v", weights["budget"])
	}
}

func TestEngineSurvivesStoreFailure(t *testing.T) {
	store := &stubStore{err: errors.New("disk full")}
	engine := heuristicEngine(store)

	result, _, err := engine.Recommend(context.Background(), "running", map[string]any{"terrain": "road"}, roadSnapshot(4))
	if err != nil {
		t.Fatalf("store failure must not fail the request: %v", err)
	}
	if len(result.Items) == 0 {
		t.Fatalf("expected a ranking despite the store failure")
	}
}
