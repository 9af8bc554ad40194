package catalog

import (
	"context"
	"encoding/json"
	"path/filepath"
	"reflect"
	"testing"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := OpenSQLite(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return store
}

func TestSQLiteStoreShoeRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	seed := &Shoe{
		ID:           "brooks-ghost-16",
		Brand:        "Brooks",
		Model:        "Ghost 16",
		Gender:       GenderMen,
		Terrain:      TerrainRoad,
		Support:      SupportNeutral,
		Category:     "running",
		WeightOz:     9.5,
		DropMm:       12,
		HeelStackMm:  35.5,
		CushionLevel: "high",
		Rocker:       true,
		MSRP:         140,
		Active:       true,
		WidthOptions: []string{"standard", "wide"},
		KeyFeatures:  []string{"nitrogen-infused foam"},
		Offers: []Offer{
			{Merchant: "runshop", URL: "https://runshop.example", Price: 140, SalePrice: 119, InStock: true},
		},
	}

	if err := store.UpsertMany(ctx, []*Shoe{seed}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, found, err := store.GetShoe(ctx, seed.ID)
	if err != nil {
		t.Fatalf("get shoe: %v", err)
	}
	if !found {
		t.Fatalf("expected the shoe to be found")
	}
	if !reflect.DeepEqual(got, seed) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, seed)
	}
}

func TestSQLiteStoreUpsertIgnoresDuplicates(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	original := &Shoe{ID: "s1", Brand: "Brand", Model: "First", Active: true}
	replacement := &Shoe{ID: "s1", Brand: "Brand", Model: "Second", Active: true}

	if err := store.UpsertMany(ctx, []*Shoe{original, replacement}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	n, err := store.CountShoes(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}

	got, _, err := store.GetShoe(ctx, "s1")
	if err != nil {
		t.Fatalf("get shoe: %v", err)
	}
	if got.Model != "First" {
		t.Fatalf("expected the first insert to win, got %q", got.Model)
	}
}

func TestSQLiteStoreListShoesByCategory(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	err := store.UpsertMany(ctx, []*Shoe{
		{ID: "run-1", Brand: "A", Model: "Runner", Category: "running", Active: true},
		{ID: "ball-1", Brand: "B", Model: "Baller", Category: "basketball", Active: true},
		{ID: "run-2", Brand: "C", Model: "Racer", Category: "running", Active: true},
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	running, err := store.ListShoes(ctx, "running")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if running.Len() != 2 {
		t.Fatalf("expected 2 running shoes, got %d", running.Len())
	}
	// ORDER BY id keeps snapshots deterministic.
	if running.Items[0].ID != "run-1" || running.Items[1].ID != "run-2" {
		t.Fatalf("unexpected order: %s, %s", running.Items[0].ID, running.Items[1].ID)
	}

	all, err := store.ListShoes(ctx, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if all.Len() != 3 {
		t.Fatalf("expected 3 shoes, got %d", all.Len())
	}
}

func TestSQLiteStoreSaveRecommendation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rec := &RecommendationRecord{
		AlgorithmVersion: "v-test",
		Payload:          json.RawMessage(`{"items":[]}`),
		Weights:          json.RawMessage(`{"budget":2.5}`),
	}
	if err := store.SaveRecommendation(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	if rec.ID == "" {
		t.Fatalf("expected an id to be assigned")
	}
	if rec.CreatedAt.IsZero() {
		t.Fatalf("expected a timestamp to be assigned")
	}

	var n int
	if err := store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recommendations`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 audit row, got %d", n)
	}
}
