package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	seed := `[
  {"id": "s1", "brand": "Brooks", "model": "Ghost 16", "terrain": "road", "active": true,
   "offers": [{"merchant": "runshop", "price": 140, "in_stock": true}]},
  {"id": "s2", "brand": "Hoka", "model": "Clifton 9", "terrain": "road", "active": true}
]`
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	shoes, err := LoadSeed(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(shoes) != 2 {
		t.Fatalf("expected 2 shoes, got %d", len(shoes))
	}
	if shoes[0].FullName() != "Brooks Ghost 16" {
		t.Fatalf("unexpected first shoe: %q", shoes[0].FullName())
	}
	if len(shoes[0].Offers) != 1 || !shoes[0].Offers[0].InStock {
		t.Fatalf("expected the offer to survive decoding")
	}
}

func TestLoadSeedErrors(t *testing.T) {
	if _, err := LoadSeed(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadSeed(path); err == nil {
		t.Fatalf("expected an error for malformed JSON")
	}
}
