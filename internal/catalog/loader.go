package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadSeed reads a catalog seed file (a JSON array of shoes) from disk.
func LoadSeed(path string) ([]*Shoe, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var shoes []*Shoe
	if err := json.Unmarshal(b, &shoes); err != nil {
		return nil, fmt.Errorf("unmarshal seed file: %w", err)
	}
	return shoes, nil
}
