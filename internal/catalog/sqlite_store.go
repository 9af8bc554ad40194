package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists the catalog snapshot and recommendation audit records.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys=ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	const createShoes = `
CREATE TABLE IF NOT EXISTS shoes (
  id TEXT PRIMARY KEY,
  brand TEXT NOT NULL,
  model TEXT NOT NULL,
  gender TEXT NOT NULL DEFAULT 'unisex',
  terrain TEXT NOT NULL DEFAULT 'road',
  support TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT 'running',
  weight_oz REAL NOT NULL DEFAULT 0,
  drop_mm REAL NOT NULL DEFAULT 0,
  heel_stack_mm REAL NOT NULL DEFAULT 0,
  forefoot_stack_mm REAL NOT NULL DEFAULT 0,
  cushion_level TEXT NOT NULL DEFAULT '',
  carbon_plate INTEGER NOT NULL DEFAULT 0,
  rocker INTEGER NOT NULL DEFAULT 0,
  msrp REAL NOT NULL DEFAULT 0,
  colorway TEXT NOT NULL DEFAULT '',
  active INTEGER NOT NULL DEFAULT 1,
  width_options_json TEXT NOT NULL DEFAULT '[]',
  key_features_json TEXT NOT NULL DEFAULT '[]',
  image_urls_json TEXT NOT NULL DEFAULT '[]',
  offers_json TEXT NOT NULL DEFAULT '[]'
);
`
	const createRecommendations = `
CREATE TABLE IF NOT EXISTS recommendations (
  id TEXT PRIMARY KEY,
  created_at TEXT NOT NULL,
  algorithm_version TEXT NOT NULL,
  payload_json TEXT NOT NULL,
  weights_json TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, createShoes); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, createRecommendations); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_shoes_category ON shoes(category);`); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_shoes_terrain ON shoes(terrain);`); err != nil {
		return err
	}
	return nil
}

func (s *SQLiteStore) CountShoes(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM shoes`).Scan(&n)
	return n, err
}

// UpsertMany inserts seed entries without duplicating by id.
func (s *SQLiteStore) UpsertMany(ctx context.Context, items []*Shoe) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT OR IGNORE INTO shoes
(id, brand, model, gender, terrain, support, category, weight_oz, drop_mm, heel_stack_mm,
 forefoot_stack_mm, cushion_level, carbon_plate, rocker, msrp, colorway, active,
 width_options_json, key_features_json, image_urls_json, offers_json)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, shoe := range items {
		widths, _ := json.Marshal(shoe.WidthOptions)
		features, _ := json.Marshal(shoe.KeyFeatures)
		images, _ := json.Marshal(shoe.ImageURLs)
		offers, _ := json.Marshal(shoe.Offers)

		if _, err := stmt.ExecContext(ctx,
			shoe.ID, shoe.Brand, shoe.Model, shoe.Gender, shoe.Terrain, shoe.Support,
			shoe.Category, shoe.WeightOz, shoe.DropMm, shoe.HeelStackMm, shoe.ForefootStackMm,
			shoe.CushionLevel, boolToInt(shoe.CarbonPlate), boolToInt(shoe.Rocker),
			shoe.MSRP, shoe.Colorway, boolToInt(shoe.Active),
			string(widths), string(features), string(images), string(offers),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListShoes returns the catalog snapshot for one category. An empty category
// returns everything.
func (s *SQLiteStore) ListShoes(ctx context.Context, category string) (*Shoes, error) {
	query := `
SELECT id, brand, model, gender, terrain, support, category, weight_oz, drop_mm, heel_stack_mm,
       forefoot_stack_mm, cushion_level, carbon_plate, rocker, msrp, colorway, active,
       width_options_json, key_features_json, image_urls_json, offers_json
FROM shoes
`
	args := []any{}
	if category != "" {
		query += "WHERE category = ?\n"
		args = append(args, category)
	}
	query += "ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshot := &Shoes{}
	for rows.Next() {
		shoe, err := scanShoe(rows)
		if err != nil {
			return nil, err
		}
		snapshot.Items = append(snapshot.Items, shoe)
	}
	return snapshot, rows.Err()
}

func (s *SQLiteStore) GetShoe(ctx context.Context, id string) (*Shoe, bool, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, brand, model, gender, terrain, support, category, weight_oz, drop_mm, heel_stack_mm,
       forefoot_stack_mm, cushion_level, carbon_plate, rocker, msrp, colorway, active,
       width_options_json, key_features_json, image_urls_json, offers_json
FROM shoes WHERE id = ?
`, id)

	shoe, err := scanShoe(row)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return shoe, true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShoe(row rowScanner) (*Shoe, error) {
	var shoe Shoe
	var carbon, rocker, active int
	var widthsJSON, featuresJSON, imagesJSON, offersJSON string

	if err := row.Scan(
		&shoe.ID, &shoe.Brand, &shoe.Model, &shoe.Gender, &shoe.Terrain, &shoe.Support,
		&shoe.Category, &shoe.WeightOz, &shoe.DropMm, &shoe.HeelStackMm, &shoe.ForefootStackMm,
		&shoe.CushionLevel, &carbon, &rocker, &shoe.MSRP, &shoe.Colorway, &active,
		&widthsJSON, &featuresJSON, &imagesJSON, &offersJSON,
	); err != nil {
		return nil, err
	}

	shoe.CarbonPlate = carbon != 0
	shoe.Rocker = rocker != 0
	shoe.Active = active != 0
	_ = json.Unmarshal([]byte(widthsJSON), &shoe.WidthOptions)
	_ = json.Unmarshal([]byte(featuresJSON), &shoe.KeyFeatures)
	_ = json.Unmarshal([]byte(imagesJSON), &shoe.ImageURLs)
	_ = json.Unmarshal([]byte(offersJSON), &shoe.Offers)

	return &shoe, nil
}

// RecommendationRecord is the persisted audit snapshot of one engine run. The
// exact weight table is stored alongside the payload so a reviewer can
// reproduce a ranking without digging through code history.
type RecommendationRecord struct {
	ID               string
	CreatedAt        time.Time
	AlgorithmVersion string
	Payload          json.RawMessage
	Weights          json.RawMessage
}

// SaveRecommendation appends one immutable audit row.
func (s *SQLiteStore) SaveRecommendation(ctx context.Context, rec *RecommendationRecord) error {
	if rec.ID == "" {
		rec.ID = fmt.Sprintf("rec-%d", time.Now().UnixNano())
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO recommendations (id, created_at, algorithm_version, payload_json, weights_json)
VALUES (?, ?, ?, ?, ?)
`, rec.ID, rec.CreatedAt.Format(time.RFC3339), rec.AlgorithmVersion, string(rec.Payload), string(rec.Weights))
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
