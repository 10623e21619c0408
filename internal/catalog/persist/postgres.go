package persist

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"docshelf/internal/catalog/model"
	"docshelf/pkg/logger"
)

const snapshotKey = "catalog"

// PostgresGateway keeps the whole collection in one JSONB row, full
// overwrite per save. It is an alternative to FileGateway for
// deployments that already run Postgres.
type PostgresGateway struct {
	DB *sql.DB
}

func NewPostgresGateway(db *sql.DB) *PostgresGateway {
	return &PostgresGateway{DB: db}
}

// EnsureSchema creates the snapshot table if it does not exist.
func (g *PostgresGateway) EnsureSchema() error {
	_, err := g.DB.Exec(`CREATE TABLE IF NOT EXISTS catalog_snapshots (
		id TEXT PRIMARY KEY,
		payload JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	return err
}

func (g *PostgresGateway) Save(docs []model.Document) error {
	if docs == nil {
		docs = []model.Document{}
	}
	payload, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	// lib/pq wants a string for JSONB parameters, not []byte.
	_, err = g.DB.Exec(`INSERT INTO catalog_snapshots (id, payload, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET payload = $2, updated_at = NOW()`, snapshotKey, string(payload))
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (g *PostgresGateway) Load() ([]model.Document, error) {
	var payload []byte
	err := g.DB.QueryRow(`SELECT payload FROM catalog_snapshots WHERE id = $1`, snapshotKey).Scan(&payload)
	if err == sql.ErrNoRows {
		return []model.Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	var docs []model.Document
	if err := json.Unmarshal(payload, &docs); err != nil {
		logger.Sugar.Warnf("Corrupt catalog snapshot row, starting empty: %v", err)
		return []model.Document{}, nil
	}
	return docs, nil
}
