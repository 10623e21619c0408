package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"docshelf/internal/catalog/model"
	"docshelf/pkg/logger"
)

// FileGateway stores the collection as one JSON array snapshot on
// disk, full overwrite per save.
type FileGateway struct {
	Path string
}

func NewFileGateway(path string) *FileGateway {
	return &FileGateway{Path: path}
}

// Save overwrites the snapshot atomically (temp file, then rename).
func (g *FileGateway) Save(docs []model.Document) error {
	if docs == nil {
		docs = []model.Document{}
	}
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if dir := filepath.Dir(g.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	tmp := g.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return os.Rename(tmp, g.Path)
}

// Load returns the stored collection. An absent snapshot is a normal
// first run; an unparsable one is logged and treated as empty.
func (g *FileGateway) Load() ([]model.Document, error) {
	data, err := os.ReadFile(g.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Document{}, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var docs []model.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		logger.Sugar.Warnf("Corrupt catalog snapshot at %s, starting empty: %v", g.Path, err)
		return []model.Document{}, nil
	}
	return docs, nil
}
