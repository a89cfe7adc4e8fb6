package search

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"worklens/internal/chunk"
)

// snapshotFormat tags the on-disk schema. A snapshot carrying anything else
// is treated as absent rather than as an error.
const snapshotFormat = "worklens-index/1"

type snapshotFile struct {
	Format      string                   `json:"format"`
	Collections map[string][]chunk.Chunk `json:"collections"`
}

// Load populates the index from the snapshot file, if one exists. A
// missing, unreadable, or incompatible snapshot leaves the index empty and
// is logged, never returned: the process must start regardless.
func (ix *Index) Load() {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	data, err := os.ReadFile(ix.snapshotPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			ix.logger.Debug("no index snapshot, starting empty", "path", ix.snapshotPath)
		} else {
			ix.logger.Warn("failed to read index snapshot, starting empty",
				"path", ix.snapshotPath, "error", err)
		}
		return
	}

	var snap snapshotFile
	if err := json.Unmarshal(data, &snap); err != nil || snap.Format != snapshotFormat || snap.Collections == nil {
		ix.logger.Warn("ignoring incompatible index snapshot",
			"path", ix.snapshotPath, "error", err)
		return
	}

	ix.collections = snap.Collections
	ix.logger.Info("loaded index snapshot",
		"path", ix.snapshotPath, "collections", len(snap.Collections))
}

// saveLocked serializes the full index to the snapshot path, replacing any
// previous file. Callers must hold ix.mu. Write failures are logged and
// swallowed: the in-memory index stays authoritative.
func (ix *Index) saveLocked() {
	if ix.snapshotPath == "" {
		return
	}

	snap := snapshotFile{
		Format:      snapshotFormat,
		Collections: ix.collections,
	}
	data, err := json.Marshal(snap)
	if err != nil {
		ix.logger.Error("failed to encode index snapshot", "error", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(ix.snapshotPath), 0o755); err != nil {
		ix.logger.Error("failed to create snapshot directory",
			"path", ix.snapshotPath, "error", err)
		return
	}
	if err := os.WriteFile(ix.snapshotPath, data, 0o644); err != nil {
		ix.logger.Error("failed to write index snapshot",
			"path", ix.snapshotPath, "error", err)
	}
}
