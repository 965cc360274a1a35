package storage

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kephothoX/SokoAnalyst/internal/config"
)

var (
	historyOnce sync.Once
	historyInst *HistoryStore
	historyErr  error

	// ErrDataDirNotConfigured indicates config.DataDir is empty.
	ErrDataDirNotConfigured = errors.New("data_dir is not configured")
)

// GetHistoryStore returns a shared history store handle for reuse.
func GetHistoryStore(cfg *config.Config) (*HistoryStore, error) {
	historyOnce.Do(func() {
		dataDir := strings.TrimSpace(cfg.DataDir)
		if dataDir == "" {
			historyErr = ErrDataDirNotConfigured
			return
		}
		dbPath := filepath.Join(dataDir, "sokoanalyst.db")
		historyInst, historyErr = NewHistoryStore(dbPath)
	})
	return historyInst, historyErr
}
