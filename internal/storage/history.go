package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/kephothoX/SokoAnalyst/internal/models"
	"github.com/kephothoX/SokoAnalyst/pkg/sqlite"
)

// HistoryStore persists formatted analysis results for later review.
type HistoryStore struct {
	db *sql.DB
}

// AnalysisRecord is one stored analysis run.
type AnalysisRecord struct {
	ID        int64
	ToolType  string
	Symbols   []string
	Title     string
	Summary   string
	Response  models.FormattedResponse
	CreatedAt time.Time
}

func NewHistoryStore(dbPath string) (*HistoryStore, error) {
	db, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, err
	}
	s := &HistoryStore{db: db}
	if err := s.initTable(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *HistoryStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *HistoryStore) initTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS analyses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tool_type TEXT NOT NULL,
		symbols TEXT,
		title TEXT NOT NULL,
		summary TEXT,
		response_json TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create analyses table: %w", err)
	}
	return nil
}

// SaveAnalysis stores a formatted response with its tool type and symbols.
func (s *HistoryStore) SaveAnalysis(ctx context.Context, toolType models.ToolType, symbols []string, resp models.FormattedResponse) (int64, error) {
	payload, err := json.Marshal(resp)
	if err != nil {
		return 0, fmt.Errorf("marshal response: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO analyses (tool_type, symbols, title, summary, response_json) VALUES (?, ?, ?, ?, ?)`,
		string(toolType), strings.Join(symbols, ","), resp.Title, resp.Summary, string(payload))
	if err != nil {
		return 0, fmt.Errorf("insert analysis: %w", err)
	}
	return result.LastInsertId()
}

// ListRecent returns the most recent stored analyses, newest first.
func (s *HistoryStore) ListRecent(ctx context.Context, limit int) ([]AnalysisRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tool_type, symbols, title, summary, response_json, created_at
		 FROM analyses ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	records := []AnalysisRecord{}
	for rows.Next() {
		var (
			record  AnalysisRecord
			symbols string
			payload string
		)
		if err := rows.Scan(&record.ID, &record.ToolType, &symbols, &record.Title,
			&record.Summary, &payload, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan analysis row: %w", err)
		}
		if symbols != "" {
			record.Symbols = strings.Split(symbols, ",")
		}
		if err := json.Unmarshal([]byte(payload), &record.Response); err != nil {
			return nil, fmt.Errorf("unmarshal analysis %d: %w", record.ID, err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Get returns a single stored analysis by id.
func (s *HistoryStore) Get(ctx context.Context, id int64) (*AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, tool_type, symbols, title, summary, response_json, created_at
		 FROM analyses WHERE id = ?`, id)

	var (
		record  AnalysisRecord
		symbols string
		payload string
	)
	err := row.Scan(&record.ID, &record.ToolType, &symbols, &record.Title,
		&record.Summary, &payload, &record.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("analysis %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	if symbols != "" {
		record.Symbols = strings.Split(symbols, ",")
	}
	if err := json.Unmarshal([]byte(payload), &record.Response); err != nil {
		return nil, fmt.Errorf("unmarshal analysis %d: %w", record.ID, err)
	}
	return &record, nil
}

// Prune deletes records older than the retention window.
func (s *HistoryStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	result, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune analyses: %w", err)
	}
	return result.RowsAffected()
}
