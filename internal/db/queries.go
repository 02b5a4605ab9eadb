package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/FinnWang/device-power-analyzer/internal/models"
)

// ErrNotFound is returned when a result id is not in the archive.
var ErrNotFound = errors.New("result not found")

// InsertResult archives a committed result. The stats snapshot and
// metadata bag are stored as JSON; infinite battery projections use
// the same sentinel encoding as the export codec, so archived rows
// round-trip exactly.
func (db *DB) InsertResult(r models.AnalysisResult) error {
	statsJSON, err := json.Marshal(r.Stats)
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}

	var metadataJSON []byte
	if len(r.Metadata) > 0 {
		metadataJSON, err = json.Marshal(r.Metadata)
		if err != nil {
			return fmt.Errorf("failed to encode metadata: %w", err)
		}
	}

	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO results (
			id, label, source_filename, mode_label, start_time, end_time,
			duration, created_at, chart_theme, stats, metadata
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = db.ExecContext(context.Background(), query,
		r.ID,
		r.Label,
		nullString(r.SourceFilename),
		nullString(r.ModeLabel),
		r.StartTime,
		r.EndTime,
		r.Duration,
		createdAt.UTC().Format(time.RFC3339Nano),
		nullString(r.ChartTheme),
		string(statsJSON),
		nullString(string(metadataJSON)),
	)
	if err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}
	return nil
}

// GetResult fetches one archived result by id.
func (db *DB) GetResult(id string) (models.AnalysisResult, error) {
	query := `
		SELECT id, label, source_filename, mode_label, start_time, end_time,
			   duration, created_at, chart_theme, stats, metadata
		FROM results
		WHERE id = ?
	`
	row := db.QueryRowContext(context.Background(), query, id)
	r, err := scanResult(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AnalysisResult{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r, err
}

// ListResults returns archived results ordered by creation time,
// oldest first.
func (db *DB) ListResults() ([]models.AnalysisResult, error) {
	query := `
		SELECT id, label, source_filename, mode_label, start_time, end_time,
			   duration, created_at, chart_theme, stats, metadata
		FROM results
		ORDER BY created_at ASC
	`
	rows, err := db.QueryContext(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []models.AnalysisResult
	for rows.Next() {
		r, err := scanResult(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// UpdateResultLabel renames an archived result.
func (db *DB) UpdateResultLabel(id, label string) error {
	res, err := db.ExecContext(context.Background(),
		"UPDATE results SET label = ? WHERE id = ?", label, id)
	if err != nil {
		return fmt.Errorf("failed to update label: %w", err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// DeleteResult removes one archived result. Reports whether a row was
// actually deleted.
func (db *DB) DeleteResult(id string) (bool, error) {
	res, err := db.ExecContext(context.Background(), "DELETE FROM results WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete result: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ClearResults removes every archived result and returns the count.
func (db *DB) ClearResults() (int64, error) {
	res, err := db.ExecContext(context.Background(), "DELETE FROM results")
	if err != nil {
		return 0, fmt.Errorf("failed to clear results: %w", err)
	}
	return res.RowsAffected()
}

// CountResults returns the number of archived results.
func (db *DB) CountResults() (int, error) {
	var count int
	err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM results").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count results: %w", err)
	}
	return count, nil
}

func scanResult(scan func(dest ...any) error) (models.AnalysisResult, error) {
	var r models.AnalysisResult
	var sourceFile, modeLabel, chartTheme, metadataJSON sql.NullString
	var createdAt, statsJSON string

	err := scan(
		&r.ID,
		&r.Label,
		&sourceFile,
		&modeLabel,
		&r.StartTime,
		&r.EndTime,
		&r.Duration,
		&createdAt,
		&chartTheme,
		&statsJSON,
		&metadataJSON,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, err
		}
		return r, fmt.Errorf("failed to scan result: %w", err)
	}

	r.SourceFilename = sourceFile.String
	r.ModeLabel = modeLabel.String
	r.ChartTheme = chartTheme.String

	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		r.CreatedAt = t
	}
	if err := json.Unmarshal([]byte(statsJSON), &r.Stats); err != nil {
		return r, fmt.Errorf("failed to decode stats: %w", err)
	}
	if metadataJSON.Valid && metadataJSON.String != "" {
		if err := json.Unmarshal([]byte(metadataJSON.String), &r.Metadata); err != nil {
			return r, fmt.Errorf("failed to decode metadata: %w", err)
		}
	}
	return r, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
