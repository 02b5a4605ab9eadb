// Package loader reads measurement captures from CSV files and infers
// the device mode from the filename.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/FinnWang/device-power-analyzer/internal/models"
	"github.com/FinnWang/device-power-analyzer/internal/series"
)

// Capture is one loaded measurement file: the built series plus its
// provenance.
type Capture struct {
	Store          *series.Store
	SourceFilename string
	Mode           Mode
}

// LoadFile reads a capture CSV from disk and builds its series.
func LoadFile(path string) (*Capture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	defer func() { _ = f.Close() }()

	store, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}

	return &Capture{
		Store:          store,
		SourceFilename: filepath.Base(path),
		Mode:           DetectMode(filepath.Base(path)),
	}, nil
}

// LoadCSV parses a capture stream. Columns are positional: time,
// voltage, current, power. A leading header row is detected by its
// non-numeric time cell and skipped. Rows with non-numeric cells are
// dropped, as are rows with negative power readings (sensor glitches
// during hot-plug).
func LoadCSV(r io.Reader) (*series.Store, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, series.ErrEmptyInput
	}

	start := 0
	if isHeader(records[0]) {
		start = 1
	}
	if len(records) > start && len(records[start]) < 4 {
		return nil, fmt.Errorf("%w: got %d columns, need 4", series.ErrMissingTimeColumn, len(records[start]))
	}

	rows := make([]models.Row, 0, len(records)-start)
	for _, record := range records[start:] {
		if len(record) < 4 {
			continue
		}
		row := models.Row{
			Time:    parseCell(record[0]),
			Voltage: parseCell(record[1]),
			Current: parseCell(record[2]),
			Power:   parseCell(record[3]),
		}
		// Rows with unusable measurements are dropped here; rows with
		// unusable times pass through so the series builder can tell a
		// non-numeric time column apart from an empty file.
		if math.IsNaN(row.Voltage) || math.IsNaN(row.Current) || math.IsNaN(row.Power) {
			continue
		}
		if row.Power < 0 {
			continue
		}
		rows = append(rows, row)
	}

	return series.Build(rows)
}

// isHeader reports whether the first record looks like column names
// rather than data.
func isHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
	return err != nil
}

// parseCell coerces one cell to a float, NaN when unparseable so the
// series builder drops the row.
func parseCell(cell string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
