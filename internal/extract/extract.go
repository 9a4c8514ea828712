// Package extract parses the raw daily sales CSV and filters it to a single
// target date. It is a pure transformation: the only side effect is logging.
package extract

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/retailops/salesingest/pkg/salesingest"
)

// Extractor implements salesingest.Extractor over CSV content.
type Extractor struct {
	logger salesingest.Logger
}

// NewExtractor creates an Extractor. Panics if logger is nil.
func NewExtractor(logger salesingest.Logger) *Extractor {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Extractor{logger: logger}
}

// Extract parses raw CSV bytes and returns the rows whose sale_date matches
// target (date portion only; time-of-day is discarded).
//
// Structural problems (missing required columns, unreadable content) fail
// with an error wrapping salesingest.ErrParse. Individual rows that cannot
// be coerced (bad date, bad number, wrong field count) are dropped, counted,
// and logged rather than failing the batch. Zero matching rows yields an
// error wrapping salesingest.ErrNoData, which callers treat as a
// short-circuit, not a failure.
func (e *Extractor) Extract(raw []byte, target salesingest.Date) (*salesingest.RowSet, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1 // row width validated per record below

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read header row: %v", salesingest.ErrParse, err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var (
		total   int
		invalid int
		matched []salesingest.Row
	)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.Reader only errors per record for malformed quoting;
			// treat the rest of the content as unreadable.
			return nil, fmt.Errorf("%w: reading row %d: %v", salesingest.ErrParse, total+2, err)
		}

		total++
		row, err := parseRow(record, columns)
		if err != nil {
			invalid++
			e.logger.Verbose("Dropping row %d: %v", total+1, err)
			continue
		}

		if row.SaleDate.Equal(target) {
			matched = append(matched, row)
		}
	}

	e.logger.Info("File read: %d rows", total)
	if invalid > 0 {
		e.logger.Info("Dropped %d invalid rows (run with --verbose for details)", invalid)
	}
	e.logger.Info("Date filter %s: %d rows matched", target, len(matched))

	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: %s", salesingest.ErrNoData, target)
	}

	return &salesingest.RowSet{TargetDate: target, Rows: matched}, nil
}

// mapColumns builds a name-to-index map and verifies every required column
// is present.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required columns %v", salesingest.ErrParse, missing)
	}
	return columns, nil
}

// errShortRow marks records narrower than the header.
var errShortRow = errors.New("record has fewer fields than header")
