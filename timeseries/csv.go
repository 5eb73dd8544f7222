package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DateColumn  string // Column name for dates (optional)
	ValueColumn string // Column name for values (default: "value")
	IDColumn    string // Column name for series ID (optional, for filtering)
	IDFilter    string // Value to filter by ID column
	DateFormat  string // Date format (default: "2006-01-02")
	HasHeader   bool   // Whether CSV has header row (default: true)
	Delimiter   rune   // Field delimiter (default: ',')
	SkipRows    int    // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		ValueColumn: "value",
		DateFormat:  "2006-01-02",
		HasHeader:   true,
		Delimiter:   ',',
	}
}

// LoadCSV loads a measurement series from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a measurement series from an io.Reader.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	valueIdx, dateIdx, idIdx := -1, -1, -1

	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, err
		}
		for i, h := range header {
			name := strings.TrimSpace(h)
			switch name {
			case opts.ValueColumn:
				valueIdx = i
			case opts.DateColumn:
				dateIdx = i
			case opts.IDColumn:
				idIdx = i
			}
		}
		if valueIdx < 0 {
			return nil, fmt.Errorf("value column %q not found", opts.ValueColumn)
		}
	} else {
		valueIdx = 0
	}

	var values []float64
	var timestamps []time.Time

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if valueIdx >= len(record) {
			continue
		}

		if idIdx >= 0 && opts.IDFilter != "" {
			if idIdx >= len(record) || strings.TrimSpace(record[idIdx]) != opts.IDFilter {
				continue
			}
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(record[valueIdx]), 64)
		if err != nil {
			continue
		}

		var ts time.Time
		if dateIdx >= 0 && dateIdx < len(record) {
			ts, err = time.Parse(opts.DateFormat, strings.TrimSpace(record[dateIdx]))
			if err != nil {
				continue
			}
		}

		values = append(values, v)
		if dateIdx >= 0 {
			timestamps = append(timestamps, ts)
		}
	}

	if len(values) == 0 {
		return nil, errors.New("no data rows parsed")
	}

	if dateIdx >= 0 {
		s, err := NewWithTimestamps(timestamps, values)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return New(values), nil
}
