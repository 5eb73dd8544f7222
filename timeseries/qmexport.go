package timeseries

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
)

// QMExportOptions holds options for loading tab-delimited QM inspection exports.
// The export format is fixed by the QM system: four report header rows before
// the column header, cp1252 encoding, decimal commas.
type QMExportOptions struct {
	DateColumn           string // default "Strtterm."
	ValueColumn          string // default "Meßwert"
	CharacteristicColumn string // default "StPrüfM"
	SerialColumn         string // default "Serialnr"
	DateFormat           string // default "02.01.2006"
	SkipRows             int    // default 4
}

// DefaultQMExportOptions returns the column layout of the standard QM export.
func DefaultQMExportOptions() *QMExportOptions {
	return &QMExportOptions{
		DateColumn:           "Strtterm.",
		ValueColumn:          "Meßwert",
		CharacteristicColumn: "StPrüfM",
		SerialColumn:         "Serialnr",
		DateFormat:           "02.01.2006",
		SkipRows:             4,
	}
}

// QMRecord is a single measurement row from a QM export.
type QMRecord struct {
	Date           time.Time
	Value          float64
	Characteristic string
	Serial         string
}

// QMExport holds all parsed measurement rows of an export file,
// sorted ascending by date.
type QMExport struct {
	Records []QMRecord
}

// LoadQMExport loads a QM inspection export file.
func LoadQMExport(filename string, opts *QMExportOptions) (*QMExport, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadQMExportFromReader(file, opts)
}

// LoadQMExportFromReader parses a QM export from an io.Reader.
// Rows with an unparseable value or date are dropped, matching the
// export's habit of interleaving summary lines with data.
func LoadQMExportFromReader(r io.Reader, opts *QMExportOptions) (*QMExport, error) {
	if opts == nil {
		opts = DefaultQMExportOptions()
	}

	scanner := bufio.NewScanner(charmap.Windows1252.NewDecoder().Reader(r))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for i := 0; i < opts.SkipRows; i++ {
		if !scanner.Scan() {
			return nil, errors.New("export shorter than header block")
		}
	}

	// Column header row
	var header []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		header = strings.Split(line, "\t")
		break
	}
	if header == nil {
		return nil, errors.New("no column header row found")
	}

	dateIdx, valueIdx, charIdx, serialIdx := -1, -1, -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case opts.DateColumn:
			dateIdx = i
		case opts.ValueColumn:
			valueIdx = i
		case opts.CharacteristicColumn:
			charIdx = i
		case opts.SerialColumn:
			serialIdx = i
		}
	}
	if dateIdx < 0 || valueIdx < 0 || charIdx < 0 {
		return nil, fmt.Errorf("required columns missing: need %q, %q, %q",
			opts.DateColumn, opts.ValueColumn, opts.CharacteristicColumn)
	}

	var records []QMRecord
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if valueIdx >= len(fields) || dateIdx >= len(fields) || charIdx >= len(fields) {
			continue
		}

		v, err := parseQMNumber(fields[valueIdx])
		if err != nil {
			continue
		}
		date, err := time.Parse(opts.DateFormat, strings.TrimSpace(fields[dateIdx]))
		if err != nil {
			continue
		}

		rec := QMRecord{
			Date:           date,
			Value:          v,
			Characteristic: strings.TrimSpace(fields[charIdx]),
		}
		if serialIdx >= 0 && serialIdx < len(fields) {
			rec.Serial = strings.TrimSpace(fields[serialIdx])
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(a, b int) bool {
		return records[a].Date.Before(records[b].Date)
	})

	return &QMExport{Records: records}, nil
}

// Characteristic extracts the measurement series of one inspection
// characteristic, in date order.
func (e *QMExport) Characteristic(id string) *Series {
	var values []float64
	var timestamps []time.Time
	for _, rec := range e.Records {
		if rec.Characteristic != id {
			continue
		}
		values = append(values, rec.Value)
		timestamps = append(timestamps, rec.Date)
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       id,
	}
}

// Characteristics lists the distinct characteristic IDs in the export.
func (e *QMExport) Characteristics() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, rec := range e.Records {
		if !seen[rec.Characteristic] {
			seen[rec.Characteristic] = true
			ids = append(ids, rec.Characteristic)
		}
	}
	sort.Strings(ids)
	return ids
}

// parseQMNumber parses a QM export number: decimal comma, optional
// uppercase exponent marker.
func parseQMNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.ReplaceAll(s, "E", "e")
	return strconv.ParseFloat(s, 64)
}
