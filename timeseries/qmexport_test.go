package timeseries

import (
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

const qmExportSample = `QM Export Report
Werk: 0001
Zeitraum: 01.01.2024 - 31.12.2024

Strtterm.	Meßwert	StPrüfM	Serialnr
05.01.2024	1,25	152159-1300	SN001
03.01.2024	1,10	152159-1300	SN002
04.01.2024	2,5E-1	152159-1300	SN003
06.01.2024	9,90	154200-0100	SN004
07.01.2024	abc	152159-1300	SN005
invalid	1,00	152159-1300	SN006
`

func encodedSample(t *testing.T) string {
	t.Helper()
	enc, err := charmap.Windows1252.NewEncoder().String(qmExportSample)
	if err != nil {
		t.Fatal(err)
	}
	return enc
}

func TestLoadQMExport(t *testing.T) {
	export, err := LoadQMExportFromReader(strings.NewReader(encodedSample(t)), nil)
	if err != nil {
		t.Fatal(err)
	}

	// Two rows dropped: unparseable value, unparseable date.
	if len(export.Records) != 4 {
		t.Fatalf("records = %d, want 4", len(export.Records))
	}

	// Sorted ascending by date.
	for i := 1; i < len(export.Records); i++ {
		if export.Records[i].Date.Before(export.Records[i-1].Date) {
			t.Fatal("records not sorted by date")
		}
	}

	series := export.Characteristic("152159-1300")
	if series.Len() != 3 {
		t.Fatalf("characteristic series len = %d, want 3", series.Len())
	}
	// Date-ordered: 03.01 (1.10), 04.01 (0.25 from 2,5E-1), 05.01 (1.25).
	want := []float64{1.10, 0.25, 1.25}
	for i, v := range series.Values {
		if v != want[i] {
			t.Errorf("value[%d] = %f, want %f", i, v, want[i])
		}
	}

	ids := export.Characteristics()
	if len(ids) != 2 || ids[0] != "152159-1300" || ids[1] != "154200-0100" {
		t.Errorf("characteristics = %v", ids)
	}
}

func TestLoadQMExportMissingColumns(t *testing.T) {
	content := "a\nb\nc\nd\nfoo\tbar\n1\t2\n"
	_, err := LoadQMExportFromReader(strings.NewReader(content), nil)
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
}

func TestParseQMNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1,25", 1.25},
		{" 2,5E-1 ", 0.25},
		{"-0,5", -0.5},
		{"3.75", 3.75},
	}
	for _, c := range cases {
		got, err := parseQMNumber(c.in)
		if err != nil {
			t.Errorf("parseQMNumber(%q) error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("parseQMNumber(%q) = %f, want %f", c.in, got, c.want)
		}
	}
}
