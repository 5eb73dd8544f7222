package timeseries

import (
	"strings"
	"testing"
	"time"
)

func TestLoadCSVFromReader(t *testing.T) {
	content := `date,value,characteristic
2024-01-01,1.5,A
2024-01-02,2.5,A
2024-01-03,3.5,B
2024-01-04,bad,A
`
	opts := &CSVOptions{
		DateColumn:  "date",
		ValueColumn: "value",
		IDColumn:    "characteristic",
		IDFilter:    "A",
		DateFormat:  "2006-01-02",
		HasHeader:   true,
		Delimiter:   ',',
	}

	series, err := LoadCSVFromReader(strings.NewReader(content), opts)
	if err != nil {
		t.Fatal(err)
	}
	if series.Len() != 2 {
		t.Fatalf("len = %d, want 2 (filtered, bad row dropped)", series.Len())
	}
	if series.Values[0] != 1.5 || series.Values[1] != 2.5 {
		t.Errorf("values = %v", series.Values)
	}
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !series.Timestamps[0].Equal(want) {
		t.Errorf("timestamp = %v, want %v", series.Timestamps[0], want)
	}
}

func TestLoadCSVMissingValueColumn(t *testing.T) {
	_, err := LoadCSVFromReader(strings.NewReader("a,b\n1,2\n"), DefaultCSVOptions())
	if err == nil {
		t.Fatal("expected error for missing value column")
	}
}

func TestLoadCSVNoHeader(t *testing.T) {
	series, err := LoadCSVFromReader(strings.NewReader("1.0\n2.0\n3.0\n"),
		&CSVOptions{HasHeader: false, Delimiter: ','})
	if err != nil {
		t.Fatal(err)
	}
	if series.Len() != 3 {
		t.Errorf("len = %d, want 3", series.Len())
	}
}
