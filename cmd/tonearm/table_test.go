package main

import (
	"strings"
	"testing"
)

func TestNumericColumnInference(t *testing.T) {
	rows := [][]string{
		{"1", "The Black Keys", "2010", "24/96", "15", ""},
		{"2", "Bonobo", "2017", "16/44.1", "12", "8412"},
	}
	tests := []struct {
		name   string
		column int
		want   bool
	}{
		{"index", 0, true},
		{"artist", 1, false},
		{"year", 2, true},
		{"quality has slash", 3, false},
		{"tracks", 4, true},
		{"listeners with gap", 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := numericColumn(rows, tt.column); got != tt.want {
				t.Errorf("numericColumn(%d) = %v, want %v", tt.column, got, tt.want)
			}
		})
	}

	if numericColumn(nil, 0) {
		t.Error("no rows means nothing to right-align")
	}
}

func TestRenderTableIncludesHeadersAndCells(t *testing.T) {
	out := renderTable(
		[]string{"Artist", "Albums"},
		[][]string{{"Radiohead", "9"}, {"Portishead", "3"}},
	)
	for _, want := range []string{"Artist", "Albums", "Radiohead", "Portishead"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered table missing %q:\n%s", want, out)
		}
	}
	if renderTable(nil, nil) != "" {
		t.Error("no headers should render nothing")
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable(
		[]string{"Artist", "Album"},
		[][]string{{"Radiohead"}},
	)
	if !strings.Contains(out, "Radiohead") {
		t.Errorf("short row dropped:\n%s", out)
	}
}
