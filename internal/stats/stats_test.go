package stats

import (
	"math"
	"testing"
)

func TestMovingAverageWindow(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	out := MovingAverage(values, 2)
	expected := []float64{1, 1.5, 2.5, 3.5, 4.5}
	for i, want := range expected {
		if math.Abs(out[i]-want) > 1e-9 {
			t.Fatalf("index %d: expected %f, got %f", i, want, out[i])
		}
	}
}

func TestMovingAverageSmallWindowCopies(t *testing.T) {
	values := []float64{3, 1, 2}
	out := MovingAverage(values, 1)
	for i, v := range values {
		if out[i] != v {
			t.Fatalf("window 1 must copy values, got %v", out)
		}
	}
	out[0] = 99
	if values[0] == 99 {
		t.Fatalf("MovingAverage must not alias its input")
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline for no values, got %q", got)
	}
	flat := Sparkline([]float64{5, 5, 5})
	if len(flat) != 3 {
		t.Fatalf("expected one char per value, got %q", flat)
	}
	if flat[0] != flat[1] || flat[1] != flat[2] {
		t.Fatalf("flat series must render uniformly, got %q", flat)
	}
	ramp := Sparkline([]float64{0, 10})
	if ramp[0] != sparkChars[0] || ramp[1] != sparkChars[len(sparkChars)-1] {
		t.Fatalf("expected min/max glyphs at extremes, got %q", ramp)
	}
}

func TestRenderTableAlignment(t *testing.T) {
	lines := renderTable(
		[]column{{title: "Name"}, {title: "WPM", rightAlign: true}},
		[][]string{{"alpha", "72.4"}, {"b", "9"}},
	)
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(lines))
	}
	if lines[0] != "Name   WPM" {
		t.Fatalf("unexpected header line %q", lines[0])
	}
	if lines[1] != "alpha 72.4" {
		t.Fatalf("unexpected row %q", lines[1])
	}
	if lines[2] != "b        9" {
		t.Fatalf("expected right-aligned numeric column, got %q", lines[2])
	}
}

func TestRenderTableWideRunes(t *testing.T) {
	lines := renderTable(
		[]column{{title: "Word"}, {title: "WPM", rightAlign: true}},
		[][]string{{"日本", "9"}, {"go", "72"}},
	)
	// "日本" occupies four terminal cells, same as the header.
	if lines[1] != "日本   9" {
		t.Fatalf("unexpected wide-rune row %q", lines[1])
	}
	if lines[2] != "go    72" {
		t.Fatalf("expected cell-width padding, got %q", lines[2])
	}
}
