package widgets

import (
	"testing"
	"unicode/utf8"
)

func TestSparkline(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		width    int
		expected string
	}{
		{name: "empty series", values: nil, width: 10, expected: ""},
		{name: "zero width", values: []float64{1, 2}, width: 0, expected: ""},
		{name: "all zero stays flat", values: []float64{0, 0, 0}, width: 3, expected: "▁▁▁"},
		{name: "ramp", values: []float64{0, 3.5, 7}, width: 3, expected: "▁▄█"},
		{name: "max everywhere", values: []float64{5, 5}, width: 2, expected: "██"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sparkline(tt.values, tt.width); got != tt.expected {
				t.Errorf("Sparkline(%v, %d) = %q, want %q", tt.values, tt.width, got, tt.expected)
			}
		})
	}
}

func TestSparklineDownsamples(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i)
	}

	got := Sparkline(values, 10)
	if utf8.RuneCountInString(got) != 10 {
		t.Errorf("downsampled width = %d runes, want 10", utf8.RuneCountInString(got))
	}
}
