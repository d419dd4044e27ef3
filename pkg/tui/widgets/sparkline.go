package widgets

import "strings"

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders values as a fixed-width strip of block characters scaled
// to the series maximum. Series longer than width are downsampled by bucket
// averaging; empty series render as an empty string.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	samples := values
	if len(values) > width {
		samples = make([]float64, width)
		bucket := float64(len(values)) / float64(width)
		for i := 0; i < width; i++ {
			start := int(float64(i) * bucket)
			end := int(float64(i+1) * bucket)
			if end <= start {
				end = start + 1
			}
			if end > len(values) {
				end = len(values)
			}
			sum := 0.0
			for _, v := range values[start:end] {
				sum += v
			}
			samples[i] = sum / float64(end-start)
		}
	}

	maxVal := 0.0
	for _, v := range samples {
		if v > maxVal {
			maxVal = v
		}
	}

	var sb strings.Builder
	for _, v := range samples {
		idx := 0
		if maxVal > 0 {
			idx = int(v / maxVal * float64(len(sparkLevels)-1))
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkLevels) {
			idx = len(sparkLevels) - 1
		}
		sb.WriteRune(sparkLevels[idx])
	}
	return sb.String()
}
