package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline block characters representing 8 vertical levels (lowest to highest).
const sparklineBlocks = "▁▂▃▄▅▆▇█"

var sparklineBlockRunes = []rune(sparklineBlocks)

// RenderSparkline creates a sparkline from a slice of values, showing the
// most recent width data points. Values are mapped to 8 vertical levels over
// the observed min/max range. The color reflects the last value against the
// given threshold: green below 70% of it, yellow up to the threshold, red
// beyond.
func RenderSparkline(data []float64, width int, threshold float64) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	if len(data) > width {
		data = data[len(data)-width:]
	}

	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	var sb strings.Builder
	sb.Grow(len(data) * 4)

	numLevels := len(sparklineBlockRunes)
	valueRange := maxVal - minVal

	for _, v := range data {
		var level int
		if valueRange == 0 {
			level = numLevels / 2
		} else {
			normalized := (v - minVal) / valueRange
			level = int(normalized * float64(numLevels-1))
			if level < 0 {
				level = 0
			} else if level >= numLevels {
				level = numLevels - 1
			}
		}
		sb.WriteRune(sparklineBlockRunes[level])
	}

	color := thresholdColor(data[len(data)-1], threshold)
	return lipgloss.NewStyle().Foreground(color).Render(sb.String())
}

// thresholdColor maps a value to a severity color relative to its threshold.
func thresholdColor(value, threshold float64) lipgloss.Color {
	if threshold <= 0 {
		return ColorSuccess
	}
	switch {
	case value > threshold:
		return ColorError
	case value > 0.7*threshold:
		return ColorWarning
	default:
		return ColorSuccess
	}
}
