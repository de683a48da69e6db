package alert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/hwbench/internal/config"
	"github.com/rileyhilliard/hwbench/internal/sensor"
)

var thresholds = config.Default().Thresholds

func TestEvaluateThresholdViolation(t *testing.T) {
	readings := []sensor.Reading{
		{Name: "CPU Package", Kind: sensor.KindTemperature, Value: 92, Max: 85, HasMax: true},
		{Name: "GPU Core", Kind: sensor.KindTemperature, Value: 70, Max: 90, HasMax: true},
	}

	alerts := Evaluate(readings, nil, thresholds)
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0], "CPU Package")
	assert.Contains(t, alerts[0], "92.00 °C")
	assert.Contains(t, alerts[0], "85.00")
}

func TestEvaluateVoltageRange(t *testing.T) {
	readings := []sensor.Reading{
		{Name: "5V Rail", Kind: sensor.KindVoltage, Value: 5.0},
		{Name: "Battery Voltage", Kind: sensor.KindVoltage, Value: 2.1},
	}

	alerts := Evaluate(readings, nil, thresholds)
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0], "Battery Voltage")
	assert.Contains(t, alerts[0], "outside the acceptable range")
}

func TestEvaluateVoltageCanFireTwice(t *testing.T) {
	// A single voltage reading trips both its own max threshold and the
	// range check; the checks are not mutually exclusive.
	readings := []sensor.Reading{
		{Name: "12V Rail Voltage", Kind: sensor.KindVoltage, Value: 14.5, Max: 13.0, HasMax: true},
	}

	alerts := Evaluate(readings, nil, thresholds)
	require.Len(t, alerts, 2)
	assert.Contains(t, alerts[0], "threshold")
	assert.Contains(t, alerts[1], "acceptable range")
}

func TestEvaluateNoVoltageReadings(t *testing.T) {
	// Without voltage readings the range check never fires, whatever else
	// is present.
	readings := []sensor.Reading{
		{Name: "CPU Package", Kind: sensor.KindTemperature, Value: 50, Max: 85, HasMax: true},
		{Name: "Memory Load", Kind: sensor.KindLoad, Value: 99},
	}

	alerts := Evaluate(readings, nil, thresholds)
	for _, a := range alerts {
		assert.NotContains(t, a, "acceptable range")
	}
}

func TestEvaluateOrdering(t *testing.T) {
	readings := []sensor.Reading{
		{Name: "HDD Load", Kind: sensor.KindLoad, Value: 95, Max: 90, HasMax: true},
		{Name: "CPU Package", Kind: sensor.KindTemperature, Value: 92, Max: 85, HasMax: true},
	}
	stressErrors := []string{
		"CPU stress test failed: monitor went away",
		"Disk stress test failed: out of space",
	}

	alerts := Evaluate(readings, stressErrors, thresholds)
	require.Len(t, alerts, 4)

	// Reading alerts first, in reading order; then stress errors verbatim,
	// in run order.
	assert.Contains(t, alerts[0], "HDD Load")
	assert.Contains(t, alerts[1], "CPU Package")
	assert.Equal(t, stressErrors[0], alerts[2])
	assert.Equal(t, stressErrors[1], alerts[3])
}

func TestEvaluateEmpty(t *testing.T) {
	assert.Empty(t, Evaluate(nil, nil, thresholds))
}
