package sensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/hwbench/internal/config"
	"github.com/rileyhilliard/hwbench/internal/logger"
	"github.com/rileyhilliard/hwbench/internal/source"
)

func testClassifier(log logger.Logger) *Classifier {
	return NewClassifier(config.Default().Thresholds, log)
}

func leaf(name, value string) *source.RawNode {
	return &source.RawNode{Text: name, Value: value}
}

func branch(name string, children ...*source.RawNode) *source.RawNode {
	return &source.RawNode{Text: name, Children: children}
}

func TestFlattenLocaleValue(t *testing.T) {
	// "45,3 °C" must clean to "45.3" and classify as a CPU temperature.
	root := branch("Sensor", branch("MYPC", leaf("CPU Package", "45,3 °C")))

	readings := testClassifier(nil).Flatten(root)
	require.Len(t, readings, 1)

	r := readings[0]
	assert.Equal(t, "CPU Package", r.Name)
	assert.Equal(t, KindTemperature, r.Kind)
	assert.Equal(t, 45.3, r.Value)
	assert.Equal(t, "°C", r.Unit())
	require.True(t, r.HasMax)
	assert.Equal(t, float64(85), r.Max)
	assert.Equal(t, "45,3 °C", r.Raw)
}

func TestFlattenFirstMatchWins(t *testing.T) {
	// Temperature is tested before Load, so the "%"-style rules never see
	// this node even though naive substring logic could match them.
	readings := testClassifier(nil).Flatten(leaf("CPU Core Temperature Sensor", "45 °C"))
	require.Len(t, readings, 1)
	assert.Equal(t, KindTemperature, readings[0].Kind)
}

func TestFlattenKinds(t *testing.T) {
	tests := []struct {
		name  string
		value string
		kind  Kind
	}{
		{"CPU Core #1", "76.0 %", KindLoad},
		{"CPU VCore", "1.25 V", KindVoltage},
		{"CPU Fan", "1200 RPM", KindFan},
		{"Used Space", "256 GB", KindData},
		{"CPU Package Power", "35.5 W", KindPower},
		{"Bus Clock", "100.0 MHz", KindClock},
		{"GPU Core", "62 °C", KindTemperature},
		{"Memory Load", "52.4 %", KindLoad},
	}

	c := testClassifier(nil)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			readings := c.Flatten(leaf(tc.name, tc.value))
			require.Len(t, readings, 1, "expected one reading for %q/%q", tc.name, tc.value)
			assert.Equal(t, tc.kind, readings[0].Kind)
		})
	}
}

func TestUnitDeterminedByKind(t *testing.T) {
	want := map[Kind]string{
		KindTemperature: "°C",
		KindLoad:        "%",
		KindVoltage:     "V",
		KindFan:         "RPM",
		KindData:        "GB",
		KindPower:       "W",
		KindClock:       "MHz",
		KindUnknown:     "",
	}
	for kind, unit := range want {
		assert.Equal(t, unit, kind.Unit(), "unit for %s", kind)
	}
}

func TestFlattenSkipsNonNumeric(t *testing.T) {
	buf := logger.NewBufferLogger()
	root := branch("Sensor",
		leaf("Model", "Samsung SSD 970"), // numeric after cleanup but no kind keyword: Unknown, dropped
		leaf("Serial", "N/A"),            // not numeric: skipped with a warning
		leaf("CPU Package", "45.0 °C"),
	)

	readings := testClassifier(buf).Flatten(root)

	names := make([]string, 0, len(readings))
	for _, r := range readings {
		names = append(names, r.Name)
	}
	assert.NotContains(t, names, "Serial")
	assert.Contains(t, names, "CPU Package")
	assert.True(t, buf.HasLevel("warn"), "non-numeric leaf should log a warning")
}

func TestFlattenPreOrder(t *testing.T) {
	root := branch("Sensor",
		branch("CPU",
			leaf("CPU Core #1 Temperature", "41 °C"),
			leaf("CPU Core #2 Temperature", "43 °C"),
		),
		branch("GPU",
			leaf("GPU Core Temperature", "60 °C"),
		),
	)

	readings := testClassifier(nil).Flatten(root)
	require.Len(t, readings, 3)
	assert.Equal(t, "CPU Core #1 Temperature", readings[0].Name)
	assert.Equal(t, "CPU Core #2 Temperature", readings[1].Name)
	assert.Equal(t, "GPU Core Temperature", readings[2].Name)
}

func TestFlattenEmptyTreeWarns(t *testing.T) {
	buf := logger.NewBufferLogger()
	readings := testClassifier(buf).Flatten(branch("Sensor"))
	assert.Empty(t, readings)
	assert.True(t, buf.HasLevel("warn"))

	buf.Clear()
	assert.Nil(t, testClassifier(buf).Flatten(nil))
	assert.True(t, buf.HasLevel("warn"))
}

func TestThresholdAssignment(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantMax float64
		hasMax  bool
	}{
		{"CPU Package", "45 °C", 85, true},
		{"GPU Core", "60 °C", 90, true},  // GPU wins over the "Core" CPU match
		{"HDD Used Space Load", "70 %", 90, true},
		{"CPU VCore Voltage", "1.2 V", 13.0, true},
		{"CPU Package Power", "40 W", 300, true},
		{"Bus Clock", "100 MHz", 0, false},
		{"Memory Load", "50 %", 0, false},
	}

	c := testClassifier(nil)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			readings := c.Flatten(leaf(tc.name, tc.value))
			require.Len(t, readings, 1)
			assert.Equal(t, tc.hasMax, readings[0].HasMax)
			if tc.hasMax {
				assert.Equal(t, tc.wantMax, readings[0].Max)
			}
		})
	}
}

func TestRoundingIdempotent(t *testing.T) {
	for _, v := range []float64{45.3, 45.345, 0.005, 99.999, 100} {
		once := round2(v)
		assert.Equal(t, once, round2(once), "rounding %g twice must be stable", v)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"45,3 °C", 45.3, true},
		{"45.3 °C", 45.3, true},
		{"1200 RPM", 1200, true},
		{"0", 0, true},
		{"N/A", 0, false},
		{"", 0, false},
		{"1.2.3", 0, false}, // two periods survive cleanup but don't parse as one number
		{"-", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, ok := parseValue(tc.raw)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestComponentSelectors(t *testing.T) {
	readings := []Reading{
		{Name: "CPU Core #1", Kind: KindTemperature, Value: 50},
		{Name: "GPU Core", Kind: KindTemperature, Value: 65},
		{Name: "Memory Load", Kind: KindLoad, Value: 40},
		{Name: "HDD Load", Kind: KindLoad, Value: 70},
		{Name: "CPU Total Load", Kind: KindLoad, Value: 90},
	}

	cpu := CPUTemperatures(readings)
	require.Len(t, cpu, 1)
	assert.Equal(t, "CPU Core #1", cpu[0].Name)

	gpu := GPUTemperatures(readings)
	require.Len(t, gpu, 1)
	assert.Equal(t, "GPU Core", gpu[0].Name)

	ram := RAMLoads(readings)
	require.Len(t, ram, 1)
	assert.Equal(t, "Memory Load", ram[0].Name)

	disk := DiskLoads(readings)
	require.Len(t, disk, 1)
	assert.Equal(t, "HDD Load", disk[0].Name)

	max, ok := MaxValue(readings)
	assert.True(t, ok)
	assert.Equal(t, float64(90), max)

	_, ok = MaxValue(nil)
	assert.False(t, ok)
}
