package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/hwbench/internal/sensor"
	"github.com/rileyhilliard/hwbench/internal/source"
	"github.com/rileyhilliard/hwbench/internal/stress"
)

var testTime = time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)

func TestPathsFor(t *testing.T) {
	p := PathsFor("/tmp/out", testTime)

	assert.Equal(t, filepath.Join("/tmp/out", "hwbench-report-20240301-123045.html"), p.Summary)
	assert.Equal(t, filepath.Join("/tmp/out", "hwbench-tree-20240301-123045.html"), p.Tree)
	assert.Equal(t, filepath.Join("/tmp/out", "hwbench-20240301-123045.log"), p.Log)
}

func summaryData() SummaryData {
	return SummaryData{
		GeneratedAt: testTime,
		Hostname:    "testbox",
		Results: []stress.Result{
			{Component: stress.CPU, Metric: 72.5, HasMetric: true, Status: stress.StatusOK},
			{Component: stress.RAM, Metric: 95, HasMetric: true, Status: stress.StatusHighUsage},
			{Component: stress.Disk, Status: stress.StatusError},
			{Component: stress.GPU, Status: stress.StatusUnavailable},
		},
		Groups: GroupByKind([]sensor.Reading{
			{Name: "CPU Package", Kind: sensor.KindTemperature, Value: 92, Max: 85, HasMax: true, Raw: "92.0 °C"},
			{Name: "Memory Load", Kind: sensor.KindLoad, Value: 52.4, Raw: "52.4 %"},
		}),
		Alerts: []string{"CPU Package is 92.00 °C, above the 85.00 °C threshold"},
	}
}

func TestRenderSummary(t *testing.T) {
	html, err := RenderSummary(summaryData())
	require.NoError(t, err)

	for _, want := range []string{
		"<title>hwbench report</title>",
		"testbox",
		"2024-03-01 12:30:45",
		"1 alert(s)",
		"CPU Package is 92.00",
		"72.50",
		"High usage",
		"Unavailable",
		"Temperature",
		"92.0 °C", // raw value preserved for display
		"52.40 %",
	} {
		assert.Contains(t, html, want)
	}

	// The over-threshold value is marked critical; the in-range one is not.
	assert.Contains(t, html, `class="critical">92.00`)
	assert.NotContains(t, html, `class="critical">52.40`)
}

func TestRenderSummaryNoAlerts(t *testing.T) {
	data := summaryData()
	data.Alerts = nil

	html, err := RenderSummary(data)
	require.NoError(t, err)
	assert.Contains(t, html, "All readings within thresholds")
}

func TestRenderSummaryEscapesHTML(t *testing.T) {
	data := summaryData()
	data.Groups = GroupByKind([]sensor.Reading{
		{Name: "<script>alert(1)</script>", Kind: sensor.KindLoad, Value: 1, Raw: "1 %"},
	})

	html, err := RenderSummary(data)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")
}

func TestGroupByKind(t *testing.T) {
	readings := []sensor.Reading{
		{Name: "Fan", Kind: sensor.KindFan, Value: 1200},
		{Name: "CPU Temp", Kind: sensor.KindTemperature, Value: 45},
		{Name: "Core Temp", Kind: sensor.KindTemperature, Value: 47},
	}

	groups := GroupByKind(readings)
	require.Len(t, groups, 2)

	// Temperature first (kind order), readings in original order within it.
	assert.Equal(t, sensor.KindTemperature, groups[0].Kind)
	assert.Equal(t, "CPU Temp", groups[0].Readings[0].Name)
	assert.Equal(t, "Core Temp", groups[0].Readings[1].Name)
	assert.Equal(t, sensor.KindFan, groups[1].Kind)

	assert.Empty(t, GroupByKind(nil))
}

func TestRenderTree(t *testing.T) {
	root := &source.RawNode{
		Text: "Sensor",
		Children: []*source.RawNode{
			{
				Text: "MYPC",
				Children: []*source.RawNode{
					{Text: "CPU Package", Value: "45.3 °C", Min: "40.0 °C", Max: "62.0 °C"},
				},
			},
		},
	}

	html, err := RenderTree(TreeData{GeneratedAt: testTime, Root: root})
	require.NoError(t, err)

	for _, want := range []string{"Sensor", "MYPC", "CPU Package", "45.3 °C", "min 40.0 °C", "max 62.0 °C"} {
		assert.Contains(t, html, want)
	}
}

func TestWriteSummaryAndTree(t *testing.T) {
	dir := t.TempDir()
	paths := PathsFor(dir, testTime)

	require.NoError(t, WriteSummary(paths.Summary, summaryData()))
	require.NoError(t, WriteTree(paths.Tree, TreeData{GeneratedAt: testTime, Root: &source.RawNode{Text: "Sensor"}}))

	sum, err := os.ReadFile(paths.Summary)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(sum), "<!DOCTYPE html>"))

	tree, err := os.ReadFile(paths.Tree)
	require.NoError(t, err)
	assert.Contains(t, string(tree), "Raw sensor tree")
}

func TestWriteSummaryBadPath(t *testing.T) {
	err := WriteSummary(filepath.Join(t.TempDir(), "missing", "x.html"), summaryData())
	assert.Error(t, err)
}
