package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rileyhilliard/hwbench/internal/stress"
)

func TestRenderSparkline(t *testing.T) {
	tests := []struct {
		name  string
		data  []float64
		width int
		empty bool
	}{
		{"empty data", nil, 10, true},
		{"zero width", []float64{1, 2}, 0, true},
		{"flat data", []float64{5, 5, 5}, 10, false},
		{"rising data", []float64{1, 2, 3, 4, 5, 6, 7, 8}, 10, false},
		{"truncated to width", []float64{1, 2, 3, 4, 5, 6}, 3, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RenderSparkline(tc.data, tc.width, 100)
			if tc.empty && got != "" {
				t.Errorf("expected empty sparkline, got %q", got)
			}
			if !tc.empty && got == "" {
				t.Error("expected non-empty sparkline")
			}
		})
	}
}

func TestRenderSparklineWidth(t *testing.T) {
	got := RenderSparkline([]float64{1, 2, 3, 4, 5, 6}, 3, 100)
	// Strip any ANSI escapes before counting runes.
	plain := stripANSI(got)
	if n := len([]rune(plain)); n != 3 {
		t.Errorf("expected 3 blocks, got %d in %q", n, plain)
	}
}

func TestThresholdColor(t *testing.T) {
	if c := thresholdColor(50, 100); c != ColorSuccess {
		t.Errorf("50/100 should be success, got %v", c)
	}
	if c := thresholdColor(75, 100); c != ColorWarning {
		t.Errorf("75/100 should be warning, got %v", c)
	}
	if c := thresholdColor(101, 100); c != ColorError {
		t.Errorf("101/100 should be error, got %v", c)
	}
	if c := thresholdColor(10, 0); c != ColorSuccess {
		t.Errorf("no threshold should be success, got %v", c)
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	results := []stress.Result{
		{Component: stress.CPU, Metric: 62.5, HasMetric: true, Status: stress.StatusOK},
		{Component: stress.RAM, Metric: 95, HasMetric: true, Status: stress.StatusHighUsage},
		{Component: stress.Disk, Status: stress.StatusError},
		{Component: stress.GPU, Status: stress.StatusUnavailable},
	}
	alerts := []string{"CPU Package is 92.00 °C, above the 85.00 °C threshold"}

	renderSummary(&buf, results, alerts, true)
	out := buf.String()

	for _, want := range []string{"CPU", "RAM", "Disk", "GPU", "62.50", "no sensor data", "1 alert(s):", "92.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSummaryPlain(t *testing.T) {
	var buf bytes.Buffer
	results := []stress.Result{
		{Component: stress.CPU, Metric: 62.5, HasMetric: true, Status: stress.StatusOK},
	}

	renderSummary(&buf, results, []string{"some alert"}, false)
	out := buf.String()

	// Piped output must carry no escape sequences.
	if strings.ContainsRune(out, '\x1b') {
		t.Errorf("plain summary contains escape sequences:\n%q", out)
	}
	for _, want := range []string{"CPU", "62.50", "1 alert(s):", "some alert"} {
		if !strings.Contains(out, want) {
			t.Errorf("plain summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSummaryNoAlerts(t *testing.T) {
	var buf bytes.Buffer
	renderSummary(&buf, nil, nil, false)
	if !strings.Contains(buf.String(), "No alerts") {
		t.Errorf("expected 'No alerts' in %q", buf.String())
	}
}

func TestPaint(t *testing.T) {
	styled := Paint(ColorError, true)
	if styled.GetForeground() != ColorError {
		t.Errorf("styled paint should carry the foreground color")
	}
	plain := Paint(ColorError, false)
	if out := plain.Render("x"); out != "x" {
		t.Errorf("plain paint must not alter text, got %q", out)
	}
}

// stripANSI removes escape sequences lipgloss may emit in color-capable
// environments.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
