package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/rileyhilliard/hwbench/internal/stress"
)

// DividerWidth is the default width for divider lines.
const DividerWidth = 64

// IsTerminal reports whether stdout is attached to a terminal. Callers can
// use it to fall back to plain output when piped.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Paint returns a foreground style for c, or an unstyled style when styled
// is false, so piped output stays free of escape sequences.
func Paint(c lipgloss.Color, styled bool) lipgloss.Style {
	if !styled {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(c)
}

// statusSymbol maps a stress status to its symbol and color.
func statusSymbol(s stress.Status) (string, lipgloss.Color) {
	switch s {
	case stress.StatusOK:
		return SymbolSuccess, ColorSuccess
	case stress.StatusCritical, stress.StatusError:
		return SymbolFail, ColorError
	case stress.StatusHighUsage, stress.StatusUnavailable:
		return SymbolWarning, ColorWarning
	default:
		return SymbolPending, ColorMuted
	}
}

// RenderSummary writes the end-of-run console summary: one line per stress
// result, then the alert list color-coded by severity. Colors are dropped
// when stdout is not a terminal.
func RenderSummary(w io.Writer, results []stress.Result, alerts []string) {
	renderSummary(w, results, alerts, IsTerminal())
}

func renderSummary(w io.Writer, results []stress.Result, alerts []string, styled bool) {
	divider := Paint(ColorMuted, styled).Render(strings.Repeat("─", DividerWidth))
	fmt.Fprintln(w, divider)

	for _, r := range results {
		symbol, color := statusSymbol(r.Status)
		style := Paint(color, styled)

		metric := "no sensor data"
		if r.HasMetric {
			unit := "%"
			if r.Component == stress.CPU || r.Component == stress.GPU {
				unit = " °C"
			}
			metric = fmt.Sprintf("peak %.2f%s", r.Metric, unit)
		}
		fmt.Fprintf(w, "%s %-5s %-12s %s\n",
			style.Render(symbol), r.Component, style.Render(r.Status.String()), metric)
	}

	fmt.Fprintln(w, divider)

	if len(alerts) == 0 {
		ok := Paint(ColorSuccess, styled)
		fmt.Fprintf(w, "%s No alerts\n", ok.Render(SymbolSuccess))
		return
	}

	alertStyle := Paint(ColorError, styled)
	fmt.Fprintf(w, "%s\n", alertStyle.Render(fmt.Sprintf("%d alert(s):", len(alerts))))
	for _, a := range alerts {
		fmt.Fprintf(w, "  %s %s\n", alertStyle.Render(SymbolFail), a)
	}
}
