package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/hwbench/internal/config"
	"github.com/rileyhilliard/hwbench/internal/doctor"
	"github.com/rileyhilliard/hwbench/internal/ui"
)

var doctorJSON bool

// doctorCmd verifies the environment is ready for a benchmark run.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the benchmark environment",
	Long: `Run diagnostic checks against the monitoring endpoint, available
memory and disk, and the output directory. Use this before a run to
catch problems early.

Examples:
  hwbench doctor
  hwbench doctor --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand(configFlag)
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
}

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	AllClear bool `json:"all_clear"`
}

func doctorCommand(configPath string) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	checks := doctor.DefaultChecks(cfg)
	results := doctor.RunAll(checks)

	if doctorJSON {
		return outputDoctorJSON(checks, results)
	}
	return outputDoctorText(os.Stdout, checks, results, ui.IsTerminal())
}

// outputDoctorJSON outputs results in JSON format.
func outputDoctorJSON(checks []doctor.Check, results []doctor.CheckResult) error {
	grouped := make(map[string][]doctor.CheckResult)
	categoryOrder := []string{}

	for i, check := range checks {
		cat := check.Category()
		if _, exists := grouped[cat]; !exists {
			categoryOrder = append(categoryOrder, cat)
		}
		grouped[cat] = append(grouped[cat], results[i])
	}

	output := DoctorOutput{
		Categories: make([]CategoryOutput, 0, len(categoryOrder)),
	}
	for _, cat := range categoryOrder {
		output.Categories = append(output.Categories, CategoryOutput{
			Name:    cat,
			Results: grouped[cat],
		})
	}

	counts := doctor.CountByStatus(results)
	output.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		AllClear: counts[doctor.StatusWarn] == 0 && counts[doctor.StatusFail] == 0,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// outputDoctorText outputs results in human-readable format. Colors are
// dropped when styled is false (stdout piped).
//
//nolint:unparam // error return reserved for future use
func outputDoctorText(w io.Writer, checks []doctor.Check, results []doctor.CheckResult, styled bool) error {
	successStyle := ui.Paint(ui.ColorSuccess, styled)
	errorStyle := ui.Paint(ui.ColorError, styled)
	warnStyle := ui.Paint(ui.ColorWarning, styled)
	mutedStyle := ui.Paint(ui.ColorMuted, styled)
	headerStyle := lipgloss.NewStyle().Bold(styled)

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("Hardware Bench Diagnostic Report"))
	fmt.Fprintln(w)

	categoryOrder := []string{"SYSTEM", "SOURCE", "RESOURCES", "OUTPUT"}
	grouped := make(map[string][]int) // category -> indices

	for i, check := range checks {
		cat := check.Category()
		grouped[cat] = append(grouped[cat], i)
	}

	for _, category := range categoryOrder {
		indices, ok := grouped[category]
		if !ok || len(indices) == 0 {
			continue
		}

		fmt.Fprintln(w, headerStyle.Render(category))
		for _, idx := range indices {
			renderCheckResult(w, results[idx], successStyle, errorStyle, warnStyle, mutedStyle)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("━", 60))
	fmt.Fprintln(w)

	counts := doctor.CountByStatus(results)
	if !doctor.HasFailures(results) && counts[doctor.StatusWarn] == 0 {
		fmt.Fprintf(w, "%s %s\n", successStyle.Render(ui.SymbolSuccess), "Everything looks good")
	} else {
		total := counts[doctor.StatusFail] + counts[doctor.StatusWarn]
		fmt.Fprintf(w, "%s %d issue%s found\n",
			errorStyle.Render(ui.SymbolFail),
			total,
			pluralSuffix(total),
		)
	}

	fmt.Fprintln(w)
	return nil
}

// renderCheckResult renders a single check result.
func renderCheckResult(w io.Writer, result doctor.CheckResult, successStyle, errorStyle, warnStyle, mutedStyle lipgloss.Style) {
	var symbol string
	var style lipgloss.Style

	switch result.Status {
	case doctor.StatusPass:
		symbol = ui.SymbolSuccess
		style = successStyle
	case doctor.StatusWarn:
		symbol = ui.SymbolWarning
		style = warnStyle
	case doctor.StatusFail:
		symbol = ui.SymbolFail
		style = errorStyle
	}

	fmt.Fprintf(w, "  %s %s\n", style.Render(symbol), result.Message)

	if result.Suggestion != "" && result.Status != doctor.StatusPass {
		for _, line := range strings.Split(result.Suggestion, "\n") {
			fmt.Fprintf(w, "    %s\n", mutedStyle.Render(line))
		}
	}
}

// pluralSuffix returns "s" if n != 1.
func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
