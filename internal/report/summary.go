package report

import (
	"html/template"
	"os"
	"strings"
	"time"

	"github.com/rileyhilliard/hwbench/internal/errors"
	"github.com/rileyhilliard/hwbench/internal/sensor"
	"github.com/rileyhilliard/hwbench/internal/stress"
)

// SummaryData feeds the summary report template.
type SummaryData struct {
	GeneratedAt time.Time
	Hostname    string
	Results     []stress.Result
	Groups      []ReadingGroup
	Alerts      []string
}

// ReadingGroup is one kind's worth of readings, in classification order.
type ReadingGroup struct {
	Kind     sensor.Kind
	Readings []sensor.Reading
}

// GroupByKind buckets readings by kind, preserving reading order within a
// group. Groups appear in kind declaration order so reports are stable
// between runs.
func GroupByKind(readings []sensor.Reading) []ReadingGroup {
	order := []sensor.Kind{
		sensor.KindTemperature,
		sensor.KindLoad,
		sensor.KindVoltage,
		sensor.KindFan,
		sensor.KindData,
		sensor.KindPower,
		sensor.KindClock,
	}

	buckets := make(map[sensor.Kind][]sensor.Reading)
	for _, r := range readings {
		buckets[r.Kind] = append(buckets[r.Kind], r)
	}

	var groups []ReadingGroup
	for _, k := range order {
		if rs := buckets[k]; len(rs) > 0 {
			groups = append(groups, ReadingGroup{Kind: k, Readings: rs})
		}
	}
	return groups
}

var summaryTmpl = template.Must(template.New("summary").Funcs(template.FuncMap{
	"statusClass": func(s stress.Status) string {
		switch s {
		case stress.StatusOK:
			return "ok"
		case stress.StatusCritical, stress.StatusError:
			return "critical"
		default:
			return "warning"
		}
	},
	"lower": strings.ToLower,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>hwbench report</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2em auto; max-width: 960px; color: #222; }
h1 { border-bottom: 2px solid #444; padding-bottom: .3em; }
h2 { margin-top: 1.6em; }
table { border-collapse: collapse; width: 100%; margin: .8em 0; }
th, td { border: 1px solid #ccc; padding: .4em .7em; text-align: left; }
th { background: #f0f0f0; }
.ok { color: #1a7f37; }
.warning { color: #9a6700; }
.critical { color: #cf222e; font-weight: bold; }
.alerts { background: #fff1f0; border: 1px solid #cf222e; border-radius: 4px; padding: .8em 1.2em; }
.alerts li { color: #cf222e; }
.noalerts { background: #f0fff4; border: 1px solid #1a7f37; border-radius: 4px; padding: .8em 1.2em; color: #1a7f37; }
footer { margin-top: 2em; color: #888; font-size: .85em; }
</style>
</head>
<body>
<h1>Hardware benchmark report</h1>
<p>{{.Hostname}} &mdash; generated {{.GeneratedAt.Format "2006-01-02 15:04:05"}}</p>

{{if .Alerts}}
<div class="alerts">
<strong>{{len .Alerts}} alert(s)</strong>
<ul>
{{range .Alerts}}<li>{{.}}</li>
{{end}}</ul>
</div>
{{else}}
<div class="noalerts">All readings within thresholds.</div>
{{end}}

<h2>Stress test results</h2>
<table>
<tr><th>Component</th><th>Status</th><th>Peak</th></tr>
{{range .Results}}
<tr>
<td>{{.Component}}</td>
<td class="{{statusClass .Status}}">{{.Status}}</td>
<td>{{if .HasMetric}}{{printf "%.2f" .Metric}}{{else}}&mdash;{{end}}</td>
</tr>
{{end}}
</table>

{{range .Groups}}
<h2>{{.Kind}}</h2>
<table>
<tr><th>Sensor</th><th>Value</th><th>Threshold</th><th>Reported</th></tr>
{{range .Readings}}
<tr>
<td>{{.Name}}</td>
<td{{if and .HasMax (gt .Value .Max)}} class="critical"{{end}}>{{printf "%.2f" .Value}} {{.Unit}}</td>
<td>{{if .HasMax}}{{printf "%.2f" .Max}} {{.Unit}}{{else}}&mdash;{{end}}</td>
<td>{{.Raw}}</td>
</tr>
{{end}}
</table>
{{end}}

<footer>hwbench</footer>
</body>
</html>
`))

// RenderSummary renders the summary report to HTML. A render failure is
// REPORT-coded: the summary report is the run's primary deliverable, so the
// caller treats it as fatal.
func RenderSummary(data SummaryData) (string, error) {
	var b strings.Builder
	if err := summaryTmpl.Execute(&b, data); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrReport,
			"Failed to render summary report", "")
	}
	return b.String(), nil
}

// WriteSummary renders and writes the summary report to path.
func WriteSummary(path string, data SummaryData) error {
	html, err := RenderSummary(data)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrReport,
			"Failed to write summary report to "+path,
			"Check output directory permissions")
	}
	return nil
}
