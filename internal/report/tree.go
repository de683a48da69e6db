package report

import (
	"html/template"
	"os"
	"strings"
	"time"

	"github.com/rileyhilliard/hwbench/internal/errors"
	"github.com/rileyhilliard/hwbench/internal/source"
)

// TreeData feeds the raw-tree report template.
type TreeData struct {
	GeneratedAt time.Time
	Root        *source.RawNode
}

var treeTmpl = template.Must(template.New("tree").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>hwbench sensor tree</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2em auto; max-width: 960px; color: #222; }
h1 { border-bottom: 2px solid #444; padding-bottom: .3em; }
ul { list-style: none; border-left: 1px dotted #bbb; padding-left: 1.2em; }
.name { font-weight: 600; }
.value { color: #0550ae; }
.range { color: #888; font-size: .85em; }
footer { margin-top: 2em; color: #888; font-size: .85em; }
</style>
</head>
<body>
<h1>Raw sensor tree</h1>
<p>generated {{.GeneratedAt.Format "2006-01-02 15:04:05"}}</p>
{{template "node" .Root}}
<footer>hwbench</footer>
</body>
</html>
{{define "node"}}
<ul>
<li>
<span class="name">{{.Text}}</span>
{{if .Value}}<span class="value">{{.Value}}</span>{{end}}
{{if or .Min .Max}}<span class="range">(min {{.Min}}, max {{.Max}})</span>{{end}}
{{range .Children}}{{template "node" .}}{{end}}
</li>
</ul>
{{end}}
`))

// RenderTree renders the raw sensor tree report. Min and Max are shown as
// reported by the source; they are display strings only.
func RenderTree(data TreeData) (string, error) {
	var b strings.Builder
	if err := treeTmpl.Execute(&b, data); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrReport,
			"Failed to render sensor tree report", "")
	}
	return b.String(), nil
}

// WriteTree renders and writes the tree report to path.
func WriteTree(path string, data TreeData) error {
	html, err := RenderTree(data)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrReport,
			"Failed to write sensor tree report to "+path,
			"Check output directory permissions")
	}
	return nil
}
