// Package report renders the run's HTML deliverables and opens them in the
// system viewer.
package report

import (
	"path/filepath"
	"time"
)

// stampLayout is the timestamp embedded in artifact filenames.
const stampLayout = "20060102-150405"

// Paths holds the artifact locations for one run. All three share the same
// timestamp so a run's files sort together.
type Paths struct {
	Summary string
	Tree    string
	Log     string
}

// PathsFor computes the artifact paths for a run starting at t.
func PathsFor(dir string, t time.Time) Paths {
	stamp := t.Format(stampLayout)
	return Paths{
		Summary: filepath.Join(dir, "hwbench-report-"+stamp+".html"),
		Tree:    filepath.Join(dir, "hwbench-tree-"+stamp+".html"),
		Log:     filepath.Join(dir, "hwbench-"+stamp+".log"),
	}
}
