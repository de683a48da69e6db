// Package source fetches the raw sensor tree from the local
// hardware-monitor HTTP endpoint and probes its reachability at startup.
package source

// RawNode is one node of the sensor tree as served by the monitor's
// /data.json endpoint. The tree is loosely typed: no shape beyond the
// leaf/branch distinction may be assumed.
type RawNode struct {
	Text     string     `json:"Text"`
	Value    string     `json:"Value"`
	Min      string     `json:"Min"`
	Max      string     `json:"Max"`
	Children []*RawNode `json:"Children"`
}

// IsLeafCandidate reports whether this node is eligible for classification:
// no children and both a name and a value present. Min and Max are display
// strings for the tree report only and play no part in this decision.
func (n *RawNode) IsLeafCandidate() bool {
	return len(n.Children) == 0 && n.Text != "" && n.Value != ""
}
