package sensor

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rileyhilliard/hwbench/internal/config"
	"github.com/rileyhilliard/hwbench/internal/logger"
	"github.com/rileyhilliard/hwbench/internal/source"
)

// Component name patterns used for threshold assignment and for selecting
// readings when stress routines sample their component.
var (
	CPUPattern  = regexp.MustCompile(`(?i)\b(cpu|processor|core)\b`)
	GPUPattern  = regexp.MustCompile(`(?i)\b(gpu|graphics|video)\b`)
	RAMPattern  = regexp.MustCompile(`(?i)\b(ram|memory)\b`)
	DiskPattern = regexp.MustCompile(`(?i)\b(disk|hdd|ssd|nvme|storage)\b`)
)

// valuePattern is what a cleaned value must look like to count as numeric.
var valuePattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// kindRules classify a reading by substring match against name + raw value,
// case-insensitive, in order; the first matching rule wins. Single-letter
// unit tokens ("v", "w") match aggressively on purpose: the rules reproduce
// the monitor's own labeling conventions, where the unit is embedded in the
// value string.
var kindRules = []struct {
	kind     Kind
	keywords []string
}{
	{KindTemperature, []string{"temperature", "°c"}},
	{KindLoad, []string{"load", "%"}},
	{KindVoltage, []string{"voltage", "v"}},
	{KindFan, []string{"fan", "rpm"}},
	{KindData, []string{"data", "gb", "mb", "used space", "available"}},
	{KindPower, []string{"power", "w"}},
	{KindClock, []string{"clock", "mhz"}},
}

// Classifier flattens raw sensor trees into classified readings using the
// configured thresholds.
type Classifier struct {
	thresholds config.ThresholdsConfig
	log        logger.Logger
}

// NewClassifier creates a classifier with the given thresholds.
func NewClassifier(thresholds config.ThresholdsConfig, log logger.Logger) *Classifier {
	if log == nil {
		log = logger.Noop()
	}
	return &Classifier{thresholds: thresholds, log: log}
}

// Flatten walks the tree in pre-order and returns one reading per leaf
// candidate whose value parses as numeric and whose kind is known. A leaf
// that fails either test is skipped with a warning; it never aborts the
// walk. An empty result is reported as a warning, not an error.
func (c *Classifier) Flatten(root *source.RawNode) []Reading {
	if root == nil {
		c.log.Warn("sensor tree is empty")
		return nil
	}

	var readings []Reading
	c.walk(root, &readings)

	if len(readings) == 0 {
		c.log.Warn("no classifiable sensor readings found in tree")
	}
	return readings
}

func (c *Classifier) walk(node *source.RawNode, out *[]Reading) {
	if node.IsLeafCandidate() {
		if r, ok := c.classify(node); ok {
			*out = append(*out, r)
		}
	}

	// Branch nodes are transparent containers: recurse regardless.
	for _, child := range node.Children {
		c.walk(child, out)
	}
}

// classify turns one leaf candidate into a reading. It returns false for
// leaves that are not numeric sensors (model names, serials) and for leaves
// whose kind cannot be determined.
func (c *Classifier) classify(node *source.RawNode) (Reading, bool) {
	value, ok := parseValue(node.Value)
	if !ok {
		c.log.Warn("skipping sensor %q: value %q is not numeric", node.Text, node.Value)
		return Reading{}, false
	}

	kind := classifyKind(node.Text, node.Value)
	if kind == KindUnknown {
		return Reading{}, false
	}

	r := Reading{
		Name:  node.Text,
		Kind:  kind,
		Value: round2(value),
		Raw:   node.Value,
	}
	if max, ok := c.thresholdFor(node.Text, kind); ok {
		r.Max = max
		r.HasMax = true
	}
	return r, true
}

// parseValue normalizes a raw value string and parses it as a float.
// All characters except digits, comma, and period are stripped, then commas
// become periods (decimal-separator locales).
func parseValue(raw string) (float64, bool) {
	var b strings.Builder
	for _, ch := range raw {
		if ch >= '0' && ch <= '9' || ch == ',' || ch == '.' {
			b.WriteRune(ch)
		}
	}
	cleaned := strings.ReplaceAll(b.String(), ",", ".")

	if !valuePattern.MatchString(cleaned) {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// classifyKind tests the kind rules against name and raw value together.
func classifyKind(name, raw string) Kind {
	haystack := strings.ToLower(name + " " + raw)
	for _, rule := range kindRules {
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				return rule.kind
			}
		}
	}
	return KindUnknown
}

// thresholdFor assigns the alert threshold for a reading, first match wins.
// GPU is tested before CPU: labels like "GPU Core" contain "Core" and would
// otherwise be claimed by the CPU rule.
func (c *Classifier) thresholdFor(name string, kind Kind) (float64, bool) {
	switch {
	case kind == KindTemperature && GPUPattern.MatchString(name):
		return c.thresholds.GPUTemp, true
	case kind == KindTemperature && CPUPattern.MatchString(name):
		return c.thresholds.CPUTemp, true
	case kind == KindLoad && DiskPattern.MatchString(name):
		return c.thresholds.DiskLoad, true
	case strings.Contains(strings.ToLower(name), "volt"):
		return c.thresholds.VoltageMax, true
	case kind == KindPower && strings.Contains(strings.ToLower(name), "power"):
		return c.thresholds.Power, true
	}
	return 0, false
}

// Select returns the readings of the given kind whose name matches the
// component pattern. Pass nil to match every name.
func Select(readings []Reading, kind Kind, pattern *regexp.Regexp) []Reading {
	var out []Reading
	for _, r := range readings {
		if r.Kind != kind {
			continue
		}
		if pattern != nil && !pattern.MatchString(r.Name) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// CPUTemperatures returns CPU temperature readings. Graphics sensors are
// excluded even when their labels contain "Core".
func CPUTemperatures(readings []Reading) []Reading {
	var out []Reading
	for _, r := range Select(readings, KindTemperature, CPUPattern) {
		if GPUPattern.MatchString(r.Name) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// GPUTemperatures returns GPU temperature readings.
func GPUTemperatures(readings []Reading) []Reading {
	return Select(readings, KindTemperature, GPUPattern)
}

// RAMLoads returns memory load readings.
func RAMLoads(readings []Reading) []Reading {
	return Select(readings, KindLoad, RAMPattern)
}

// DiskLoads returns disk load readings.
func DiskLoads(readings []Reading) []Reading {
	return Select(readings, KindLoad, DiskPattern)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
