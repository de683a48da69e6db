// Package alert scans flattened sensor readings against their thresholds
// and merges in stress-test failures.
package alert

import (
	"fmt"

	"github.com/rileyhilliard/hwbench/internal/config"
	"github.com/rileyhilliard/hwbench/internal/sensor"
)

// Evaluate produces the ordered alert list for a run: one alert per
// threshold violation (in reading order), then the stress-test error
// strings verbatim (in the order the tests ran).
//
// A voltage reading is checked twice, independently: once against its own
// max threshold and once against the acceptable voltage range. Both alerts
// can fire for the same reading.
func Evaluate(readings []sensor.Reading, stressErrors []string, thresholds config.ThresholdsConfig) []string {
	var alerts []string

	for _, r := range readings {
		if r.HasMax && r.Value > r.Max {
			alerts = append(alerts, fmt.Sprintf("%s is %.2f %s, above the %.2f %s threshold",
				r.Name, r.Value, r.Unit(), r.Max, r.Unit()))
		}
		if r.Kind == sensor.KindVoltage && (r.Value < thresholds.VoltageMin || r.Value > thresholds.VoltageMax) {
			alerts = append(alerts, fmt.Sprintf("%s is %.2f V, outside the acceptable range %.2f-%.2f V",
				r.Name, r.Value, thresholds.VoltageMin, thresholds.VoltageMax))
		}
	}

	alerts = append(alerts, stressErrors...)
	return alerts
}
