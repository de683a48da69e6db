// Package sensor flattens the raw sensor tree into classified readings.
// It walks the loosely-typed tree from the monitor endpoint, parses leaf
// values, and assigns each reading a kind, a display unit, and an alert
// threshold where one applies.
package sensor

// Kind is the semantic category of a sensor reading.
type Kind int

const (
	KindUnknown Kind = iota
	KindTemperature
	KindLoad
	KindVoltage
	KindFan
	KindData
	KindPower
	KindClock
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindTemperature:
		return "Temperature"
	case KindLoad:
		return "Load"
	case KindVoltage:
		return "Voltage"
	case KindFan:
		return "Fan"
	case KindData:
		return "Data"
	case KindPower:
		return "Power"
	case KindClock:
		return "Clock"
	default:
		return "Unknown"
	}
}

// Unit returns the display unit for this kind. The unit is fully determined
// by the kind; the unit embedded in the raw value string is never reused.
func (k Kind) Unit() string {
	switch k {
	case KindTemperature:
		return "°C"
	case KindLoad:
		return "%"
	case KindVoltage:
		return "V"
	case KindFan:
		return "RPM"
	case KindData:
		return "GB"
	case KindPower:
		return "W"
	case KindClock:
		return "MHz"
	default:
		return ""
	}
}

// Reading is a single classified sensor value. Readings are created fresh on
// every poll and never mutated afterwards.
type Reading struct {
	Name   string  // node label as reported by the source
	Kind   Kind    // semantic category
	Value  float64 // parsed value, rounded to 2 decimal places
	Max    float64 // alert threshold, valid only when HasMax
	HasMax bool
	Raw    string // original value string, preserved for display
}

// Unit returns the display unit for the reading's kind.
func (r Reading) Unit() string {
	return r.Kind.Unit()
}

// MaxValue returns the largest value among the readings, or false if the
// slice is empty.
func MaxValue(readings []Reading) (float64, bool) {
	if len(readings) == 0 {
		return 0, false
	}
	max := readings[0].Value
	for _, r := range readings[1:] {
		if r.Value > max {
			max = r.Value
		}
	}
	return max, true
}
