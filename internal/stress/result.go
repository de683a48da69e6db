// Package stress runs bounded synthetic load against CPU, RAM, disk, and
// GPU, sampling sensor readings afterwards to judge how the hardware coped.
// Each routine is isolated: a failure is recorded and the next routine runs
// regardless.
package stress

// Component identifies the hardware a stress routine targets.
type Component int

const (
	CPU Component = iota
	RAM
	Disk
	GPU
)

// String returns the component name.
func (c Component) String() string {
	switch c {
	case CPU:
		return "CPU"
	case RAM:
		return "RAM"
	case Disk:
		return "Disk"
	case GPU:
		return "GPU"
	default:
		return "Unknown"
	}
}

// Status is the outcome of one stress routine.
type Status int

const (
	// StatusOK means the component stayed within its threshold.
	StatusOK Status = iota
	// StatusCritical means a temperature exceeded its threshold.
	StatusCritical
	// StatusHighUsage means a load reading exceeded its threshold.
	StatusHighUsage
	// StatusUnavailable means no matching sensor readings were found.
	StatusUnavailable
	// StatusError means the routine itself failed.
	StatusError
)

// String returns a human-readable status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusCritical:
		return "Critical"
	case StatusHighUsage:
		return "High usage"
	case StatusUnavailable:
		return "Unavailable"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Result is the immutable outcome of one stress routine. Metric is the max
// temperature or max load observed after the load phase, depending on the
// component; it is only meaningful when HasMetric is set.
type Result struct {
	Component Component
	Metric    float64
	HasMetric bool
	Status    Status
}
