package source

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/rileyhilliard/hwbench/internal/errors"
	"github.com/rileyhilliard/hwbench/internal/logger"
)

// ProbeError represents a failed probe with categorized failure reason.
type ProbeError struct {
	Address string
	Reason  ProbeFailReason
	Cause   error
}

// ProbeFailReason categorizes why a probe failed.
type ProbeFailReason int

const (
	ProbeFailUnknown ProbeFailReason = iota
	ProbeFailTimeout
	ProbeFailRefused
	ProbeFailUnreachable
)

// String returns a human-readable description of the failure reason.
func (r ProbeFailReason) String() string {
	switch r {
	case ProbeFailTimeout:
		return "connection timed out"
	case ProbeFailRefused:
		return "connection refused"
	case ProbeFailUnreachable:
		return "host unreachable"
	default:
		return "unknown error"
	}
}

func (e *ProbeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("probe %s failed: %s (%v)", e.Address, e.Reason, e.Cause)
	}
	return fmt.Sprintf("probe %s failed: %s", e.Address, e.Reason)
}

func (e *ProbeError) Unwrap() error {
	return e.Cause
}

// Probe performs a TCP connection test against the monitor port and returns
// the connection latency. It does not fetch any data.
func Probe(host string, port int, timeout time.Duration) (time.Duration, error) {
	address := net.JoinHostPort(host, strconv.Itoa(port))
	start := time.Now()

	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return 0, categorizeProbeError(address, err)
	}
	defer conn.Close()

	return time.Since(start), nil
}

// WaitReachable probes the monitor up to retries times with delay between
// attempts. It returns nil as soon as one probe succeeds; if every attempt
// fails it returns a SOURCE-coded error, which is fatal at startup.
func WaitReachable(host string, port int, timeout time.Duration, retries int, delay time.Duration, log logger.Logger) error {
	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		latency, err := Probe(host, port, timeout)
		if err == nil {
			log.Info("hardware monitor reachable at %s:%d (%s)", host, port, latency.Round(time.Millisecond))
			return nil
		}
		lastErr = err
		log.Warn("probe attempt %d/%d failed: %v", attempt, retries, err)
		if attempt < retries {
			time.Sleep(delay)
		}
	}

	return errors.WrapWithCode(lastErr, errors.ErrSource,
		fmt.Sprintf("Hardware monitor unreachable at %s:%d after %d attempts", host, port, retries),
		"Start the monitor and enable its web server, then run again")
}

// categorizeProbeError maps network errors to probe failure reasons.
func categorizeProbeError(address string, err error) *ProbeError {
	pe := &ProbeError{Address: address, Cause: err, Reason: ProbeFailUnknown}

	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		pe.Reason = ProbeFailTimeout
		return pe
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		pe.Reason = ProbeFailRefused
	case strings.Contains(msg, "no route to host"), strings.Contains(msg, "network is unreachable"):
		pe.Reason = ProbeFailUnreachable
	}
	return pe
}
