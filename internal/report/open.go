package report

import (
	"fmt"
	"os/exec"
	"runtime"
)

// openCommand returns the platform launcher for a file, or an error when
// the platform has none we know of.
var openCommand = func(path string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path), nil
	case "linux":
		return exec.Command("xdg-open", path), nil
	default:
		return nil, fmt.Errorf("no file opener known for %s", runtime.GOOS)
	}
}

// Open launches the system's default viewer on the given file. A missing
// opener is not fatal: the report is already on disk, so callers log the
// error as a warning and move on.
func Open(path string) error {
	cmd, err := openCommand(path)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	// The viewer outlives us; don't wait for it.
	go func() { _ = cmd.Wait() }()
	return nil
}
