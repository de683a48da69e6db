package stress

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rileyhilliard/hwbench/internal/errors"
	"github.com/rileyhilliard/hwbench/internal/sensor"
)

// stressDisk writes a fixed-size buffer to a temporary file, syncing after
// every write to force physical I/O, until the deadline. The file is
// rewritten in place so the routine never consumes more than one buffer of
// disk space, and it is closed and removed on every exit path.
func (o *Orchestrator) stressDisk(ctx context.Context) (Result, error) {
	usage, err := o.diskStat(o.cfg.Stress.DiskPath)
	if err != nil {
		return Result{}, fmt.Errorf("read disk stats for %s: %w", o.cfg.Stress.DiskPath, err)
	}
	if usage.Free < o.cfg.Stress.MinFreeDisk {
		return Result{}, errors.New(errors.ErrResource,
			fmt.Sprintf("not enough free disk space on %s: %d MiB free, %d MiB required",
				o.cfg.Stress.DiskPath, usage.Free>>20, o.cfg.Stress.MinFreeDisk>>20),
			"Free up space on the target volume or change stress.disk_path")
	}

	f, err := os.CreateTemp(o.cfg.Stress.DiskPath, "hwbench-stress-*.tmp")
	if err != nil {
		return Result{}, fmt.Errorf("create stress file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(f.Name())
	}()

	o.log.Info("Disk load: writing %d MiB buffers to %s for %s",
		o.cfg.Stress.DiskBuffer>>20, f.Name(), o.cfg.Stress.DiskDuration)

	buf := make([]byte, o.cfg.Stress.DiskBuffer)
	rand.New(rand.NewSource(time.Now().UnixNano())).Read(buf)

	deadline := time.Now().Add(o.cfg.Stress.DiskDuration)
	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if _, err := f.WriteAt(buf, 0); err != nil {
			return Result{}, fmt.Errorf("write stress file: %w", err)
		}
		// Sync defeats the page cache so the volume actually sees the write.
		if err := f.Sync(); err != nil {
			return Result{}, fmt.Errorf("sync stress file: %w", err)
		}
	}

	readings, err := o.sample(ctx)
	if err != nil {
		return Result{}, err
	}
	return o.judge(Disk, sensor.DiskLoads(readings), o.cfg.Thresholds.DiskLoad, StatusHighUsage), nil
}
