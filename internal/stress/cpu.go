package stress

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/rileyhilliard/hwbench/internal/sensor"
)

// joinMargin is how long workers get to notice the deadline before the
// orchestrator gives up waiting on them.
const joinMargin = 2 * time.Second

// stressCPU spins one worker per logical CPU on square roots of
// pseudo-random operands until the configured deadline, then samples CPU
// temperatures. Workers are cooperative: each loop iteration checks the
// cancelled context, so the bounded join below is a safety net rather than
// the primary stop mechanism.
func (o *Orchestrator) stressCPU(ctx context.Context) (Result, error) {
	workers := o.numCPU()
	o.log.Info("CPU load: %d workers for %s", workers, o.cfg.Stress.CPUDuration)

	loadCtx, cancel := context.WithTimeout(ctx, o.cfg.Stress.CPUDuration)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			burn(loadCtx, seed)
		}(int64(i))
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(o.cfg.Stress.CPUDuration + joinMargin):
		// loadCtx expired long before this fires, so the workers were
		// already told to stop; abandon them. They hold no resources
		// and exit on their next context check.
		o.log.Warn("CPU workers did not stop within %s past the deadline", joinMargin)
	}

	readings, err := o.sample(ctx)
	if err != nil {
		return Result{}, err
	}
	return o.judge(CPU, sensor.CPUTemperatures(readings), o.cfg.Thresholds.CPUTemp, StatusCritical), nil
}

// burn keeps one core busy until the context is cancelled.
func burn(ctx context.Context, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	sink := 0.0
	for {
		select {
		case <-ctx.Done():
			_ = sink
			return
		default:
			sink += math.Sqrt(rng.Float64() * 1e6)
		}
	}
}
