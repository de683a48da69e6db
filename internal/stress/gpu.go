package stress

import (
	"context"
	"time"

	"github.com/rileyhilliard/hwbench/internal/sensor"
)

// gpuPollInterval is the gap between GPU temperature samples.
const gpuPollInterval = 2 * time.Second

// stressGPU generates no load: there is no portable way to synthesize GPU
// work from here. It polls GPU temperatures across the configured duration
// and judges the peak. Machines without exposed GPU sensors (integrated
// graphics, mostly) come back Unavailable, which is expected and logged as
// a warning by judge.
func (o *Orchestrator) stressGPU(ctx context.Context) (Result, error) {
	var peak []sensor.Reading

	deadline := time.Now().Add(o.cfg.Stress.GPUDuration)
	for {
		readings, err := o.sample(ctx)
		if err != nil {
			return Result{}, err
		}
		peak = append(peak, sensor.GPUTemperatures(readings)...)

		if !time.Now().Add(gpuPollInterval).Before(deadline) {
			break
		}
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-time.After(gpuPollInterval):
		}
	}

	return o.judge(GPU, peak, o.cfg.Thresholds.GPUTemp, StatusCritical), nil
}
