package metrics

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/sirupsen/logrus"
)

// StartHostCollector samples host CPU and memory usage into the system
// gauges until the context is cancelled.
func StartHostCollector(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sampleHost()
			}
		}
	}()
}

func sampleHost() {
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		SystemCPUPercent.Set(percents[0])
	} else if err != nil {
		logrus.Debugf("metrics: cpu sample failed: %v", err)
	}

	if stats, err := mem.VirtualMemory(); err == nil {
		SystemMemPercent.Set(stats.UsedPercent)
	} else {
		logrus.Debugf("metrics: mem sample failed: %v", err)
	}
}
