package health

import (
	"context"
	"os"
	"runtime"
	"time"
)

// Collect returns a health snapshot for the current setup.
func Collect(ctx context.Context, opts Options) Snapshot {
	opts = opts.normalize()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	s := Snapshot{
		Status: "healthy",
		Runtime: RuntimeInfo{
			Version: runtime.Version(),
			OS:      runtime.GOOS,
			Arch:    runtime.GOARCH,
			CPUs:    runtime.NumCPU(),
		},
		Memory: MemoryInfo{
			AllocMB: float64(mem.Alloc) / 1024 / 1024,
			SysMB:   float64(mem.Sys) / 1024 / 1024,
			NumGC:   mem.NumGC,
		},
		Config:    ConfigInfo{Path: opts.ConfigPath},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if opts.ConfigPath != "" {
		if _, err := os.Stat(opts.ConfigPath); err == nil {
			s.Config.Exists = true
		}
	}

	if opts.Endpoint != "" {
		s.Endpoint = inspectEndpoint(ctx, opts.Endpoint, opts.Probe, opts.Timeout)
		if s.Endpoint.Error != "" || (s.Endpoint.Reachable != nil && !*s.Endpoint.Reachable) {
			s.Status = "degraded"
		}
	}

	if opts.CachePath != "" {
		s.Cache = inspectCacheFile(ctx, opts.CachePath)
		if s.Cache.Error != "" {
			s.Status = "degraded"
		}
	}

	return s
}
