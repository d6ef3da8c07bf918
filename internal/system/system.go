// Package system probes the host to size the decode worker pool.
package system

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// rough per-worker budget for decoded frames, in bytes
const perWorkerMemory = 256 << 20

// RecommendedWorkers returns how many images may be decoded in parallel,
// bounded by logical CPU count and available memory.
func RecommendedWorkers() int {
	workers, err := cpu.Counts(true)
	if err != nil || workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		byMemory := int(vm.Available / perWorkerMemory)
		if byMemory < 1 {
			byMemory = 1
		}
		if byMemory < workers {
			workers = byMemory
		}
	}

	return workers
}
