package forecast

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	maxExecutorWorkers = 16
	// memoryPressurePercent halves the worker pool when host memory use is
	// already above it; the fan-out duplicates per-method series access.
	memoryPressurePercent = 85.0
)

// Executor runs independent pure-function tasks concurrently and awaits all
// of them. Submission or task failure triggers a deterministic sequential
// fallback over the exact same closures, so each algorithm has one source of
// truth regardless of which path executed it.
type Executor struct {
	workers int
	logger  *logrus.Logger
}

// NewExecutor sizes the worker pool from the host's CPU count and memory
// headroom.
func NewExecutor(logger *logrus.Logger, maxWorkers int) *Executor {
	workers := optimalWorkers()
	if maxWorkers > 0 && workers > maxWorkers {
		workers = maxWorkers
	}
	return &Executor{workers: workers, logger: logger}
}

func optimalWorkers() int {
	workers := runtime.NumCPU()
	if count, err := cpu.Counts(true); err == nil && count > 0 {
		workers = count
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm.UsedPercent > memoryPressurePercent {
		workers /= 2
	}
	if workers < 1 {
		workers = 1
	}
	if workers > maxExecutorWorkers {
		workers = maxExecutorWorkers
	}
	return workers
}

// Workers returns the configured pool size.
func (e *Executor) Workers() int {
	return e.workers
}

// RunAll executes tasks concurrently and waits for every one. Panics are
// recovered into errors so a single bad task cannot take down the host.
func (e *Executor) RunAll(ctx context.Context, tasks []func() error) error {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for _, task := range tasks {
		task := task
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("forecast task panicked: %v", r)
				}
			}()
			return task()
		})
	}
	return g.Wait()
}

// RunSequential executes the same task closures in order, in-process. This
// is the mandatory fallback path when concurrent dispatch fails.
func (e *Executor) RunSequential(tasks []func() error) error {
	for i, task := range tasks {
		err := func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("forecast task panicked: %v", r)
				}
			}()
			return task()
		}()
		if err != nil {
			return fmt.Errorf("sequential task %d failed: %w", i, err)
		}
	}
	return nil
}
