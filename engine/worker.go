package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/thisisjab/dbir/entity"
	"github.com/thisisjab/dbir/frontend/diagnostic"
)

type workerManager struct {
	logger         *slog.Logger
	workersCount   uint
	logDiagnostics bool
	wg             sync.WaitGroup
}

func newWorkerManager(logger *slog.Logger, workersCount uint, logDiagnostics bool) *workerManager {
	return &workerManager{
		logger:         logger,
		workersCount:   workersCount,
		logDiagnostics: logDiagnostics,
	}
}

// run compiles units until the channel is closed and drained or ctx is done.
func (wm *workerManager) run(ctx context.Context, units <-chan entity.Unit, results chan<- entity.CompiledUnit) {
	work := func(workerID uint) {
		for {
			select {
			case <-ctx.Done():
				return
			case u, ok := <-units:
				if !ok {
					return
				}

				var reporter diagnostic.Reporter
				if wm.logDiagnostics {
					reporter = diagnostic.NewLogReporter(wm.logger, "source", u.Source, "unit", u.Name)
				}

				compiled := Compile(u, reporter)

				wm.logger.Debug("compiled unit.", "worker_id", workerID, "unit_id", compiled.ID, "status", compiled.Status)

				select {
				case results <- compiled:
				case <-ctx.Done():
					return
				}
			}
		}
	}

	for i := range wm.workersCount {
		wm.wg.Go(func() { work(i) })
	}

	wm.wg.Wait()
}
