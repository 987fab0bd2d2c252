package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thisisjab/dbir/entity"
)

// UnitSource provides DBIR source units to the engine. Provide returns when
// the source is exhausted or ctx is done.
type UnitSource interface {
	Name() string
	Provide(ctx context.Context, units chan<- entity.Unit) error
}

type Config struct {
	Sources map[string]UnitSource
	Sink    Sink
	// SinkFlushInterval is how often buffered results are flushed. Zero
	// disables scheduled flushing.
	SinkFlushInterval time.Duration
	// SinkBufferMaxSize is how many results are buffered before a flush.
	// Zero disables buffering.
	SinkBufferMaxSize uint
	UnitsBufferSize   uint
	WorkersCount      uint
	// LogDiagnostics logs every lexer diagnostic as it is produced.
	LogDiagnostics bool
}

func (c Config) validate() error {
	if len(c.Sources) == 0 {
		return errors.New("no unit sources are configured")
	}

	if c.Sink == nil {
		return errors.New("no sink is configured")
	}

	if c.WorkersCount == 0 {
		return errors.New("workers count cannot be zero")
	}

	return nil
}

// Stats counts the units compiled by an engine.
type Stats struct {
	Compiled uint64
	Failed   uint64
}

// Engine reads units from every source, compiles them on a worker pool and
// hands the results to the sink.
type Engine struct {
	cfg    Config
	logger *slog.Logger

	compiled atomic.Uint64
	failed   atomic.Uint64
}

func New(cfg Config, logger *slog.Logger) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Engine{cfg: cfg, logger: logger}, nil
}

// Run returns once every source is exhausted and every result has been
// flushed, or when ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	units := e.consumeUnits(ctx)
	results := make(chan entity.CompiledUnit, e.cfg.WorkersCount)

	wm := newWorkerManager(e.logger, e.cfg.WorkersCount, e.cfg.LogDiagnostics)
	go func() {
		wm.run(ctx, units, results)
		close(results)
	}()

	sm := newSinkManager(e.logger, e.cfg.Sink, e.cfg.SinkBufferMaxSize, e.cfg.SinkFlushInterval)

	// The sink manager gets its own context so that a clean finish still
	// flushes what is buffered.
	sinkCtx, stopSink := context.WithCancel(context.WithoutCancel(ctx))
	var wg sync.WaitGroup
	wg.Go(func() { sm.run(sinkCtx) })

	stop := func() {
		stopSink()
		wg.Wait()
	}

	for {
		select {
		case <-ctx.Done():
			stop()
			return ctx.Err()
		case u, ok := <-results:
			if !ok {
				stop()
				if err := ctx.Err(); err != nil {
					return err
				}
				return sm.err()
			}

			e.compiled.Add(1)
			if u.Failed() {
				e.failed.Add(1)
			}

			sm.add(sinkCtx, u)
		}
	}
}

func (e *Engine) Stats() Stats {
	return Stats{Compiled: e.compiled.Load(), Failed: e.failed.Load()}
}

func (e *Engine) consumeUnits(ctx context.Context) <-chan entity.Unit {
	units := make(chan entity.Unit, e.cfg.UnitsBufferSize)
	e.logger.Debug("created incoming units channel.", "size", e.cfg.UnitsBufferSize)

	var sourceWg sync.WaitGroup

	for name, src := range e.cfg.Sources {
		sourceWg.Go(func() {
			err := src.Provide(ctx, units)
			if err != nil && !errors.Is(err, context.Canceled) {
				e.logger.Error("unit source failed.", "name", name, "error", err)
			}
		})
	}

	go func() {
		sourceWg.Wait()
		close(units)
	}()

	return units
}
