package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/thisisjab/dbir/entity"
)

// Sink receives compiled units. Implementations must be safe for
// concurrent use.
type Sink interface {
	Write(ctx context.Context, units ...entity.CompiledUnit) error
}

// sinkManager buffers compiled units and flushes them to the sink when the
// buffer is full, on every tick, and when it stops.
type sinkManager struct {
	sink   Sink
	logger *slog.Logger

	mu     sync.Mutex
	buffer []entity.CompiledUnit
	errs   []error
	wg     sync.WaitGroup

	bufferMaxSize uint
	flushInterval time.Duration
}

func newSinkManager(logger *slog.Logger, sink Sink, bufferMaxSize uint, flushInterval time.Duration) *sinkManager {
	return &sinkManager{
		sink:          sink,
		logger:        logger,
		buffer:        make([]entity.CompiledUnit, 0, bufferMaxSize),
		bufferMaxSize: bufferMaxSize,
		flushInterval: flushInterval,
	}
}

func (sm *sinkManager) run(ctx context.Context) {
	var tick <-chan time.Time

	if sm.flushInterval > 0 {
		ticker := time.NewTicker(sm.flushInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			sm.flush(context.WithoutCancel(ctx))
			sm.wg.Wait()
			return
		case <-tick:
			sm.flush(ctx)
		}
	}
}

func (sm *sinkManager) add(ctx context.Context, units ...entity.CompiledUnit) {
	if len(units) == 0 {
		return
	}

	var toFlush []entity.CompiledUnit

	sm.mu.Lock()
	sm.buffer = append(sm.buffer, units...)
	if uint(len(sm.buffer)) >= sm.bufferMaxSize {
		toFlush = sm.swap()
	}
	sm.mu.Unlock()

	if toFlush != nil {
		sm.write(ctx, toFlush)
	}
}

func (sm *sinkManager) flush(ctx context.Context) {
	sm.mu.Lock()
	toFlush := sm.swap()
	sm.mu.Unlock()

	if toFlush != nil {
		sm.write(ctx, toFlush)
	}
}

// swap must be called with mu held.
func (sm *sinkManager) swap() []entity.CompiledUnit {
	if len(sm.buffer) == 0 {
		return nil
	}
	out := sm.buffer
	sm.buffer = make([]entity.CompiledUnit, 0, sm.bufferMaxSize)
	return out
}

func (sm *sinkManager) write(ctx context.Context, units []entity.CompiledUnit) {
	sm.wg.Go(func() {
		if err := sm.sink.Write(ctx, units...); err != nil {
			sm.logger.Error("failed to write compiled units.", "count", len(units), "error", err)

			sm.mu.Lock()
			sm.errs = append(sm.errs, err)
			sm.mu.Unlock()
			return
		}

		sm.logger.Debug("wrote compiled units.", "count", len(units))
	})
}

// err joins every sink error seen so far.
func (sm *sinkManager) err() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return errors.Join(sm.errs...)
}
