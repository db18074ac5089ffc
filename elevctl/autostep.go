// autostep.go
// Purpose: Periodic step timer. While armed it issues one processStep per
// tick, never more than one at a time; ticks that find a step still in flight
// are dropped.
package elevctl

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

type autoStepper struct {
	interval time.Duration
	step     func(ctx context.Context) error
	inflight *semaphore.Weighted
	log      zerolog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	// Detached step goroutines started by tick.
	steps sync.WaitGroup
}

func newAutoStepper(interval time.Duration, step func(ctx context.Context) error, log zerolog.Logger) *autoStepper {
	return &autoStepper{
		interval: interval,
		step:     step,
		inflight: semaphore.NewWeighted(1),
		log:      log,
	}
}

// Start arms the timer. Requests are issued under reqCtx, so stopping the
// timer does not abort a step already on the wire. Returns false if already
// armed or if reqCtx is already done.
func (a *autoStepper) Start(reqCtx context.Context) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil || reqCtx.Err() != nil {
		return false
	}
	loopCtx, cancel := context.WithCancel(reqCtx)
	done := make(chan struct{})
	a.cancel = cancel
	a.done = done
	go a.run(loopCtx, reqCtx, done)
	a.log.Info().Dur("interval", a.interval).Msg("auto-step armed")
	return true
}

// Stop disarms the timer and waits for the loop to exit. Idempotent.
func (a *autoStepper) Stop() {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	a.log.Info().Msg("auto-step disarmed")
}

// Wait blocks until every step started by a tick has returned. Call after Stop.
func (a *autoStepper) Wait() { a.steps.Wait() }

func (a *autoStepper) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cancel != nil
}

func (a *autoStepper) run(loopCtx, reqCtx context.Context, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-loopCtx.Done():
			return
		case <-ticker.C:
			a.tick(reqCtx)
		}
	}
}

func (a *autoStepper) tick(reqCtx context.Context) {
	if !a.inflight.TryAcquire(1) {
		a.log.Debug().Msg("previous step still in flight; tick skipped")
		return
	}
	a.steps.Add(1)
	go func() {
		defer a.steps.Done()
		defer a.inflight.Release(1)
		if err := a.step(reqCtx); err != nil {
			a.log.Warn().Err(err).Msg("auto-step failed; timer keeps running")
		}
	}()
}

// EnableAuto arms the auto-step timer. It refuses until a snapshot has been loaded.
func (c *Controller) EnableAuto() error {
	if c.ctx.Err() != nil {
		return ErrClosed
	}
	if !c.store.Loaded() {
		return ErrNotLoaded
	}
	if !c.auto.Start(c.ctx) && c.ctx.Err() != nil {
		return ErrClosed
	}
	return nil
}

func (c *Controller) DisableAuto() { c.auto.Stop() }

func (c *Controller) AutoRunning() bool { return c.auto.Running() }

// ToggleAuto flips the scheduler and reports whether it is now running.
func (c *Controller) ToggleAuto() (bool, error) {
	if c.auto.Running() {
		c.auto.Stop()
		return false, nil
	}
	if err := c.EnableAuto(); err != nil {
		return false, err
	}
	return true, nil
}

// Step advances the simulation by one tick. It shares the auto-step
// single-flight guard and fails fast with ErrStepInFlight instead of queueing.
func (c *Controller) Step(ctx context.Context) error {
	if !c.auto.inflight.TryAcquire(1) {
		return ErrStepInFlight
	}
	defer c.auto.inflight.Release(1)
	return c.processStep(ctx)
}

func (c *Controller) processStep(ctx context.Context) error {
	return c.run(ctx, "processStep", c.sim.ProcessStep)
}
