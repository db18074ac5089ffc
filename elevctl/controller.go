// controller.go
// Purpose: Owns the client-side application state: configuration draft,
// manual/random call drafts, the snapshot store and the auto-step scheduler.
// All mutation goes through the methods below.
package elevctl

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"elevsim/common"
	"elevsim/elevstate"
)

var (
	ErrNotLoaded    = errors.New("no snapshot loaded yet")
	ErrStepInFlight = errors.New("a step is already in flight")
	ErrClosed       = errors.New("controller closed")
)

// Simulator is the remote simulator as seen by the controller.
type Simulator interface {
	GetState(ctx context.Context) (*common.SimulationState, error)
	UpdateConfiguration(ctx context.Context, cfg common.Configuration) (*common.SimulationState, error)
	Reset(ctx context.Context) (*common.SimulationState, error)
	CallElevator(ctx context.Context, fromFloor, toFloor int) (*common.SimulationState, error)
	GenerateRandomCalls(ctx context.Context, n int) (*common.SimulationState, error)
	ProcessStep(ctx context.Context) (*common.SimulationState, error)
}

type Controller struct {
	sim      Simulator
	store    *elevstate.Store
	defaults common.Configuration
	log      zerolog.Logger

	// Cancelled by Close; parent of every request and of the auto-step loop.
	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	draft       common.Configuration
	manualFrom  int
	manualTo    int
	randomCount int

	auto *autoStepper
}

func New(sim Simulator, cfg common.Config, log zerolog.Logger) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	defaults := cfg.Defaults.Clamped()
	interval := cfg.AutoStepInterval
	if interval <= 0 {
		interval = time.Second
	}
	c := &Controller{
		sim:      sim,
		store:    elevstate.New(),
		defaults: defaults,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
		draft:    defaults,
	}
	c.resetCallDraftsLocked()
	c.auto = newAutoStepper(interval, c.processStep, log.With().Str("component", "autostep").Logger())
	return c
}

// Close aborts outstanding requests, disarms the auto-step timer and waits
// for its loop and any step it started to return. Safe to call more than once.
func (c *Controller) Close() {
	c.cancel()
	c.auto.Stop()
	c.auto.Wait()
}

// State returns a copy of the last snapshot, or false before the first load.
func (c *Controller) State() (*common.SimulationState, bool) {
	return c.store.Snapshot()
}

func (c *Controller) Loaded() bool { return c.store.Loaded() }

func (c *Controller) Load(ctx context.Context) error {
	return c.run(ctx, "getState", c.sim.GetState)
}

func (c *Controller) Refresh(ctx context.Context) error { return c.Load(ctx) }

// ServerReset asks the simulator to reset itself with its current configuration.
func (c *Controller) ServerReset(ctx context.Context) error {
	return c.run(ctx, "reset", c.sim.Reset)
}

// run issues one command and installs its snapshot if it is still the newest.
// On failure the store is left untouched and the error is logged and returned.
// A response overtaken by a newer one is dropped and run still returns nil:
// the command reached the simulator, its effect shows in the newer snapshot.
func (c *Controller) run(ctx context.Context, op string, fn func(context.Context) (*common.SimulationState, error)) error {
	if c.ctx.Err() != nil {
		return ErrClosed
	}
	ctx, stop := mergeCancel(ctx, c.ctx)
	defer stop()

	ticket := c.store.Ticket()
	st, err := fn(ctx)
	if err != nil {
		c.log.Error().Err(err).Str("op", op).Msg("command failed; keeping last snapshot")
		return err
	}
	if !c.store.Replace(ticket, st) {
		c.log.Info().Str("op", op).Uint64("ticket", ticket).Msg("stale response discarded")
		return nil
	}
	c.log.Debug().Str("op", op).Uint64("ticket", ticket).Msg("snapshot installed")
	return nil
}

// mergeCancel derives a context from ctx that is also cancelled with owner.
func mergeCancel(ctx, owner context.Context) (context.Context, context.CancelFunc) {
	merged, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(owner, cancel)
	return merged, func() {
		stop()
		cancel()
	}
}
