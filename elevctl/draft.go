package elevctl

import (
	"context"
	"strconv"

	"elevsim/common"
)

// ManualCallDraft is the pending from/to pair of the manual call form.
type ManualCallDraft struct {
	FromFloor int
	ToFloor   int
}

func (c *Controller) Draft() common.Configuration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Controller) Defaults() common.Configuration { return c.defaults }

func (c *Controller) ManualCallDraft() ManualCallDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ManualCallDraft{FromFloor: c.manualFrom, ToFloor: c.manualTo}
}

func (c *Controller) RandomCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.randomCount
}

// SetFloors updates the draft floor count and re-clamps the manual call floors
// against it.
func (c *Controller) SetFloors(raw string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.NumberOfFloors = common.Clamp(raw, common.MAX_FLOORS, common.MIN_FLOORS)
	c.manualFrom = common.ClampInt(c.manualFrom, c.draft.NumberOfFloors, 1)
	c.manualTo = common.ClampInt(c.manualTo, c.draft.NumberOfFloors, 1)
	return c.draft.NumberOfFloors
}

func (c *Controller) SetElevators(raw string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.NumberOfElevators = common.Clamp(raw, common.MAX_ELEVATORS, common.MIN_ELEVATORS)
	return c.draft.NumberOfElevators
}

func (c *Controller) SetTravelTime(raw string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.TravelTimePerFloor = common.Clamp(raw, common.MAX_TIMING, common.MIN_TIMING)
	return c.draft.TravelTimePerFloor
}

func (c *Controller) SetLoadingTime(raw string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.LoadingTime = common.Clamp(raw, common.MAX_TIMING, common.MIN_TIMING)
	return c.draft.LoadingTime
}

func (c *Controller) SetRandomStart(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.RandomElevatorStart = on
}

func (c *Controller) SetManualFrom(raw string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.manualFrom = common.ClampDefault(raw, c.draft.NumberOfFloors)
	return c.manualFrom
}

func (c *Controller) SetManualTo(raw string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.manualTo = common.ClampDefault(raw, c.draft.NumberOfFloors)
	return c.manualTo
}

func (c *Controller) SetRandomCount(raw string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.randomCount = common.ClampDefault(raw, common.MAX_RANDOM)
	return c.randomCount
}

// Apply commits cfg, or the current draft when cfg is nil, to the simulator.
func (c *Controller) Apply(ctx context.Context, cfg *common.Configuration) error {
	var next common.Configuration
	if cfg != nil {
		next = *cfg
	} else {
		next = c.Draft()
	}
	next = next.Clamped()
	return c.run(ctx, "updateConfiguration", func(ctx context.Context) (*common.SimulationState, error) {
		return c.sim.UpdateConfiguration(ctx, next)
	})
}

// Reset restores every draft to its startup default and commits the default
// configuration.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	c.draft = c.defaults
	c.resetCallDraftsLocked()
	cfg := c.draft
	c.mu.Unlock()
	return c.Apply(ctx, &cfg)
}

func (c *Controller) resetCallDraftsLocked() {
	floors := c.draft.NumberOfFloors
	c.manualFrom = common.ClampDefault(strconv.Itoa(common.DEFAULT_MANUAL_FROM), floors)
	c.manualTo = common.ClampDefault(strconv.Itoa(common.DEFAULT_MANUAL_TO), floors)
	c.randomCount = common.ClampDefault(strconv.Itoa(common.DEFAULT_RANDOM_COUNT), common.MAX_RANDOM)
}
