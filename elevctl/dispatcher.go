package elevctl

import (
	"context"

	"elevsim/common"
)

// ManualCall submits the manual call draft. The floors were clamped when the
// draft was edited.
func (c *Controller) ManualCall(ctx context.Context) error {
	call := c.ManualCallDraft()
	c.log.Info().Int("from", call.FromFloor).Int("to", call.ToFloor).Msg("manual call")
	return c.run(ctx, "callElevator", func(ctx context.Context) (*common.SimulationState, error) {
		return c.sim.CallElevator(ctx, call.FromFloor, call.ToFloor)
	})
}

func (c *Controller) RandomCalls(ctx context.Context) error {
	n := c.RandomCount()
	c.log.Info().Int("count", n).Msg("random calls")
	return c.run(ctx, "generateRandomCalls", func(ctx context.Context) (*common.SimulationState, error) {
		return c.sim.GenerateRandomCalls(ctx, n)
	})
}
