// command.go
// Purpose: Operator command language. Each line maps onto one controller
// operation; numeric arguments go through the controller's clamping setters.
package elevconsole

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"elevsim/common"
	"elevsim/elevctl"
)

var ErrQuit = errors.New("quit")

const helpText = `commands:
  show | refresh                      print / reload the simulation
  floors N | elevators N              edit draft configuration
  travel N | loading N                edit draft timings (seconds)
  random-start on|off                 edit draft random start flag
  apply                               commit draft configuration
  reset                               restore defaults and commit them
  server-reset                        ask the simulator to reset itself
  from N | to N | call [FROM TO]      manual call
  count N | random [N]                random calls
  step | auto [on|off]                advance time
  dump [FILE]                         write snapshot as YAML
  quit
`

type Console struct {
	ctl *elevctl.Controller
	out io.Writer
	log zerolog.Logger
}

func New(ctl *elevctl.Controller, out io.Writer, log zerolog.Logger) *Console {
	return &Console{ctl: ctl, out: out, log: log}
}

// Execute runs one command line. Remote failures are logged and reported on
// the console but never returned; the view keeps the last good snapshot.
// Usage errors are returned, as is ErrQuit.
func (c *Console) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	arg := func(i int) (string, error) {
		if i >= len(args) {
			return "", fmt.Errorf("%s: missing argument", name)
		}
		return args[i], nil
	}

	switch name {
	case "help", "?":
		io.WriteString(c.out, helpText)
	case "quit", "exit", "q":
		return ErrQuit
	case "show", "state":
		c.Show()
	case "refresh":
		c.remote("refresh", c.ctl.Refresh(ctx))

	case "floors", "elevators", "travel", "loading", "from", "to", "count":
		v, err := arg(0)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "%s = %d\n", name, c.set(name, v))
	case "random-start":
		v, err := arg(0)
		if err != nil {
			return err
		}
		on := common.EnvBool(v) || strings.EqualFold(v, "on")
		c.ctl.SetRandomStart(on)
		fmt.Fprintf(c.out, "random-start = %v\n", on)

	case "apply":
		c.remote(name, c.ctl.Apply(ctx, nil))
	case "reset":
		c.remote(name, c.ctl.Reset(ctx))
	case "server-reset":
		c.remote(name, c.ctl.ServerReset(ctx))

	case "call":
		if len(args) == 1 {
			return fmt.Errorf("call: expected FROM TO or no arguments")
		}
		if len(args) >= 2 {
			c.ctl.SetManualFrom(args[0])
			c.ctl.SetManualTo(args[1])
		}
		c.remote(name, c.ctl.ManualCall(ctx))
	case "random":
		if len(args) > 0 {
			c.ctl.SetRandomCount(args[0])
		}
		c.remote(name, c.ctl.RandomCalls(ctx))

	case "step":
		c.remote(name, c.ctl.Step(ctx))
	case "auto":
		return c.auto(args)

	case "dump":
		return c.dump(args)

	default:
		return fmt.Errorf("unknown command %q (try help)", name)
	}
	return nil
}

func (c *Console) set(name, raw string) int {
	switch name {
	case "floors":
		return c.ctl.SetFloors(raw)
	case "elevators":
		return c.ctl.SetElevators(raw)
	case "travel":
		return c.ctl.SetTravelTime(raw)
	case "loading":
		return c.ctl.SetLoadingTime(raw)
	case "from":
		return c.ctl.SetManualFrom(raw)
	case "to":
		return c.ctl.SetManualTo(raw)
	default:
		return c.ctl.SetRandomCount(raw)
	}
}

func (c *Console) auto(args []string) error {
	var err error
	switch {
	case len(args) == 0:
		_, err = c.ctl.ToggleAuto()
	case strings.EqualFold(args[0], "on") || strings.EqualFold(args[0], "true"):
		err = c.ctl.EnableAuto()
	case strings.EqualFold(args[0], "off") || strings.EqualFold(args[0], "false"):
		c.ctl.DisableAuto()
	default:
		return fmt.Errorf("auto: expected on, off or no argument, got %q", args[0])
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("auto-step not armed")
		fmt.Fprintf(c.out, "auto: %v\n", err)
		return nil
	}
	if c.ctl.AutoRunning() {
		io.WriteString(c.out, "auto-step running\n")
	} else {
		io.WriteString(c.out, "auto-step stopped\n")
	}
	return nil
}

func (c *Console) remote(op string, err error) {
	if err != nil {
		fmt.Fprintf(c.out, "%s failed, showing last snapshot: %v\n", op, err)
		return
	}
	c.Show()
}

func (c *Console) Show() {
	st, _ := c.ctl.State()
	Render(c.out, View{
		State:       st,
		Draft:       c.ctl.Draft(),
		ManualCall:  c.ctl.ManualCallDraft(),
		RandomCount: c.ctl.RandomCount(),
		AutoRunning: c.ctl.AutoRunning(),
	})
}

func (c *Console) dump(args []string) error {
	st, ok := c.ctl.State()
	if !ok {
		fmt.Fprintln(c.out, "nothing to dump: no snapshot loaded yet")
		return nil
	}
	if len(args) == 0 {
		return DumpYAML(c.out, st, c.ctl.Draft())
	}
	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	defer f.Close()
	if err := DumpYAML(f, st, c.ctl.Draft()); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "snapshot written to %s\n", args[0])
	return nil
}
