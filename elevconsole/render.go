package elevconsole

import (
	"fmt"
	"io"
	"strings"

	"elevsim/common"
	"elevsim/elevctl"
)

type View struct {
	State       *common.SimulationState
	Draft       common.Configuration
	ManualCall  elevctl.ManualCallDraft
	RandomCount int
	AutoRunning bool
}

// Render writes a plain-text view of v. A nil State renders as "Loading...".
func Render(w io.Writer, v View) {
	if v.State == nil {
		fmt.Fprintln(w, "Loading...")
		return
	}
	st := v.State
	auto := "stopped"
	if v.AutoRunning {
		auto = "running"
	}

	fmt.Fprintln(w, "== Configuration (draft | server)")
	fmt.Fprintf(w, "  floors      %3d | %d\n", v.Draft.NumberOfFloors, st.Configuration.NumberOfFloors)
	fmt.Fprintf(w, "  elevators   %3d | %d\n", v.Draft.NumberOfElevators, st.Configuration.NumberOfElevators)
	fmt.Fprintf(w, "  travel (s)  %3d | %d\n", v.Draft.TravelTimePerFloor, st.Configuration.TravelTimePerFloor)
	fmt.Fprintf(w, "  loading (s) %3d | %d\n", v.Draft.LoadingTime, st.Configuration.LoadingTime)
	fmt.Fprintf(w, "  random start %v | %v\n", v.Draft.RandomElevatorStart, st.Configuration.RandomElevatorStart)
	fmt.Fprintf(w, "  manual call %d -> %d, random calls %d, auto-step %s\n",
		v.ManualCall.FromFloor, v.ManualCall.ToFloor, v.RandomCount, auto)

	fmt.Fprintln(w, "== Calls")
	if len(st.Calls) == 0 {
		fmt.Fprintln(w, "  No elevator calls yet")
	}
	for i := len(st.Calls) - 1; i >= 0; i-- {
		call := st.Calls[i]
		elevator := "Waiting"
		if call.AssignedElevator != nil {
			elevator = fmt.Sprintf("#%d", *call.AssignedElevator)
		}
		fmt.Fprintf(w, "  #%-4d floor %2d -> %2d  elevator %-7s %s\n",
			call.CallID, call.FromFloor, call.ToFloor, elevator, call.StatusInfo)
	}

	fmt.Fprintln(w, "== Elevators")
	for _, e := range st.Elevators {
		fmt.Fprintf(w, "  #%-3d floor %2d  %s", e.ID, e.CurrentFloor, e.StatusInfo)
		if e.TimeRemaining != nil && *e.TimeRemaining > 0 {
			fmt.Fprintf(w, "  time %ds", *e.TimeRemaining)
		}
		if e.CurrentAction != nil && *e.CurrentAction != "" {
			fmt.Fprintf(w, "  %s", *e.CurrentAction)
		}
		if len(e.DestinationFloors) > 0 {
			fmt.Fprintf(w, "  destinations %s", joinInts(e.DestinationFloors))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "== Floors (1 - %d)\n", v.Draft.NumberOfFloors)
	for floor := v.Draft.NumberOfFloors; floor >= 1; floor-- {
		var here []string
		for _, e := range st.Elevators {
			if e.CurrentFloor == floor {
				here = append(here, fmt.Sprintf("E%d", e.ID))
			}
		}
		fmt.Fprintf(w, "  %2d | %s\n", floor, strings.Join(here, " "))
	}
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}
