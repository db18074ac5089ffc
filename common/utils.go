// utils.go
// Purpose: Input clamping for every operator-supplied number and deep copy
// helpers for snapshots. Everything here is safe for concurrent usage.
package common

import (
	"math"
	"strings"

	"github.com/tiendc/go-deepcopy"
)

// Clamp converts raw operator text into an integer within [minAllowed, maxAllowed].
// Blank or non-numeric text yields minAllowed. Like an HTML number field, a
// leading integer prefix is honoured ("7th" -> 7, "3.9" -> 3).
func Clamp(rawValue string, maxAllowed int, minAllowed int) int {
	n, ok := parseLeadingInt(rawValue)
	if !ok || n < minAllowed {
		return minAllowed
	}
	if n > maxAllowed {
		return maxAllowed
	}
	return n
}

// ClampDefault is Clamp with the usual lower bound of 1.
func ClampDefault(rawValue string, maxAllowed int) int {
	return Clamp(rawValue, maxAllowed, 1)
}

// ClampInt applies the same range policy to an already numeric value.
func ClampInt(n, maxAllowed, minAllowed int) int {
	if n < minAllowed {
		return minAllowed
	}
	if n > maxAllowed {
		return maxAllowed
	}
	return n
}

func parseLeadingInt(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	digits := 0
	n := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		d := int(s[digits] - '0')
		if n > (math.MaxInt-d)/10 {
			n = math.MaxInt // saturate
		} else {
			n = n*10 + d
		}
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		return -n, true
	}
	return n, true
}

// Clamped returns cfg with every field forced into its valid range.
func (cfg Configuration) Clamped() Configuration {
	cfg.NumberOfFloors = ClampInt(cfg.NumberOfFloors, MAX_FLOORS, MIN_FLOORS)
	cfg.NumberOfElevators = ClampInt(cfg.NumberOfElevators, MAX_ELEVATORS, MIN_ELEVATORS)
	cfg.TravelTimePerFloor = ClampInt(cfg.TravelTimePerFloor, MAX_TIMING, MIN_TIMING)
	cfg.LoadingTime = ClampInt(cfg.LoadingTime, MAX_TIMING, MIN_TIMING)
	return cfg
}

func DeepCopyState(st *SimulationState) (*SimulationState, error) {
	if st == nil {
		return nil, nil
	}
	out := new(SimulationState)
	if err := deepcopy.Copy(out, st); err != nil {
		return nil, err
	}
	return out, nil
}
