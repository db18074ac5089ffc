package elevctl

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"elevsim/common"
)

var errFakeDown = errors.New("simulator unavailable")

// fakeSim is an in-memory simulator: calls wait until the next step assigns
// them round-robin. It serves both as a Simulator and as an http.Handler.
type fakeSim struct {
	mu        sync.Mutex
	cfg       common.Configuration
	elevators []common.Elevator
	calls     []common.Call
	nextCall  int

	fail      atomic.Bool
	stepGate  chan struct{}
	stepCalls atomic.Int32
	stepsDone atomic.Int32
	lastCfg   common.Configuration
}

func newFakeSim(cfg common.Configuration) *fakeSim {
	s := &fakeSim{}
	s.configure(cfg)
	return s
}

func (s *fakeSim) configure(cfg common.Configuration) {
	s.cfg = cfg
	s.lastCfg = cfg
	s.elevators = make([]common.Elevator, cfg.NumberOfElevators)
	for i := range s.elevators {
		s.elevators[i] = common.Elevator{ID: i + 1, CurrentFloor: 1, StatusInfo: "Idle", DestinationFloors: []int{}}
	}
	s.calls = nil
	s.nextCall = 1
}

func (s *fakeSim) snapshotLocked() *common.SimulationState {
	st := &common.SimulationState{
		Elevators:     make([]common.Elevator, len(s.elevators)),
		Calls:         make([]common.Call, len(s.calls)),
		Configuration: s.cfg,
	}
	copy(st.Elevators, s.elevators)
	for i, e := range s.elevators {
		st.Elevators[i].DestinationFloors = append([]int{}, e.DestinationFloors...)
	}
	for i, call := range s.calls {
		st.Calls[i] = call
		if call.AssignedElevator != nil {
			id := *call.AssignedElevator
			st.Calls[i].AssignedElevator = &id
		}
	}
	return st
}

func (s *fakeSim) GetState(ctx context.Context) (*common.SimulationState, error) {
	if s.fail.Load() {
		return nil, errFakeDown
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(), nil
}

func (s *fakeSim) UpdateConfiguration(ctx context.Context, cfg common.Configuration) (*common.SimulationState, error) {
	if s.fail.Load() {
		return nil, errFakeDown
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configure(cfg)
	return s.snapshotLocked(), nil
}

func (s *fakeSim) Reset(ctx context.Context) (*common.SimulationState, error) {
	if s.fail.Load() {
		return nil, errFakeDown
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configure(s.cfg)
	return s.snapshotLocked(), nil
}

func (s *fakeSim) CallElevator(ctx context.Context, fromFloor, toFloor int) (*common.SimulationState, error) {
	if s.fail.Load() {
		return nil, errFakeDown
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addCallLocked(fromFloor, toFloor)
	return s.snapshotLocked(), nil
}

func (s *fakeSim) addCallLocked(fromFloor, toFloor int) {
	s.calls = append(s.calls, common.Call{
		CallID:     s.nextCall,
		FromFloor:  fromFloor,
		ToFloor:    toFloor,
		CallTime:   "2024-01-01T00:00:00",
		Status:     0,
		StatusInfo: "Waiting",
	})
	s.nextCall++
}

func (s *fakeSim) GenerateRandomCalls(ctx context.Context, n int) (*common.SimulationState, error) {
	if s.fail.Load() {
		return nil, errFakeDown
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		from := i%s.cfg.NumberOfFloors + 1
		s.addCallLocked(from, s.cfg.NumberOfFloors-from+1)
	}
	return s.snapshotLocked(), nil
}

func (s *fakeSim) ProcessStep(ctx context.Context) (*common.SimulationState, error) {
	s.stepCalls.Add(1)
	defer s.stepsDone.Add(1)
	if s.stepGate != nil {
		select {
		case <-s.stepGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.fail.Load() {
		return nil, errFakeDown
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.calls {
		if s.calls[i].AssignedElevator != nil || len(s.elevators) == 0 {
			continue
		}
		id := (s.calls[i].CallID-1)%len(s.elevators) + 1
		s.calls[i].AssignedElevator = &id
		s.calls[i].Status = 1
		s.calls[i].StatusInfo = "Assigned"
		e := &s.elevators[id-1]
		e.DestinationFloors = append(e.DestinationFloors, s.calls[i].FromFloor, s.calls[i].ToFloor)
		e.StatusInfo = "Moving"
	}
	return s.snapshotLocked(), nil
}

func (s *fakeSim) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var (
		st  *common.SimulationState
		err error
	)
	ctx := r.Context()
	switch strings.TrimPrefix(r.URL.Path, "/api/elevator") {
	case "/state":
		st, err = s.GetState(ctx)
	case "/configuration":
		var cfg common.Configuration
		if err = json.NewDecoder(r.Body).Decode(&cfg); err == nil {
			st, err = s.UpdateConfiguration(ctx, cfg)
		}
	case "/reset":
		st, err = s.Reset(ctx)
	case "/call":
		var req common.CallRequest
		if err = json.NewDecoder(r.Body).Decode(&req); err == nil {
			st, err = s.CallElevator(ctx, req.FromFloor, req.ToFloor)
		}
	case "/random-calls":
		var req common.RandomCallsRequest
		if err = json.NewDecoder(r.Body).Decode(&req); err == nil {
			st, err = s.GenerateRandomCalls(ctx, req.NumberOfCalls)
		}
	case "/step":
		st, err = s.ProcessStep(ctx)
	default:
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(st)
}
