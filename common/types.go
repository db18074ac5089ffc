package common

// Bounds for every numeric value the client may send to the simulator.
const (
	MIN_FLOORS    = 2
	MAX_FLOORS    = 50
	MIN_ELEVATORS = 1
	MAX_ELEVATORS = 50
	MIN_TIMING    = 1
	MAX_TIMING    = 100
	MAX_RANDOM    = 50
)

type Configuration struct {
	NumberOfFloors      int  `json:"numberOfFloors" yaml:"numberOfFloors"`
	NumberOfElevators   int  `json:"numberOfElevators" yaml:"numberOfElevators"`
	TravelTimePerFloor  int  `json:"travelTimePerFloor" yaml:"travelTimePerFloor"`
	LoadingTime         int  `json:"loadingTime" yaml:"loadingTime"`
	RandomElevatorStart bool `json:"randomElevatorStart" yaml:"randomElevatorStart"`
}

type Elevator struct {
	ID                    int     `json:"id" yaml:"id"`
	CurrentFloor          int     `json:"currentFloor" yaml:"currentFloor"`
	Status                int     `json:"status" yaml:"status"`
	StatusInfo            string  `json:"statusInfo" yaml:"statusInfo"`
	DestinationFloors     []int   `json:"destinationFloors" yaml:"destinationFloors"`
	CurrentPassengerCount *int    `json:"currentPassengerCount,omitempty" yaml:"currentPassengerCount,omitempty"`
	TimeRemaining         *int    `json:"timeRemaining,omitempty" yaml:"timeRemaining,omitempty"`
	CurrentAction         *string `json:"currentAction,omitempty" yaml:"currentAction,omitempty"`
}

type Call struct {
	CallID           int    `json:"callId" yaml:"callId"`
	FromFloor        int    `json:"fromFloor" yaml:"fromFloor"`
	ToFloor          int    `json:"toFloor" yaml:"toFloor"`
	CallTime         string `json:"callTime" yaml:"callTime"`
	Status           int    `json:"status" yaml:"status"`
	StatusInfo       string `json:"statusInfo" yaml:"statusInfo"`
	AssignedElevator *int   `json:"assignedElevator,omitempty" yaml:"assignedElevator,omitempty"`
}

// SimulationState is one snapshot produced by the simulator. It is never
// mutated after decoding.
type SimulationState struct {
	Elevators     []Elevator    `json:"elevators" yaml:"elevators"`
	Calls         []Call        `json:"calls" yaml:"calls"`
	Configuration Configuration `json:"configuration" yaml:"configuration"`
}

type CallRequest struct {
	FromFloor int `json:"fromFloor"`
	ToFloor   int `json:"toFloor"`
}

type RandomCallsRequest struct {
	NumberOfCalls int `json:"numberOfCalls"`
}
