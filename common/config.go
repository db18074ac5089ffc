// common/config.go
package common

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	TRANSPORT_HTTP1 = "http1"
	TRANSPORT_HTTP3 = "http3"
)

const (
	defaultAPI              = "https://localhost:44314/api"
	defaultFloors           = 10
	defaultElevators        = 4
	defaultTravelTime       = 10
	defaultLoadingTime      = 10
	defaultAutoStepInterval = time.Second

	DEFAULT_MANUAL_FROM  = 1
	DEFAULT_MANUAL_TO    = 2
	DEFAULT_RANDOM_COUNT = 5
)

type Config struct {
	// Simulator API root; the client appends "/elevator".
	APIBase string

	Transport   string
	InsecureTLS bool

	AutoStepInterval time.Duration
	// Zero means no timeout.
	RequestTimeout time.Duration

	LogLevel string

	// Seed for the configuration draft and the target of every reset.
	Defaults Configuration
}

// DefaultConfig loads the given dotenv files (missing ones are skipped) and
// builds the config from the process environment. Variables already set in
// the environment win over file values.
func DefaultConfig(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}
	return LoadConfig(os.LookupEnv), nil
}

// LoadConfig builds a Config from lookup. It never fails: every unset or
// malformed value falls back to its default.
func LoadConfig(lookup func(string) (string, bool)) Config {
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}

	cfg := Config{
		APIBase:          strings.TrimRight(envString(get("ELEVATOR_API"), defaultAPI), "/"),
		Transport:        TRANSPORT_HTTP1,
		InsecureTLS:      true,
		AutoStepInterval: envDuration(get("AUTO_STEP_INTERVAL"), defaultAutoStepInterval, false),
		RequestTimeout:   envDuration(get("REQUEST_TIMEOUT"), 0, true),
		LogLevel:         envString(get("LOG_LEVEL"), "info"),
		Defaults: Configuration{
			NumberOfFloors:      EnvInt(get("NUMBER_FLOORS"), defaultFloors),
			NumberOfElevators:   EnvInt(get("NUMBER_ELEVATORS"), defaultElevators),
			TravelTimePerFloor:  EnvInt(get("TRAVEL_TIME"), defaultTravelTime),
			LoadingTime:         EnvInt(get("LOADING_TIME"), defaultLoadingTime),
			RandomElevatorStart: EnvBool(get("RANDOM_ELEVATOR_START")),
		}.Clamped(),
	}

	if strings.EqualFold(strings.TrimSpace(get("ELEVATOR_TRANSPORT")), TRANSPORT_HTTP3) {
		cfg.Transport = TRANSPORT_HTTP3
	}
	if v := strings.TrimSpace(get("ELEVATOR_INSECURE_TLS")); v != "" {
		cfg.InsecureTLS = EnvBool(v)
	}
	return cfg
}

// EnvBool is true only for the literal text "true", ignoring case.
func EnvBool(val string) bool {
	return strings.EqualFold(val, "true")
}

// EnvInt parses a decimal integer, returning fallback for blank or malformed text.
func EnvInt(val string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return fallback
	}
	return n
}

func envString(val, fallback string) string {
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	return strings.TrimSpace(val)
}

func envDuration(val string, fallback time.Duration, allowZero bool) time.Duration {
	val = strings.TrimSpace(val)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil || d < 0 || (d == 0 && !allowZero) {
		return fallback
	}
	return d
}
