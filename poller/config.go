// Package poller wires a vectorclock.Clock up to a periodic fetch
// loop: given a way to ask each known node for its latest timestamp,
// it polls on an interval, verifies and folds in whatever comes back,
// and logs the outcome. The fetch transport itself (HTTP, gRPC, a
// local channel) is left to the caller, kept out of this package
// entirely, so the loop works the same way in tests as it does
// against a real peer.
package poller

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the poller's tunables.
type Config struct {
	// NodeID is this process's own identifier in the vector clock.
	NodeID string
	// Interval is the time between poll cycles.
	Interval time.Duration
	// LogLevel is the zerolog level name used when this config sets
	// up a logger for a Poller (see NewLogger).
	LogLevel string
}

// NewConfig parses a Config from environment variables, then applies
// any of --node, --interval, --log-level found in args over the top.
func NewConfig(args ...string) (*Config, error) {
	interval, err := time.ParseDuration(getEnv("POLL_INTERVAL", "5s"))
	if err != nil {
		return nil, fmt.Errorf("poller: invalid POLL_INTERVAL: %w", err)
	}
	config := &Config{
		NodeID:   getEnv("NODE_ID", "self"),
		Interval: interval,
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	for i := 0; i < len(args); i++ {
		if len(args) <= i+1 {
			return nil, fmt.Errorf("poller: missing argument for %s", args[i])
		}
		switch args[i] {
		case "--node":
			config.NodeID = args[i+1]
			i++
		case "--interval":
			d, err := time.ParseDuration(args[i+1])
			if err != nil {
				return nil, fmt.Errorf("poller: invalid --interval %q: %w", args[i+1], err)
			}
			config.Interval = d
			i++
		case "--log-level":
			config.LogLevel = args[i+1]
			i++
		}
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// pollIntervalSeconds is a small helper kept around for logging; it
// avoids repeating the float conversion at every log call site.
func pollIntervalSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}
