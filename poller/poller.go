package poller

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/zoobc/revclock/revclock"
	"github.com/zoobc/revclock/vectorclock"
)

// FetchFunc asks a remote node for its latest timestamp. It returns
// ok=false when the node has nothing new to report (not an error);
// an error is reserved for a transport failure.
type FetchFunc func(ctx context.Context, nodeID string) (ts revclock.Timestamp, ok bool, err error)

// Poller periodically fetches and folds in the latest timestamp for
// every node bootstrapped into a vector clock. It holds a mutex
// around the clock so Run can be called from a background goroutine
// while other goroutines call Snapshot or feed in local updates via
// Advance.
type Poller[C any, PC interface {
	*C
	revclock.Backend
}] struct {
	cfg   *Config
	fetch FetchFunc
	log   zerolog.Logger

	mu sync.Mutex
	vc *vectorclock.Clock[C, PC]
}

// New creates a Poller wrapping vc, polling with fetch on cfg's
// interval. log is expected to already be configured by the caller
// (level, output, fields) the way the rest of the program's logging
// is; see NewLogger for a default matching cfg.LogLevel.
func New[C any, PC interface {
	*C
	revclock.Backend
}](cfg *Config, vc *vectorclock.Clock[C, PC], fetch FetchFunc, log zerolog.Logger) *Poller[C, PC] {
	return &Poller[C, PC]{cfg: cfg, fetch: fetch, log: log, vc: vc}
}

// NewLogger builds a zerolog.Logger writing to stdout at cfg.LogLevel,
// in the console-friendly format used for local runs.
func NewLogger(cfg *Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.NewConsoleWriter()).
		Level(level).
		With().
		Timestamp().
		Str("node", cfg.NodeID).
		Logger()
}

// Advance folds a locally produced timestamp into the vector clock
// under this poller's own node id, serialized against concurrent
// Run/Snapshot calls.
func (p *Poller[C, PC]) Advance(ts revclock.Timestamp) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.vc.Update(p.cfg.NodeID, ts)
}

// Snapshot returns the vector clock's current state.
func (p *Poller[C, PC]) Snapshot() vectorclock.TimestampMap {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.vc.Read()
}

// Run polls every known node once per cfg.Interval until ctx is
// canceled. Each cycle's fetch errors are logged and skipped rather
// than aborting the loop: a single unreachable peer should not stop
// the others from being polled.
func (p *Poller[C, PC]) Run(ctx context.Context) {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	p.log.Info().Str("interval", pollIntervalSeconds(p.cfg.Interval)+"s").Msg("poller starting")

	for {
		select {
		case <-ctx.Done():
			p.log.Info().Msg("poller stopping")
			return
		case <-ticker.C:
			p.pollOnce(ctx)
		}
	}
}

func (p *Poller[C, PC]) pollOnce(ctx context.Context) {
	p.mu.Lock()
	nodes := p.vc.Nodes()
	p.mu.Unlock()

	for _, nodeID := range nodes {
		if nodeID == p.cfg.NodeID {
			continue
		}

		ts, ok, err := p.fetch(ctx, nodeID)
		if err != nil {
			p.log.Warn().Err(err).Str("peer", nodeID).Msg("fetch failed")
			continue
		}
		if !ok {
			continue
		}

		p.mu.Lock()
		accepted := p.vc.Update(nodeID, ts)
		p.mu.Unlock()

		if accepted {
			p.log.Debug().Str("peer", nodeID).Uint32("time", ts.Time()).Msg("accepted timestamp")
		} else {
			p.log.Warn().Str("peer", nodeID).Uint32("time", ts.Time()).Msg("rejected timestamp")
		}
	}
}
