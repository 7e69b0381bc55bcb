// Package session runs a tetris engine in real time: one goroutine owns
// the state, applies queued commands in arrival order and drives gravity
// from a ticker that only runs while a game is in progress.
package session

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

// ErrStopped is returned by Do once the driver has stopped.
var ErrStopped = errors.New("session: driver stopped")

// DriverConfig holds configuration for a driver.
type DriverConfig struct {
	Interval  time.Duration      // Gravity cadence while playing
	QueueSize int                // Buffered commands before Send blocks
	Logger    *log.Logger        // Optional, discards when nil
	Observer  func(tetris.State) // Optional, called after every transition
}

// DefaultDriverConfig returns sensible defaults.
func DefaultDriverConfig() DriverConfig {
	return DriverConfig{
		Interval:  500 * time.Millisecond,
		QueueSize: 64,
	}
}

// Driver serializes all transitions of one game. Commands and timer ticks
// are applied by a single goroutine, so observers never see a partially
// applied transition.
type Driver struct {
	config DriverConfig
	engine *tetris.Engine
	seed   int64
	logger *log.Logger

	mu      sync.RWMutex
	state   tetris.State
	ticking bool
	journal []tetris.Command

	cmds     chan tetris.Command
	reqs     chan request
	done     chan struct{}
	doneOnce sync.Once
}

// NewDriver creates a driver for a stopped game whose pieces come from seed.
func NewDriver(rules tetris.Rules, seed int64, cfg DriverConfig) *Driver {
	def := DefaultDriverConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Driver{
		config: cfg,
		engine: tetris.NewEngine(rules, seed),
		seed:   seed,
		logger: logger,
		state:  tetris.NewState(),
		cmds:   make(chan tetris.Command, cfg.QueueSize),
		reqs:   make(chan request),
		done:   make(chan struct{}),
	}
}

// Send queues a command. It returns false once the driver has stopped.
func (d *Driver) Send(cmd tetris.Command) bool {
	select {
	case <-d.done:
		return false
	default:
	}
	select {
	case d.cmds <- cmd:
		return true
	case <-d.done:
		return false
	}
}

type request struct {
	cmd   tetris.Command
	reply chan tetris.State
}

// Do applies cmd and waits for the resulting state. Commands queued with
// Send before Do are not guaranteed to be applied first.
func (d *Driver) Do(ctx context.Context, cmd tetris.Command) (tetris.State, error) {
	req := request{cmd: cmd, reply: make(chan tetris.State, 1)}
	select {
	case d.reqs <- req:
	case <-d.done:
		return tetris.State{}, ErrStopped
	case <-ctx.Done():
		return tetris.State{}, ctx.Err()
	}
	select {
	case s := <-req.reply:
		return s, nil
	case <-d.done:
		return tetris.State{}, ErrStopped
	case <-ctx.Done():
		return tetris.State{}, ctx.Err()
	}
}

// State returns the latest state.
func (d *Driver) State() tetris.State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// Ticking reports whether the gravity timer is running.
func (d *Driver) Ticking() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.ticking
}

// Recording returns the seed and every command applied so far.
func (d *Driver) Recording() core.Recording {
	d.mu.RLock()
	defer d.mu.RUnlock()
	cmds := make([]string, len(d.journal))
	for i, c := range d.journal {
		cmds[i] = string(c)
	}
	return core.Recording{
		Seed:     d.seed,
		Commands: cmds,
		Score:    tetris.ReportedScore(d.state),
		Lines:    d.state.Lines,
	}
}

// Stop shuts down the driver. Run returns nil after Stop.
func (d *Driver) Stop() {
	d.doneOnce.Do(func() {
		close(d.done)
	})
}

// Done is closed when the driver stops.
func (d *Driver) Done() <-chan struct{} {
	return d.done
}

// Run processes commands and timer ticks until ctx is cancelled or Stop is
// called. It must be called at most once.
func (d *Driver) Run(ctx context.Context) error {
	var ticker *time.Ticker
	var tickC <-chan time.Time
	stopTicker := func() {
		if ticker != nil {
			ticker.Stop()
			ticker, tickC = nil, nil
		}
	}
	defer stopTicker()
	defer d.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.done:
			return nil
		case cmd := <-d.cmds:
			d.apply(cmd)
		case req := <-d.reqs:
			req.reply <- d.apply(req.cmd)
		case <-tickC:
			d.apply(tetris.CmdTick)
		}

		playing := d.State().Status == tetris.StatusPlaying
		switch {
		case playing && ticker == nil:
			ticker = time.NewTicker(d.config.Interval)
			tickC = ticker.C
			d.setTicking(true)
		case !playing && ticker != nil:
			stopTicker()
			d.setTicking(false)
		}
	}
}

func (d *Driver) setTicking(on bool) {
	d.mu.Lock()
	d.ticking = on
	d.mu.Unlock()
}

// apply runs one transition and notifies the observer.
func (d *Driver) apply(cmd tetris.Command) tetris.State {
	d.mu.Lock()
	prev := d.state
	next := d.engine.Apply(prev, cmd)
	d.state = next
	d.journal = append(d.journal, cmd)
	d.mu.Unlock()

	if prev.Status != next.Status {
		d.logger.Info("status changed", "from", prev.Status, "to", next.Status, "score", tetris.ReportedScore(next))
	}
	if next.Lines > prev.Lines {
		d.logger.Debug("lines cleared", "count", next.Lines-prev.Lines, "score", next.Score)
	}
	if d.config.Observer != nil {
		d.config.Observer(next)
	}
	return next
}
