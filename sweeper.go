// sweeper.go: background cleanup with Argus-driven hot reload
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hashcons

import (
	"fmt"
	"sync"
	"time"

	"github.com/agilira/argus"
)

// Sweepable is the subset of Table[V]/ConcurrentTable[V] a PeriodicSweeper
// needs. Manual-cleanup tables never purge dead entries on their own;
// this is the ticking hand that calls Cleanup for code that would rather
// not remember to.
type Sweepable interface {
	Cleanup() int
	AutoCleanup() bool
}

// PeriodicSweeper calls Cleanup on a table at a fixed interval, on its
// own goroutine. It is a convenience, never a correctness requirement -
// every property this package guarantees already holds without it,
// because Release and explicit Cleanup calls are synchronous.
//
// Running a PeriodicSweeper over a table with AutoCleanup enabled is
// harmless but pointless: Cleanup is a no-op there since destroyed
// entries never linger.
type PeriodicSweeper struct {
	table    Sweepable
	logger   Logger
	mu       sync.RWMutex
	interval time.Duration

	stop    chan struct{}
	stopped chan struct{}
	once    sync.Once

	watcher *argus.Watcher

	// tickerInterval is the period the running time.Ticker was last set
	// to. time.Ticker exposes no way to read its own period back, so
	// loop tracks it here to notice when Interval() has been changed by
	// a config reload and the ticker needs Reset.
	tickerInterval time.Duration
}

// SweeperOptions configures a PeriodicSweeper.
type SweeperOptions struct {
	// Interval is how often Cleanup is called. Default: 1 minute.
	Interval time.Duration

	// ConfigPath, if set, is watched with Argus for a sweep_interval_ms
	// key; when the file changes, the sweep interval is updated without
	// restarting the sweeper. Supports JSON, YAML, TOML, HCL, INI,
	// Properties - whatever Argus's universal parser accepts.
	ConfigPath string

	// ConfigPollInterval is how often Argus checks ConfigPath for
	// changes. Default: 1 second. Minimum: 100ms. Ignored if ConfigPath
	// is empty.
	ConfigPollInterval time.Duration

	// Logger receives a warning if a Cleanup call panics (from a
	// misbehaving Hash/Equal on V) or if the config file cannot be
	// parsed. If nil, NoOpLogger is used.
	Logger Logger
}

// NewPeriodicSweeper creates a sweeper over table and starts its ticking
// goroutine immediately. If opts.ConfigPath is set, it also starts an
// Argus watcher that can hot-reload the sweep interval; callers must
// call Stop to release both.
func NewPeriodicSweeper(table Sweepable, opts SweeperOptions) (*PeriodicSweeper, error) {
	if opts.Interval <= 0 {
		opts.Interval = time.Minute
	}
	if opts.Logger == nil {
		opts.Logger = NoOpLogger{}
	}

	ps := &PeriodicSweeper{
		table:    table,
		logger:   opts.Logger,
		interval: opts.Interval,
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}

	if opts.ConfigPath != "" {
		pollInterval := opts.ConfigPollInterval
		if pollInterval == 0 {
			pollInterval = time.Second
		} else if pollInterval < 100*time.Millisecond {
			pollInterval = 100 * time.Millisecond
		}

		watcher, err := argus.UniversalConfigWatcherWithConfig(
			opts.ConfigPath, ps.handleConfigChange, argus.Config{PollInterval: pollInterval},
		)
		if err != nil {
			return nil, fmt.Errorf("hashcons: starting config watcher: %w", err)
		}
		ps.watcher = watcher
		if err := watcher.Start(); err != nil {
			return nil, fmt.Errorf("hashcons: starting config watcher: %w", err)
		}
	}

	go ps.loop()
	return ps, nil
}

// Interval returns the sweeper's current tick interval.
func (ps *PeriodicSweeper) Interval() time.Duration {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.interval
}

func (ps *PeriodicSweeper) loop() {
	defer close(ps.stopped)
	ps.tickerInterval = ps.Interval()
	ticker := time.NewTicker(ps.tickerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ps.stop:
			return
		case <-ticker.C:
			ps.tick()
			if next := ps.Interval(); next != ps.tickerInterval {
				ps.tickerInterval = next
				ticker.Reset(next)
			}
		}
	}
}

func (ps *PeriodicSweeper) tick() {
	defer func() {
		if r := recover(); r != nil {
			ps.logger.Warn("hashcons: recovered panic in periodic sweeper tick", "error", NewErrSweeperPanic(r))
		}
	}()
	ps.table.Cleanup()
}

// handleConfigChange is invoked by Argus when the watched file changes.
func (ps *PeriodicSweeper) handleConfigChange(data map[string]interface{}) {
	raw, ok := data["sweep_interval_ms"]
	if !ok {
		raw, ok = data["sweep_interval"]
	}
	if !ok {
		return
	}

	var ms int
	switch v := raw.(type) {
	case int:
		ms = v
	case float64:
		ms = int(v)
	default:
		ps.logger.Warn("hashcons: ignoring unparseable sweep_interval_ms in config reload")
		return
	}
	if ms <= 0 {
		return
	}

	ps.mu.Lock()
	ps.interval = time.Duration(ms) * time.Millisecond
	ps.mu.Unlock()
}

// Stop stops the sweeper's ticking goroutine and, if a config file was
// being watched, its Argus watcher. Safe to call more than once.
func (ps *PeriodicSweeper) Stop() error {
	var err error
	ps.once.Do(func() {
		close(ps.stop)
		<-ps.stopped
		if ps.watcher != nil {
			err = ps.watcher.Stop()
		}
	})
	return err
}
