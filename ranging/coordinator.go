/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package ranging

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/uwb-go/dw1000/mac"
	"github.com/uwb-go/dw1000/radio"
)

// pollIntervalFloor is how often Coordinator.Run drives Engine.Poll
// regardless of the blink/poll cadence: Poll must be called far more
// often than Scheduler.Tick so sent/received interrupts are drained with
// low latency (spec.md §5: "single-threaded cooperative... Poll must be
// called frequently").
const pollIntervalFloor = 2 * time.Millisecond

// Coordinator owns one radio.Driver and wires it to an Engine and
// Scheduler, configuring the chip at startup and then driving the
// cooperative Poll/Tick loop until its context is cancelled.
type Coordinator struct {
	cfg    *Config
	driver radio.Driver
	engine *Engine
	sched  *Scheduler
}

// NewCoordinator constructs a Coordinator. driver must not yet be
// configured; Run performs the full Begin/.../CommitConfiguration
// sequence before entering the poll loop.
func NewCoordinator(cfg *Config, driver radio.Driver, rng RNG, stats StatsSink, callbacks Callbacks) (*Coordinator, error) {
	role, err := cfg.ParsedRole()
	if err != nil {
		return nil, err
	}
	engine := NewEngine(role, cfg, driver, rng, stats)
	engine.Callbacks = callbacks
	return &Coordinator{
		cfg:    cfg,
		driver: driver,
		engine: engine,
		sched:  NewScheduler(cfg, engine),
	}, nil
}

// Engine exposes the underlying protocol engine, e.g. for a debug-dump
// command to read the peer table.
func (c *Coordinator) Engine() *Engine { return c.engine }

// configureRadio runs the one-time chip bring-up sequence in the order
// the driver contract requires (spec.md §6.1), optionally boosting
// transmit power when Config.HighPower is set.
func (c *Coordinator) configureRadio() error {
	if err := c.driver.Begin(c.cfg.IRQPin, c.cfg.RSTPin); err != nil {
		return fmt.Errorf("ranging: radio Begin: %w", err)
	}
	if err := c.driver.Select(c.cfg.ChipSelect); err != nil {
		return fmt.Errorf("ranging: radio Select: %w", err)
	}
	if err := c.driver.NewConfiguration(); err != nil {
		return fmt.Errorf("ranging: radio NewConfiguration: %w", err)
	}
	if err := c.driver.SetDefaults(); err != nil {
		return fmt.Errorf("ranging: radio SetDefaults: %w", err)
	}
	if err := c.driver.SetDeviceAddress(c.cfg.ShortAddress); err != nil {
		return fmt.Errorf("ranging: radio SetDeviceAddress: %w", err)
	}
	if err := c.driver.SetNetworkID(mac.PanID); err != nil {
		return fmt.Errorf("ranging: radio SetNetworkID: %w", err)
	}
	if err := c.driver.EnableMode(c.cfg.Mode); err != nil {
		return fmt.Errorf("ranging: radio EnableMode: %w", err)
	}
	if err := c.driver.CommitConfiguration(); err != nil {
		return fmt.Errorf("ranging: radio CommitConfiguration: %w", err)
	}
	if err := c.driver.SetEUI(c.cfg.LongAddress); err != nil {
		return fmt.Errorf("ranging: radio SetEUI: %w", err)
	}
	if c.cfg.HighPower {
		if err := c.driver.HighPowerInit(); err != nil {
			return fmt.Errorf("ranging: radio HighPowerInit: %w", err)
		}
	}
	if err := c.driver.NewReceive(); err != nil {
		return fmt.Errorf("ranging: radio NewReceive: %w", err)
	}
	if err := c.driver.ReceivePermanently(true); err != nil {
		return fmt.Errorf("ranging: radio ReceivePermanently: %w", err)
	}
	if err := c.driver.StartReceive(); err != nil {
		return fmt.Errorf("ranging: radio StartReceive: %w", err)
	}
	return nil
}

// Run configures the radio and then drives the protocol loop until ctx
// is cancelled. clock supplies the millisecond values handed to Poll,
// Tick and CheckRangeTimeout; the loop itself is always paced by a real
// pollIntervalFloor ticker, whichever Clock is passed.
func (c *Coordinator) Run(ctx context.Context, clock Clock) error {
	if err := c.configureRadio(); err != nil {
		return err
	}
	log.Infof("ranging: coordinator started, role=%s short_addr=%s", c.engine.role, c.cfg.ShortAddress)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return c.loop(ctx, clock)
	})
	return eg.Wait()
}

func (c *Coordinator) loop(ctx context.Context, clock Clock) error {
	ticker := time.NewTicker(pollIntervalFloor)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Debug("ranging: coordinator loop cancelled")
			return ctx.Err()
		case <-ticker.C:
			now := clock.NowMS()
			c.engine.Poll(now)
			c.sched.Tick(now)
			c.sched.CheckRangeTimeout(now)
		}
	}
}
