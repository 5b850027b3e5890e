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

package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/uwb-go/dw1000/radio"
	"github.com/uwb-go/dw1000/ranging"
	"github.com/uwb-go/dw1000/ranging/stats"

	_ "net/http/pprof"
)

var (
	runConfigFlag     string
	runSPIDeviceFlag  string
	runIRQFlag        int
	runRSTFlag        int
	runCSFlag         int
	runPrometheusFlag bool
	runPprofFlag      string
	runDumpTableFlag  bool
)

func init() {
	RootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runConfigFlag, "config", "c", "", "path to the YAML config file (required)")
	runCmd.Flags().StringVar(&runSPIDeviceFlag, "spi-device", "", "override the config file's spi_device")
	runCmd.Flags().IntVar(&runIRQFlag, "irq", 0, "override the config file's irq_pin")
	runCmd.Flags().IntVar(&runRSTFlag, "rst", 0, "override the config file's rst_pin")
	runCmd.Flags().IntVar(&runCSFlag, "cs", 0, "override the config file's chip_select")
	runCmd.Flags().BoolVar(&runPrometheusFlag, "prometheus", false, "expose /metrics instead of /counters")
	runCmd.Flags().StringVar(&runPprofFlag, "pprof", "", "address to have the profiler listen on, disabled if empty")
	runCmd.Flags().BoolVar(&runDumpTableFlag, "dump-table", false, "periodically print the peer table to stderr")
	_ = runCmd.MarkFlagRequired("config")
}

// qualityColor picks a color for a link quality value the way ptpcheck
// color-codes its diagnostic output: good is green, marginal is yellow,
// poor is red.
func qualityColor(quality float32) func(format string, a ...interface{}) string {
	switch {
	case quality >= 80:
		return color.GreenString
	case quality >= 40:
		return color.YellowString
	default:
		return color.RedString
	}
}

// dumpPeerTable renders the engine's current peer table to stderr,
// color-coding each peer's link quality.
func dumpPeerTable(engine *ranging.Engine) {
	table := tablewriter.NewWriter(os.Stderr)
	table.SetHeader([]string{"short addr", "long addr", "range (m)", "quality", "last activity (ms)"})
	for _, p := range engine.PeerTable().All() {
		colorize := qualityColor(p.Quality)
		table.Append([]string{
			p.ShortAddr.String(),
			p.LongAddr.String(),
			fmt.Sprintf("%.3f", p.Range),
			colorize("%.1f", p.Quality),
			fmt.Sprintf("%d", p.LastActivityMS),
		})
	}
	table.Render()
}

func runDumpTableLoop(ctx context.Context, engine *ranging.Engine) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			dumpPeerTable(engine)
		}
	}
}

// applyFlagOverrides replaces config-file values with any of the
// irq/rst/cs/spi-device flags the operator actually passed on the
// command line, warning so the override is visible in the log.
func applyFlagOverrides(cfg *ranging.Config, flags *pflag.FlagSet) {
	if flags.Changed("spi-device") {
		log.Warningf("ranging: overriding spi_device %q with --spi-device=%q", cfg.SPIDevice, runSPIDeviceFlag)
		cfg.SPIDevice = runSPIDeviceFlag
	}
	if flags.Changed("irq") {
		log.Warningf("ranging: overriding irq_pin %d with --irq=%d", cfg.IRQPin, runIRQFlag)
		cfg.IRQPin = runIRQFlag
	}
	if flags.Changed("rst") {
		log.Warningf("ranging: overriding rst_pin %d with --rst=%d", cfg.RSTPin, runRSTFlag)
		cfg.RSTPin = runRSTFlag
	}
	if flags.Changed("cs") {
		log.Warningf("ranging: overriding chip_select %d with --cs=%d", cfg.ChipSelect, runCSFlag)
		cfg.ChipSelect = runCSFlag
	}
}

func doRun(cfg *ranging.Config) error {
	var sink ranging.StatsSink
	if runPrometheusFlag {
		exporter := stats.NewPrometheusStats(time.Second)
		sink = exporter
		go func() {
			if err := exporter.Start(cfg.MonitoringPort); err != nil {
				log.Errorf("ranging: prometheus exporter stopped: %v", err)
			}
		}()
	} else {
		js := stats.NewJSONStats()
		sink = js
		go func() {
			if err := js.Start(cfg.MonitoringPort); err != nil {
				log.Errorf("ranging: counters http server stopped: %v", err)
			}
		}()
	}

	driver := radio.NewSPIDriver(cfg.SPIDevice)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	callbacks := ranging.Callbacks{
		OnNewRange: func(p *ranging.Peer) {
			log.Infof("range: peer=%s distance=%.3fm quality=%.1f", p.ShortAddr, p.Range, p.Quality)
		},
		OnNewDevice: func(p *ranging.Peer) {
			log.Infof("new device: peer=%s", p.ShortAddr)
		},
		OnBlinkDevice: func(p *ranging.Peer) {
			log.Infof("blink: peer=%s", p.ShortAddr)
		},
		OnInactiveDevice: func(p *ranging.Peer) {
			log.Infof("peer inactive, removed: peer=%s", p.ShortAddr)
		},
		OnEvictedOnFull: func(p *ranging.Peer) {
			log.Warningf("peer evicted on full table: peer=%s", p.ShortAddr)
		},
	}

	coord, err := ranging.NewCoordinator(cfg, driver, rng, sink, callbacks)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if runDumpTableFlag {
		go runDumpTableLoop(ctx, coord.Engine())
	}

	return coord.Run(ctx, ranging.SystemClock{})
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the ranging daemon",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()

		if runPprofFlag != "" {
			go func() {
				if err := http.ListenAndServe(runPprofFlag, nil); err != nil {
					log.Errorf("failed to start pprof: %v", err)
				}
			}()
		}

		cfg, err := ranging.ReadConfig(runConfigFlag)
		if err != nil {
			log.Fatal(err)
		}
		applyFlagOverrides(cfg, runCmd.Flags())

		log.Infof("uwbranged starting: role=%s short_addr=%s mode=%s", cfg.Role, cfg.ShortAddress, cfg.Mode)
		if err := doRun(cfg); err != nil {
			log.Fatal(err)
		}
	},
}
