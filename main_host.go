//go:build !tinygo

package main

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"neo/app"
	"neo/hal"
	"neo/internal/buildinfo"
	"neo/internal/logx"
	"neo/internal/nodeid"
	"neo/internal/promexport"
)

func main() {
	var (
		hc          hal.HeadlessConfig
		cfg         app.Config
		mqttURL     string
		mqttTopic   string
		metricsAddr string
		logLevel    string
		keyHex      string
		instance    int
		pttPeriod   time.Duration
		reportEvery time.Duration
	)
	flag.BoolVar(&hc.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hc.Hz, "hz", 1000, "Tick rate in headless mode.")
	flag.Uint64Var(&hc.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&mqttURL, "mqtt", os.Getenv("NEO_MQTT"), "MQTT broker URL for the radio link (empty = no link).")
	flag.StringVar(&mqttTopic, "mqtt-topic", "neo/link", "MQTT topic shared by all nodes.")
	flag.StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (empty = off).")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error).")
	flag.StringVar(&keyHex, "key", os.Getenv("NEO_KEY"), "Session key, 64 hex characters.")
	flag.IntVar(&instance, "instance", 0, "Instance number, for several nodes on one machine.")
	flag.DurationVar(&pttPeriod, "ptt-period", 0, "Script the PTT button: press for half of every period.")
	flag.DurationVar(&reportEvery, "report-every", 0, "Metrics report period (0 = firmware default).")
	flag.BoolVar(&cfg.Fib, "fib", false, "Run the fib load task.")
	flag.Parse()

	log, err := logx.New(os.Stderr, logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log.Info().Str("version", buildinfo.Short()).Str("commit", buildinfo.Commit).Msg("neo host starting")

	if keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != len(cfg.CryptoKey) {
			log.Fatal().Msg("-key must be 64 hex characters")
		}
		copy(cfg.CryptoKey[:], key)
	} else {
		log.Warn().Msg("no session key; using the all-zero development key")
	}
	if cfg.ReportEveryUS, err = reportPeriodUS(reportEvery); err != nil {
		log.Fatal().Err(err).Msg("-report-every")
	}

	cfg.NodeID, err = nodeid.FromMachine(instance)
	if err != nil {
		log.Warn().Err(err).Msg("machine id unavailable")
		cfg.NodeID = nodeid.Derive("", instance)
	}
	log.Info().Str("node", cfg.NodeID).Msg("node identity")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hostCfg := hal.HostConfig{Log: log, PTTPeriod: pttPeriod, PTTHold: pttPeriod / 2}
	if mqttURL != "" {
		netw, err := hal.NewMQTTNetwork(hal.MQTTConfig{
			Broker: mqttURL,
			Topic:  mqttTopic,
			NodeID: cfg.NodeID,
			Log:    log,
		})
		if err != nil {
			log.Fatal().Err(err).Str("broker", mqttURL).Msg("radio link")
		}
		log.Info().Str("broker", mqttURL).Str("topic", mqttTopic).Msg("radio link connected")
		hostCfg.Network = netw
	}

	var exp *promexport.Exporter
	if metricsAddr != "" {
		exp = promexport.New()
		go func() {
			if err := exp.Serve(ctx, metricsAddr, log); err != nil {
				log.Error().Err(err).Msg("metrics exporter")
			}
		}()
	}

	newApp := func(h hal.HAL) (func() error, error) {
		s, err := app.New(h, cfg)
		if err != nil {
			return nil, err
		}
		if exp != nil {
			s.AfterStep(func(s *app.System) {
				exp.Publish(s.Mgr())
				exp.PublishBus(s.Bus())
			})
		}
		return s.Step, nil
	}

	if hc.Enabled {
		err = hal.RunHeadless(ctx, hostCfg, newApp, hc)
	} else {
		err = hal.RunWindow(hostCfg, newApp)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("neo host stopped")
	}
	log.Info().Msg("neo host stopped")
}

// maxReportEvery is the longest period the scheduler's µs counter holds.
const maxReportEvery = time.Duration(math.MaxUint32) * time.Microsecond

// reportPeriodUS converts -report-every to scheduler microseconds. Zero
// keeps the firmware default.
func reportPeriodUS(d time.Duration) (uint32, error) {
	if d < 0 || d > maxReportEvery {
		return 0, fmt.Errorf("period %s out of range [0, %s]", d, maxReportEvery)
	}
	if d > 0 && d < time.Microsecond {
		return 0, fmt.Errorf("period %s below 1µs", d)
	}
	return uint32(d / time.Microsecond), nil
}
