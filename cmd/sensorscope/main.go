package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	sensorscope "github.com/alx-cc/sensor-scope"
	"github.com/alx-cc/sensor-scope/internal/adapters/mqttconn"
	"github.com/alx-cc/sensor-scope/internal/adapters/observability"
	"github.com/alx-cc/sensor-scope/internal/adapters/sim"
	"github.com/alx-cc/sensor-scope/internal/app/config"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	var err error

	switch cmd {
	case "view":
		err = viewCommand(os.Args[2:])
	case "simulate":
		err = simulateCommand(os.Args[2:])
	case "validate":
		err = validateCommand(os.Args[2:])
	case "stats":
		err = statsCommand(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		printUsage()
		err = fmt.Errorf("unknown command %q", cmd)
	}

	if err != nil {
		log.Fatalf("sensorscope %s: %v", cmd, err)
	}
}

func viewCommand(args []string) error {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to configuration file (defaults apply when omitted)")
	clear := fs.Bool("clear", false, "Redraw in place instead of scrolling")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	if *clear {
		cfg.View.ClearScreen = true
	}

	rt, err := sensorscope.NewViewerRuntime(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return rt.Run(ctx)
}

func simulateCommand(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to configuration file (defaults apply when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}

	obs := observability.NewPromObs()
	pub, err := mqttconn.NewPublisher(cfg.MQTT, obs)
	if err != nil {
		return err
	}
	if err := pub.Connect(); err != nil {
		return err
	}
	defer pub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Publishing simulated readings to %s on %s (Ctrl+C to stop)\n",
		cfg.MQTT.Topic, cfg.MQTT.BrokerURI())
	return sim.NewFeed(cfg.Sim, pub, obs).Run(ctx)
}

func validateCommand(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	cfgPath := fs.String("config", "./scope.yaml", "Path to configuration file to validate")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := sensorscope.LoadConfig(*cfgPath); err != nil {
		return err
	}
	fmt.Printf("config %s looks good\n", *cfgPath)
	return nil
}

func statsCommand(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	url := fs.String("url", "http://localhost:9100/metrics", "Prometheus metrics endpoint")
	interval := fs.Duration("interval", 2*time.Second, "Refresh interval")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	fmt.Printf("Streaming metrics from %s (Ctrl+C to stop)\n", *url)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := printMetricsSnapshot(*url); err != nil {
				fmt.Fprintf(os.Stderr, "stats error: %v\n", err)
			}
		}
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func printMetricsSnapshot(url string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	targets := map[string]float64{
		"scope_samples_ingested_total": 0,
		"scope_decode_failures_total":  0,
		"scope_window_len":             0,
		"scope_feed_idle_seconds":      0,
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		for key := range targets {
			if strings.HasPrefix(line, key+" ") {
				var value float64
				if _, err := fmt.Sscanf(line, key+" %f", &value); err == nil {
					targets[key] = value
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	fmt.Printf("[%s] ingested=%.0f decode_failures=%.0f window=%.0f idle=%.1fs\n",
		time.Now().Format(time.RFC3339),
		targets["scope_samples_ingested_total"],
		targets["scope_decode_failures_total"],
		targets["scope_window_len"],
		targets["scope_feed_idle_seconds"],
	)
	return nil
}

func printUsage() {
	fmt.Printf(`sensorscope — live MQTT telemetry viewer

Usage:
  sensorscope <command> [flags]

Commands:
  view       Subscribe to the feed and render rolling series in the terminal
  simulate   Publish synthetic sensor readings to the configured topic
  validate   Load and validate a config file without starting anything
  stats      Poll the Prometheus metrics endpoint and print live counters

Examples:
  sensorscope view -config ./scope.yaml -clear
  sensorscope simulate
  sensorscope validate -config ./scope.yaml
  sensorscope stats -url http://localhost:9100/metrics -interval 1s
`)
}
