package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"rssi-median.klederson.com/internal/app"
	"rssi-median.klederson.com/internal/bluetooth"
	"rssi-median.klederson.com/internal/config"
	"rssi-median.klederson.com/internal/metrics"
)

var (
	flagDemo        bool
	flagAdapter     string
	flagCapacity    int
	flagSpread      int
	flagMaxAge      time.Duration
	flagMetricsAddr string
	flagLogFile     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rssi-median",
		Short: "RSSI Median - Bluetooth signal statistics from fixed-size sample windows",
		Long: `RSSI Median scans for Bluetooth devices and keeps the most recent RSSI
readings of each one in a fixed-capacity buffer. Median, median-average,
jitter and advertising rate are computed in place from those samples and
optionally exported as Prometheus metrics.

Requires sudo or CAP_NET_ADMIN capability for real Bluetooth scanning.
Use --demo flag for demonstration mode without Bluetooth hardware.`,
		RunE: run,
	}

	rootCmd.Flags().BoolVar(&flagDemo, "demo", false, "Run in demo mode with fake devices (no Bluetooth required)")
	rootCmd.Flags().StringVar(&flagAdapter, "adapter", "hci0", "Bluetooth adapter to use")
	rootCmd.Flags().IntVar(&flagCapacity, "capacity", config.DefaultCapacity, "RSSI samples kept per device (1-255)")
	rootCmd.Flags().IntVar(&flagSpread, "spread", config.DefaultSpread, "Samples averaged on each side of the median (-1 = a quarter of the window)")
	rootCmd.Flags().DurationVar(&flagMaxAge, "max-age", config.SampleMaxAge, "Drop samples older than this")
	rootCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9109")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	closeLog, err := setupLogging(flagLogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := bluetooth.NewDeviceStore(flagCapacity, flagSpread)
	if err != nil {
		return fmt.Errorf("--capacity %d: %w", flagCapacity, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var exporter *metrics.Exporter
	if flagMetricsAddr != "" {
		exporter = metrics.NewExporter()
		go func() {
			if err := exporter.Serve(ctx, flagMetricsAddr); err != nil {
				logrus.WithError(err).Error("metrics server stopped")
			}
		}()
	}

	model := app.New(store, app.Options{
		Demo:     flagDemo,
		Adapter:  flagAdapter,
		MaxAge:   flagMaxAge,
		Exporter: exporter,
		Seed:     time.Now().UnixNano(),
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(config.TargetFPS*3),
	)

	// Start scanners with reference to the tea program
	if err := model.StartScanners(p); err != nil {
		if !flagDemo {
			fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
			fmt.Fprintln(os.Stderr, "Bluetooth scanning requires elevated permissions.")
			fmt.Fprintln(os.Stderr, "Try one of:")
			fmt.Fprintln(os.Stderr, "  sudo ./rssi-median")
			fmt.Fprintln(os.Stderr, "  sudo setcap cap_net_admin+ep ./rssi-median")
			fmt.Fprintln(os.Stderr, "  ./rssi-median --demo    (demo mode, no hardware needed)")
			return err
		}
	}

	_, err = p.Run()
	return err
}

// setupLogging points logrus at path, or discards output when path is empty
// since the terminal belongs to the UI.
func setupLogging(path string) (func(), error) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	if path == "" {
		logrus.SetOutput(io.Discard)
		return func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)
	logrus.SetLevel(logrus.DebugLevel)
	return func() { _ = f.Close() }, nil
}
