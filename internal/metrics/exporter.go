package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"rssi-median.klederson.com/internal/bluetooth"
	"rssi-median.klederson.com/internal/config"
)

var deviceLabels = []string{"mac", "type"}

// Exporter publishes per-device signal statistics as Prometheus gauges.
type Exporter struct {
	registry *prometheus.Registry

	medianRSSI    *prometheus.GaugeVec
	medianAvgRSSI *prometheus.GaugeVec
	jitter        *prometheus.GaugeVec
	advertRate    *prometheus.GaugeVec
	samples       *prometheus.GaugeVec
	devices       prometheus.Gauge
	snapshots     prometheus.Counter
}

// NewExporter creates an exporter with its own registry.
func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		medianRSSI: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rssi_median_dbm",
			Help: "Median RSSI sample per device",
		}, deviceLabels),
		medianAvgRSSI: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rssi_median_average_dbm",
			Help: "Mean of the RSSI samples around the median per device",
		}, deviceLabels),
		jitter: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rssi_jitter_dbm",
			Help: "Mean absolute deviation around the median average per device",
		}, deviceLabels),
		advertRate: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "advert_rate_hz",
			Help: "Adverts per second from the median-average interval",
		}, deviceLabels),
		samples: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rssi_samples",
			Help: "Samples held in the device buffer",
		}, deviceLabels),
		devices: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tracked_devices",
			Help: "Devices currently tracked",
		}),
		snapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snapshots_total",
			Help: "Snapshots observed",
		}),
	}
	e.registry.MustRegister(
		e.medianRSSI,
		e.medianAvgRSSI,
		e.jitter,
		e.advertRate,
		e.samples,
		e.devices,
		e.snapshots,
	)
	return e
}

// Observe replaces all per-device gauges with the given snapshot, so devices
// that were evicted disappear from the output. Devices without samples are
// counted as tracked but export no signal series.
func (e *Exporter) Observe(devices []*bluetooth.Device) {
	for _, g := range []*prometheus.GaugeVec{e.medianRSSI, e.medianAvgRSSI, e.jitter, e.advertRate, e.samples} {
		g.Reset()
	}
	for _, d := range devices {
		if !d.HasSignal() {
			continue
		}
		labels := prometheus.Labels{"mac": d.MAC, "type": d.Type.String()}
		e.medianRSSI.With(labels).Set(float64(d.Stats.Median))
		e.medianAvgRSSI.With(labels).Set(d.Stats.MedianAvg)
		e.jitter.With(labels).Set(d.Stats.Jitter)
		e.advertRate.With(labels).Set(d.Stats.Rate)
		e.samples.With(labels).Set(float64(d.Stats.Samples))
	}
	e.devices.Set(float64(len(devices)))
	e.snapshots.Inc()
}

// Handler serves the exporter's registry.
func (e *Exporter) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{}))
	return mux
}

// Serve runs the metrics endpoint on addr until ctx is cancelled.
func (e *Exporter) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           e.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", addr).Info("metrics listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("metrics listen: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.MetricsShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("metrics shutdown: %w", err)
	}
	return nil
}
