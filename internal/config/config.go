package config

import "time"

const (
	// RSSI to distance estimation
	MeasuredPower = -59.0 // RSSI at 1 meter (dBm)
	PathLossExp   = 2.5   // Path loss exponent (N)

	// Per-device sample buffers
	DefaultCapacity = 31               // Samples kept per device (1..255)
	DefaultSpread   = -1               // Median-average neighbours per side, -1 = samples/4
	SampleMaxAge    = 15 * time.Second // Samples older than this are pruned
	StableBandDBm   = 4                // A sample within this of the median counts as stable

	// Device management
	DeviceTimeout = 30 * time.Second // Remove devices not seen for this long
	EvictInterval = time.Second      // How often to prune samples and devices

	// Display
	TargetFPS    = 10 // Stats refresh rate; every refresh sorts each buffer twice
	SparkSamples = 64 // Sparkline width cap

	// Demo mode
	DemoDeviceMin = 8   // Minimum fake devices
	DemoDeviceMax = 12  // Maximum fake devices
	DemoOutlierP  = 0.1 // Chance of a multipath spike per fake sample

	// Metrics
	MetricsShutdownTimeout = 5 * time.Second

	// App
	AppName    = "RSSI-MEDIAN"
	AppVersion = "1.0"
)
