package bluetooth

import (
	"math"
	"time"
)

// DeviceType distinguishes BLE from Classic Bluetooth.
type DeviceType int

const (
	DeviceTypeBLE DeviceType = iota
	DeviceTypeClassic
)

func (dt DeviceType) String() string {
	if dt == DeviceTypeClassic {
		return "Classic"
	}
	return "BLE"
}

// SignalStats is the order-statistics summary of one device's RSSI buffer.
// RSSI figures are dBm, intervals milliseconds.
type SignalStats struct {
	Samples     int     // samples currently held
	Pushes      uint8   // pushes since the last counter reset, wraps at 256
	Overwritten int     // samples dropped because the buffer was full
	Median      int16   // median sample, always a real reading
	MedianAvg   float64 // mean of the samples around the median
	Mean        float64
	Min         int16
	Max         int16
	Range       int16
	Deviation   float64 // mean absolute deviation around Mean
	Jitter      float64 // mean absolute deviation around MedianAvg
	Stability   float64 // share of samples within StableBandDBm of Median
	Interval    uint32  // median time between adverts
	MeanGap     float64 // mean time between adverts
	Rate        float64 // adverts per second
}

// Device represents a discovered Bluetooth device and its filtered signal.
type Device struct {
	MAC      string
	Name     string
	Type     DeviceType
	LastSeen time.Time
	RSSI     float64 // median-average RSSI in dBm, NaN without samples
	Distance float64 // estimated distance in meters, NaN without samples
	Stats    SignalStats
}

// HasSignal reports whether the device has samples to compute statistics from.
// Without them RSSI and Distance are NaN.
func (d *Device) HasSignal() bool {
	return d.Stats.Samples > 0
}

// Symbol returns the list marker for this device type.
func (d *Device) Symbol() string {
	if d.Type == DeviceTypeClassic {
		return "B"
	}
	return "*"
}

// DisplayName returns the device name or "[unnamed]" if empty.
func (d *Device) DisplayName() string {
	if d.Name == "" {
		return "[unnamed]"
	}
	return d.Name
}

// RSSIToDistance estimates distance from RSSI using the log-distance path loss model.
// Formula: d = 10^((measuredPower - rssi) / (10 * n))
func RSSIToDistance(rssi, measuredPower, pathLossExp float64) float64 {
	if rssi >= 0 {
		return 0.1
	}
	d := math.Pow(10, (measuredPower-rssi)/(10*pathLossExp))
	if d < 0.1 {
		return 0.1
	}
	return d
}
