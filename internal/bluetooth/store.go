package bluetooth

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"rssi-median.klederson.com/internal/config"
	"rssi-median.klederson.com/internal/qmedian"
)

// sampleBuffer holds RSSI readings stamped in milliseconds since the store
// epoch. uint32 wraps after ~49 days; intervals stay correct across the wrap.
type sampleBuffer = qmedian.Buffer[int16, float64, uint32]

type track struct {
	dev         Device
	samples     *sampleBuffer
	overwritten int
}

// DeviceStore keeps a fixed-capacity RSSI buffer per device.
//
// A plain Mutex guards it: computing statistics reorders a buffer in place,
// so snapshots are writes as far as locking is concerned.
type DeviceStore struct {
	mu       sync.Mutex
	devices  map[string]*track
	capacity int
	spread   int
	epoch    time.Time
	now      func() time.Time
}

// NewDeviceStore creates an empty store. capacity is the number of samples
// kept per device and must be in [1, 255]; spread is the median-average
// neighbour count, negative for the default.
func NewDeviceStore(capacity, spread int) (*DeviceStore, error) {
	s := &DeviceStore{
		devices:  make(map[string]*track),
		capacity: capacity,
		spread:   spread,
		epoch:    time.Now(),
		now:      time.Now,
	}
	// Fail at startup rather than on the first advert.
	if _, err := s.newTrack(Device{}); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *DeviceStore) newTrack(dev Device) (*track, error) {
	t := &track{dev: dev}
	buf, err := qmedian.New[int16, float64, uint32](s.capacity,
		qmedian.WithSpread[int16, uint32](s.spread),
		qmedian.WithEvictHook(func(int16, uint32) { t.overwritten++ }),
	)
	if err != nil {
		return nil, fmt.Errorf("sample buffer: %w", err)
	}
	t.samples = buf
	return t, nil
}

// stamp converts wall time to the buffer clock.
func (s *DeviceStore) stamp(t time.Time) uint32 {
	return uint32(t.Sub(s.epoch).Milliseconds())
}

// Capacity returns the per-device sample capacity.
func (s *DeviceStore) Capacity() int {
	return s.capacity
}

// Upsert records one RSSI reading, creating the device on first sight.
func (s *DeviceStore) Upsert(mac, name string, rssi int16, dtype DeviceType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	t, ok := s.devices[mac]
	if !ok {
		var err error
		t, err = s.newTrack(Device{MAC: mac, Type: dtype})
		if err != nil {
			logrus.WithError(err).WithField("mac", mac).Error("drop device")
			return
		}
		s.devices[mac] = t
		logrus.WithFields(logrus.Fields{"mac": mac, "type": dtype}).Debug("new device")
	}

	t.samples.Push(rssi, s.stamp(now))
	t.dev.LastSeen = now
	if name != "" {
		t.dev.Name = name
	}
}

// Evict prunes samples older than maxAge and removes devices whose last
// samples were pruned or that have not been seen within timeout. Returns the
// number of removed devices.
func (s *DeviceStore) Evict(maxAge, timeout time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	ts := s.stamp(now)
	age := uint32(maxAge.Milliseconds())
	cutoff := now.Add(-timeout)

	pruned, removed := 0, 0
	for mac, t := range s.devices {
		n := t.samples.Prune(ts, age)
		pruned += n
		if (n > 0 && t.samples.IsEmpty()) || t.dev.LastSeen.Before(cutoff) {
			delete(s.devices, mac)
			removed++
		}
	}
	if pruned > 0 || removed > 0 {
		logrus.WithFields(logrus.Fields{"samples": pruned, "devices": removed}).Debug("evicted")
	}
	return removed
}

// Snapshot returns a copy of all devices with fresh statistics, strongest
// filtered RSSI first. Devices with no samples left get NaN RSSI and distance,
// zero statistics, and sort after every device with samples.
func (s *DeviceStore) Snapshot() []*Device {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*Device, 0, len(s.devices))
	for _, t := range s.devices {
		cp := t.dev
		cp.Stats = t.stats()
		if cp.HasSignal() {
			cp.RSSI = cp.Stats.MedianAvg
			cp.Distance = RSSIToDistance(cp.RSSI, config.MeasuredPower, config.PathLossExp)
		} else {
			cp.RSSI = math.NaN()
			cp.Distance = math.NaN()
		}
		result = append(result, &cp)
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].HasSignal(), result[j].HasSignal()
		if a != b {
			return a // Devices without samples last
		}
		if !a || result[i].RSSI == result[j].RSSI {
			return result[i].MAC < result[j].MAC
		}
		return result[i].RSSI > result[j].RSSI // Strongest first (less negative)
	})
	return result
}

func (t *track) stats() SignalStats {
	b := t.samples
	if b.IsEmpty() {
		return SignalStats{Pushes: b.PushCount(), Overwritten: t.overwritten}
	}
	st := SignalStats{
		Samples:     b.Len(),
		Pushes:      b.PushCount(),
		Overwritten: t.overwritten,
		Median:      b.Median(),
		MedianAvg:   b.MedianAverage(),
		Mean:        b.Average(),
		Min:         b.Min(),
		Max:         b.Max(),
		Range:       b.Range(),
		Deviation:   b.MeanAbsDeviation(),
		Jitter:      b.MeanAbsDeviationAroundMedianAverage(-1),
		Interval:    b.MedianInterval(),
		MeanGap:     b.AverageInterval(),
		Rate:        b.MedianAverageRateOfChange() * 1000,
	}
	st.Stability = b.Frequency(st.Median, config.StableBandDBm+1)
	return st
}

// History returns the device's RSSI samples, oldest first, or nil.
func (s *DeviceStore) History(mac string) []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.devices[mac]
	if !ok {
		return nil
	}
	values := t.samples.Values()
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

// Reset drops a device's samples but keeps tracking it. Reports whether the
// device exists.
func (s *DeviceStore) Reset(mac string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.devices[mac]
	if !ok {
		return false
	}
	t.samples.Clear()
	t.overwritten = 0
	return true
}

// ResetPushCounts zeroes every device's push counter.
func (s *DeviceStore) ResetPushCounts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.devices {
		t.samples.ResetPushCount()
	}
}

// Count returns the total number of tracked devices.
func (s *DeviceStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.devices)
}

// CountByType returns counts broken down by device type.
func (s *DeviceStore) CountByType() (ble, classic int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.devices {
		if t.dev.Type == DeviceTypeClassic {
			classic++
		} else {
			ble++
		}
	}
	return
}
