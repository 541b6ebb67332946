package bluetooth

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"rssi-median.klederson.com/internal/config"
)

var mockDeviceTemplates = []struct {
	Name     string
	Type     DeviceType
	Interval time.Duration // advertising interval
}{
	{"iPhone 15 Pro", DeviceTypeBLE, 200 * time.Millisecond},
	{"Galaxy S24 Ultra", DeviceTypeBLE, 300 * time.Millisecond},
	{"Pixel 9 Pro", DeviceTypeBLE, 250 * time.Millisecond},
	{"AirPods Pro", DeviceTypeBLE, 100 * time.Millisecond},
	{"Galaxy Buds Pro", DeviceTypeClassic, time.Second},
	{"MacBook Air", DeviceTypeBLE, 500 * time.Millisecond},
	{"Apple Watch", DeviceTypeBLE, 200 * time.Millisecond},
	{"Fitbit Charge 6", DeviceTypeBLE, time.Second},
	{"Sony WH-1000XM5", DeviceTypeClassic, time.Second},
	{"JBL Flip 6", DeviceTypeClassic, 800 * time.Millisecond},
	{"Tile Tracker", DeviceTypeBLE, 2 * time.Second},
	{"Ruuvi Tag", DeviceTypeBLE, 1 * time.Second},
	{"Nintendo Switch", DeviceTypeClassic, 500 * time.Millisecond},
	{"Govee H5075", DeviceTypeBLE, 2 * time.Second},
}

const mockTick = 100 * time.Millisecond

type mockDevice struct {
	mac       string
	name      string
	dtype     DeviceType
	interval  time.Duration
	next      time.Duration
	baseRSSI  float64
	phase     float64
	amplitude float64
	active    bool
}

// MockScanner generates fake devices for demo mode. Readings follow a slow
// sinusoid with noise and occasional multipath spikes, which is the kind of
// stream a median filter is for.
type MockScanner struct {
	program *tea.Program
	devices []mockDevice
	rng     *rand.Rand
	cancel  context.CancelFunc
}

// NewMockScanner creates a mock scanner with random fake devices.
func NewMockScanner(seed int64) *MockScanner {
	rng := rand.New(rand.NewSource(seed))

	total := config.DemoDeviceMin + rng.Intn(config.DemoDeviceMax-config.DemoDeviceMin+1)
	if total > len(mockDeviceTemplates) {
		total = len(mockDeviceTemplates)
	}

	devices := make([]mockDevice, total)
	for i, ti := range rng.Perm(len(mockDeviceTemplates))[:total] {
		tmpl := mockDeviceTemplates[ti]
		devices[i] = mockDevice{
			mac:       randomMAC(rng),
			name:      tmpl.Name,
			dtype:     tmpl.Type,
			interval:  tmpl.Interval,
			next:      time.Duration(rng.Int63n(int64(tmpl.Interval))),
			baseRSSI:  -40 - rng.Float64()*50, // -40 to -90 dBm
			phase:     rng.Float64() * 2 * math.Pi,
			amplitude: 3 + rng.Float64()*8, // 3-11 dBm fluctuation
			active:    true,
		}
	}

	return &MockScanner{devices: devices, rng: rng}
}

// Start begins the mock scanner.
func (s *MockScanner) Start(p *tea.Program) error {
	s.program = p

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	logrus.WithField("devices", len(s.devices)).Info("mock scan started")
	go s.loop(ctx)
	return nil
}

func (s *MockScanner) loop(ctx context.Context) {
	ticker := time.NewTicker(mockTick)
	defer ticker.Stop()

	var elapsed time.Duration
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			elapsed += mockTick
			for _, msg := range s.emit(elapsed) {
				if s.program != nil {
					s.program.Send(msg)
				}
			}
		}
	}
}

// emit returns the adverts due at elapsed.
func (s *MockScanner) emit(elapsed time.Duration) []DeviceDiscoveredMsg {
	var msgs []DeviceDiscoveredMsg
	t := elapsed.Seconds()
	for i := range s.devices {
		d := &s.devices[i]

		// Randomly toggle device visibility (appear/disappear)
		if s.rng.Float64() < 0.002 {
			d.active = !d.active
		}
		if !d.active || elapsed < d.next {
			continue
		}
		// Advertising jitter of up to 10ms, as real stacks add
		d.next = elapsed + d.interval + time.Duration(s.rng.Intn(10))*time.Millisecond

		rssi := d.baseRSSI + d.amplitude*math.Sin(t*0.5+d.phase) + (s.rng.Float64()-0.5)*4
		if s.rng.Float64() < config.DemoOutlierP {
			rssi -= 15 + s.rng.Float64()*20
		}

		name := d.name
		// Some adverts carry no name (realistic)
		if s.rng.Float64() < 0.05 {
			name = ""
		}

		msgs = append(msgs, DeviceDiscoveredMsg{
			MAC:  d.mac,
			Name: name,
			RSSI: int16(math.Round(rssi)),
			Type: d.dtype,
		})
	}
	return msgs
}

// Stop halts the mock scanner.
func (s *MockScanner) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func randomMAC(rng *rand.Rand) string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = byte(rng.Intn(256))
	}
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", b[0], b[1], b[2], b[3], b[4], b[5])
}
