package bluetooth

import (
	"fmt"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"tinygo.org/x/bluetooth"
)

// DeviceDiscoveredMsg is sent via tea.Program.Send for every advert received.
// Each one becomes one sample in the device's RSSI buffer.
type DeviceDiscoveredMsg struct {
	MAC  string
	Name string
	RSSI int16
	Type DeviceType
}

// BLEScanner handles Bluetooth Low Energy scanning.
type BLEScanner struct {
	adapter *bluetooth.Adapter
	name    string
	program *tea.Program
	running atomic.Bool
}

// NewBLEScanner creates a scanner on the default adapter. name is only used
// for logging and error messages.
func NewBLEScanner(name string) *BLEScanner {
	return &BLEScanner{
		adapter: bluetooth.DefaultAdapter,
		name:    name,
	}
}

// Start begins BLE scanning in a goroutine. Every advert is sent as a tea
// message via program.Send().
func (s *BLEScanner) Start(p *tea.Program) error {
	s.program = p

	if err := s.adapter.Enable(); err != nil {
		return fmt.Errorf("failed to enable BLE adapter %s: %w (try running with sudo or setcap cap_net_admin+ep)", s.name, err)
	}

	s.running.Store(true)
	log := logrus.WithField("adapter", s.name)
	log.Info("ble scan started")

	go func() {
		err := s.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if !s.running.Load() {
				return
			}

			mac := result.Address.String()
			name := result.LocalName()
			if name == "" {
				if mfrs := result.ManufacturerData(); len(mfrs) > 0 {
					name = ManufacturerLabel(mfrs[0].CompanyID, mac)
				}
			}

			if s.program != nil {
				s.program.Send(DeviceDiscoveredMsg{
					MAC:  mac,
					Name: name,
					RSSI: result.RSSI,
					Type: DeviceTypeBLE,
				})
			}
		})
		if err != nil {
			log.WithError(err).Error("ble scan stopped")
		}
	}()

	return nil
}

// Stop halts the BLE scanner.
func (s *BLEScanner) Stop() {
	s.running.Store(false)
	if err := s.adapter.StopScan(); err != nil {
		logrus.WithError(err).WithField("adapter", s.name).Warn("stop scan")
	}
}
