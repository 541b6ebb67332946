package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"rssi-median.klederson.com/internal/bluetooth"
	"rssi-median.klederson.com/internal/config"
	"rssi-median.klederson.com/internal/metrics"
	"rssi-median.klederson.com/internal/ui"
)

// Options configures the app model.
type Options struct {
	Demo     bool
	Adapter  string
	MaxAge   time.Duration     // sample age limit
	Exporter *metrics.Exporter // optional
	Seed     int64             // demo device seed
}

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	store       *bluetooth.DeviceStore
	exporter    *metrics.Exporter
	bleScanner  *bluetooth.BLEScanner
	mockScanner *bluetooth.MockScanner
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	width  int
	height int

	scanning bool
	opts     Options
	cursor   int

	shared *shared

	// Cached snapshot
	devices []*bluetooth.Device
	history []float64
}

// New creates a new AppModel reading from store.
func New(store *bluetooth.DeviceStore, opts Options) AppModel {
	if opts.MaxAge <= 0 {
		opts.MaxAge = config.SampleMaxAge
	}
	return AppModel{
		scanning: true,
		opts:     opts,
		shared: &shared{
			store:    store,
			exporter: opts.Exporter,
		},
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		evictCmd(),
	)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.refresh()
		return m, tickCmd()

	case EvictMsg:
		m.shared.store.Evict(m.opts.MaxAge, config.DeviceTimeout)
		return m, evictCmd()

	case bluetooth.DeviceDiscoveredMsg:
		if m.scanning {
			m.shared.store.Upsert(msg.MAC, msg.Name, msg.RSSI, msg.Type)
		}
		return m, nil
	}

	return m, nil
}

// refresh recomputes statistics for every device and the selected history.
func (m *AppModel) refresh() {
	m.devices = m.shared.store.Snapshot()
	if m.cursor >= len(m.devices) {
		m.cursor = max(0, len(m.devices)-1)
	}
	m.history = nil
	if d := m.selected(); d != nil {
		m.history = m.shared.store.History(d.MAC)
	}
	if m.shared.exporter != nil {
		m.shared.exporter.Observe(m.devices)
	}
}

func (m AppModel) selected() *bluetooth.Device {
	if m.cursor < 0 || m.cursor >= len(m.devices) {
		return nil
	}
	return m.devices[m.cursor]
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		m.stopScanners()
		return m, tea.Quit

	case "s", "S":
		m.scanning = true

	case "p", "P":
		m.scanning = false

	case "c", "C":
		if d := m.selected(); d != nil {
			m.shared.store.Reset(d.MAC)
			logrus.WithField("mac", d.MAC).Info("samples cleared")
			m.refresh()
		}

	case "r", "R":
		m.shared.store.ResetPushCounts()
		m.refresh()

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.devices)-1 {
			m.cursor++
		}

	case "home":
		m.cursor = 0

	case "end":
		if len(m.devices) > 0 {
			m.cursor = len(m.devices) - 1
		}
	}

	return m, nil
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	bodyH := max(5, m.height-2) // menu and status bars

	listW := max(30, m.width*2/5)
	statsW := max(30, m.width-listW)

	menuBar := ui.RenderMenuBar(m.width, m.adapterLabel(), m.scanning)
	deviceList := ui.RenderDeviceList(m.devices, listW, bodyH, m.cursor)
	statsPanel := ui.RenderDetailPanel(m.selected(), statsW, bodyH, m.history)

	ble, classic := m.shared.store.CountByType()
	statusBar := ui.RenderStatusBar(m.width, ui.StatusInfo{
		Scanning: m.scanning,
		Total:    ble + classic,
		BLE:      ble,
		Classic:  classic,
		Capacity: m.shared.store.Capacity(),
		MaxAge:   m.opts.MaxAge,
	})

	return ui.ComposeLayout(menuBar, deviceList, statsPanel, statusBar)
}

func (m AppModel) adapterLabel() string {
	if m.opts.Demo {
		return "demo"
	}
	return m.opts.Adapter
}

// StartScanners initializes and starts scanners. Must be called before p.Run().
func (m *AppModel) StartScanners(p *tea.Program) error {
	if m.opts.Demo {
		m.shared.mockScanner = bluetooth.NewMockScanner(m.opts.Seed)
		return m.shared.mockScanner.Start(p)
	}

	m.shared.bleScanner = bluetooth.NewBLEScanner(m.opts.Adapter)
	return m.shared.bleScanner.Start(p)
}

func (m *AppModel) stopScanners() {
	if m.shared.mockScanner != nil {
		m.shared.mockScanner.Stop()
	}
	if m.shared.bleScanner != nil {
		m.shared.bleScanner.Stop()
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func evictCmd() tea.Cmd {
	return tea.Tick(config.EvictInterval, func(t time.Time) tea.Msg {
		return EvictMsg(t)
	})
}
