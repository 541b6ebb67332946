package app

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"rssi-median.klederson.com/internal/bluetooth"
	"rssi-median.klederson.com/internal/metrics"
)

func newTestModel(t *testing.T) AppModel {
	t.Helper()
	store, err := bluetooth.NewDeviceStore(8, -1)
	if err != nil {
		t.Fatal(err)
	}
	return New(store, Options{Demo: true, Exporter: metrics.NewExporter()})
}

func update(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(AppModel)
}

func discovered(mac string, rssi int16) bluetooth.DeviceDiscoveredMsg {
	return bluetooth.DeviceDiscoveredMsg{MAC: mac, RSSI: rssi, Type: bluetooth.DeviceTypeBLE}
}

func TestUpdateCollectsSamples(t *testing.T) {
	m := newTestModel(t)
	for _, r := range []int16{-60, -62, -95, -61, -60} {
		m = update(t, m, discovered("AA", r))
	}
	m = update(t, m, discovered("BB", -80))
	m = update(t, m, TickMsg(time.Now()))

	if len(m.devices) != 2 {
		t.Fatalf("devices = %d, want 2", len(m.devices))
	}
	aa := m.devices[0]
	if aa.MAC != "AA" || aa.Stats.Median != -61 {
		t.Errorf("first device = %s median %d, want AA median -61", aa.MAC, aa.Stats.Median)
	}
	if len(m.history) != 5 || m.history[2] != -95 {
		t.Errorf("history = %v, want the five AA samples in arrival order", m.history)
	}

	rec := httptest.NewRecorder()
	m.shared.exporter.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if body := rec.Body.String(); !strings.Contains(body, `rssi_median_dbm{mac="AA",type="BLE"} -61`) {
		t.Errorf("tick did not export AA median:\n%s", body)
	}
}

func TestPauseDropsSamples(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	m = update(t, m, discovered("AA", -60))
	if n := m.shared.store.Count(); n != 0 {
		t.Errorf("paused store count = %d, want 0", n)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	m = update(t, m, discovered("AA", -60))
	if n := m.shared.store.Count(); n != 1 {
		t.Errorf("store count = %d, want 1", n)
	}
}

func TestCursorAndClear(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, discovered("AA", -50))
	m = update(t, m, discovered("BB", -70))
	m = update(t, m, TickMsg(time.Now()))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if d := m.selected(); d == nil || d.MAC != "BB" {
		t.Fatalf("selected = %v, want BB", d)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want to stop at the last device", m.cursor)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	if len(m.history) != 0 {
		t.Errorf("history after clear = %v", m.history)
	}
}

func TestView(t *testing.T) {
	m := newTestModel(t)
	if got := m.View(); !strings.HasPrefix(got, "Initializing") {
		t.Errorf("View before size = %q", got)
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = update(t, m, discovered("AA", -50))
	m = update(t, m, TickMsg(time.Now()))
	out := m.View()
	for _, want := range []string{"RSSI-MEDIAN", "DEVICES [1]", "SIGNAL STATISTICS", "Adapter: demo"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
