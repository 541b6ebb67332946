package ui

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"rssi-median.klederson.com/internal/bluetooth"
)

func TestTruncRaw(t *testing.T) {
	tests := []struct {
		in   string
		w    int
		want string
	}{
		{"abcdef", 3, "abc"},
		{"ab", 4, "ab  "},
		{"abcd", 4, "abcd"},
	}
	for _, tt := range tests {
		if got := truncRaw(tt.in, tt.w); got != tt.want {
			t.Errorf("truncRaw(%q, %d) = %q, want %q", tt.in, tt.w, got, tt.want)
		}
	}
}

func TestRenderSparklineKeepsNewest(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = -60 + float64(i%5)
	}
	if w := lipgloss.Width(renderSparkline(values, -58, 20)); w != 20 {
		t.Errorf("sparkline width = %d, want 20", w)
	}
	if w := lipgloss.Width(renderSparkline(values[:3], -58, 20)); w != 3 {
		t.Errorf("short sparkline width = %d, want 3", w)
	}
	if got := renderSparkline(nil, 0, 20); got != "" {
		t.Errorf("empty sparkline = %q", got)
	}
}

func TestRenderDeviceList(t *testing.T) {
	empty := RenderDeviceList(nil, 40, 20, 0)
	if !strings.Contains(empty, "No devices") {
		t.Errorf("empty list missing placeholder:\n%s", empty)
	}

	devices := []*bluetooth.Device{
		{MAC: "AA:BB:CC:DD:EE:01", Name: "Tag", LastSeen: time.Now()},
		{MAC: "AA:BB:CC:DD:EE:02", Type: bluetooth.DeviceTypeClassic},
	}
	devices[0].RSSI, devices[0].Distance = math.NaN(), math.NaN()
	devices[1].Stats.Samples = 3
	devices[1].Stats.Median = -71
	out := RenderDeviceList(devices, 40, 20, 1)
	for _, want := range []string{"DEVICES [2]", ">> B [unnamed] [CLS]", "-71dBm", "--dBm"} {
		if !strings.Contains(out, want) {
			t.Errorf("device list missing %q:\n%s", want, out)
		}
	}
}

func TestRenderDetailPanel(t *testing.T) {
	if out := RenderDetailPanel(nil, 60, 30, nil); !strings.Contains(out, "Select a device") {
		t.Errorf("nil device panel:\n%s", out)
	}

	d := &bluetooth.Device{MAC: "AA:BB:CC:DD:EE:01", LastSeen: time.Now()}
	d.Stats.Samples = 3
	d.Stats.Median = -64
	d.Stats.Interval = 250
	out := RenderDetailPanel(d, 60, 40, []float64{-64, -63, -90})
	for _, want := range []string{"-64 dBm", "250 ms median", "oldest first"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail panel missing %q:\n%s", want, out)
		}
	}

	empty := &bluetooth.Device{MAC: "AA:BB:CC:DD:EE:02", RSSI: math.NaN(), Distance: math.NaN()}
	out = RenderDetailPanel(empty, 60, 40, nil)
	if strings.Contains(out, "dBm") || strings.Contains(out, "adverts/s") {
		t.Errorf("panel for a device without samples shows figures:\n%s", out)
	}
}
