package bluetooth

import (
	"math"
	"testing"
	"time"
)

func TestRSSIToDistance(t *testing.T) {
	tests := []struct {
		rssi float64
		want float64
	}{
		{-59, 1},
		{-84, 10},
		{5, 0.1},
		{-10, 0.1},
	}
	for _, tt := range tests {
		got := RSSIToDistance(tt.rssi, -59, 2.5)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("RSSIToDistance(%v) = %v, want %v", tt.rssi, got, tt.want)
		}
	}
}

func TestManufacturerLabel(t *testing.T) {
	tests := []struct {
		id   uint16
		mac  string
		want string
	}{
		{0x004C, "AA:BB:CC:DD:EE:FF", "Apple EE:FF"},
		{0x0499, "short", "Ruuvi"},
		{0xFFFF, "AA:BB:CC:DD:EE:FF", ""},
	}
	for _, tt := range tests {
		if got := ManufacturerLabel(tt.id, tt.mac); got != tt.want {
			t.Errorf("ManufacturerLabel(%#04x, %q) = %q, want %q", tt.id, tt.mac, got, tt.want)
		}
	}
}

func TestMockScannerEmits(t *testing.T) {
	s := NewMockScanner(42)
	if n := len(s.devices); n < 8 || n > 12 {
		t.Fatalf("mock devices = %d, want 8..12", n)
	}

	seen := make(map[string]int)
	for step := 1; step <= 50; step++ {
		for _, msg := range s.emit(mockTick * time.Duration(step)) {
			if msg.RSSI > -20 || msg.RSSI < -140 {
				t.Fatalf("implausible RSSI %d from %s", msg.RSSI, msg.MAC)
			}
			seen[msg.MAC]++
		}
	}
	if len(seen) == 0 {
		t.Fatal("no adverts in 5s of demo time")
	}
}
