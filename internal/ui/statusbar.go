package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// StatusInfo is what the bottom bar reports.
type StatusInfo struct {
	Scanning bool
	Total    int
	BLE      int
	Classic  int
	Capacity int
	MaxAge   time.Duration
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, s StatusInfo) string {
	status := StyleStatusPaused.Render("[PAUSED]")
	if s.Scanning {
		status = StyleStatusScanning.Render("[SCANNING]")
	}

	info := fmt.Sprintf(" Devices: %d  BLE: %d  CLS: %d  Window: %d samples / %s",
		s.Total, s.BLE, s.Classic, s.Capacity, s.MaxAge)

	content := status + StyleStatusBar.Render(info)
	gap := max(0, width-lipgloss.Width(content))
	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap))
}
