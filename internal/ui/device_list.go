package ui

import (
	"fmt"
	"strings"

	"rssi-median.klederson.com/internal/bluetooth"
)

const linesPerDevice = 4 // 3 content + 1 blank

// RenderDeviceList renders the scrollable device list panel. The cursor row
// is always kept in view.
func RenderDeviceList(devices []*bluetooth.Device, width, height int, cursor int) string {
	innerW := max(10, width-4)
	innerH := max(3, height-2)

	title := StylePanelTitle.Render(fmt.Sprintf("DEVICES [%d]", len(devices)))
	separator := StyleSeparator.Render(strings.Repeat("-", innerW))
	lines := []string{title, separator}
	devSpace := max(1, innerH-len(lines))

	if len(devices) == 0 {
		lines = append(lines, "", StyleHelp.Render(" No devices..."), StyleHelp.Render(" Waiting for adverts"))
	} else {
		maxVisible := max(1, devSpace/linesPerDevice)
		viewStart := 0
		if cursor >= maxVisible {
			viewStart = cursor - maxVisible + 1
		}
		for i := viewStart; i < len(devices) && i < viewStart+maxVisible; i++ {
			lines = append(lines, renderDeviceEntry(devices[i], innerW, i == cursor)...)
		}
	}

	// lipgloss Height() only sets a minimum; it won't truncate overflow.
	if len(lines) > innerH {
		lines = lines[:innerH]
	}
	return StylePanelBorder.Width(width - 2).Height(innerH).Render(strings.Join(lines, "\n"))
}

func renderDeviceEntry(d *bluetooth.Device, maxW int, isCursor bool) []string {
	tag := "[BLE]"
	if d.Type == bluetooth.DeviceTypeClassic {
		tag = "[CLS]"
	}

	name := d.DisplayName()
	if nameMax := max(4, maxW-12); len(name) > nameMax {
		name = name[:nameMax]
	}

	cursor := "  "
	if isCursor {
		cursor = ">>"
	}

	median, dist, jitter := "--dBm", "~--m", "+/---"
	if d.HasSignal() {
		median = fmt.Sprintf("%ddBm", d.Stats.Median)
		dist = fmt.Sprintf("~%.1fm", d.Distance)
		jitter = fmt.Sprintf("+/-%.1f", d.Stats.Jitter)
	}

	if isCursor {
		return []string{
			StyleCursorRow.Render(truncRaw(fmt.Sprintf("%s %s %s %s", cursor, d.Symbol(), name, tag), maxW)),
			StyleCursorRow.Render(truncRaw("     "+d.MAC, maxW)),
			StyleCursorRow.Render(truncRaw(fmt.Sprintf("     %s %s %s", median, dist, jitter), maxW)),
			"",
		}
	}

	typeSty := StyleDeviceTypeBLE
	if d.Type == bluetooth.DeviceTypeClassic {
		typeSty = StyleDeviceTypeClassic
	}
	return []string{
		fmt.Sprintf("%s %s %s %s", cursor, typeSty.Render(d.Symbol()), StyleDeviceName.Render(name), typeSty.Render(tag)),
		"     " + StyleDeviceMAC.Render(d.MAC),
		fmt.Sprintf("     %s %s %s", StyleDeviceRSSI.Render(median), StyleDeviceRSSI.Render(dist), StyleHelp.Render(jitter)),
		"",
	}
}

// truncRaw pads or truncates a raw string to exactly w characters.
func truncRaw(s string, w int) string {
	if len(s) > w {
		return s[:w]
	}
	return s + strings.Repeat(" ", w-len(s))
}
