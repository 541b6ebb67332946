package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"rssi-median.klederson.com/internal/bluetooth"
	"rssi-median.klederson.com/internal/config"
)

// RenderDetailPanel renders the order statistics of the selected device and
// a sparkline of its buffered samples. d may be nil.
func RenderDetailPanel(d *bluetooth.Device, width, height int, history []float64) string {
	innerW := max(20, width-4)
	innerH := max(3, height-2)

	lines := []string{
		StylePanelTitle.Render("SIGNAL STATISTICS"),
		StyleSeparator.Render(strings.Repeat("-", innerW)),
	}

	if d == nil {
		lines = append(lines, "", StyleHelp.Render(" Select a device"))
		return StylePanelBorder.Width(width - 2).Height(innerH).Render(strings.Join(lines, "\n"))
	}

	st := d.Stats
	fields := []struct{ label, value string }{
		{"Name", d.DisplayName()},
		{"MAC", d.MAC},
		{"Type", d.Type.String()},
		{"Last", formatLastSeen(d.LastSeen)},
		{"Samples", fmt.Sprintf("%d held, %d pushed, %d overwritten", st.Samples, st.Pushes, st.Overwritten)},
		{"Median", fmt.Sprintf("%d dBm", st.Median)},
		{"Med.avg", fmt.Sprintf("%.1f dBm  ~%.1fm", st.MedianAvg, d.Distance)},
		{"Mean", fmt.Sprintf("%.1f dBm  +/-%.1f", st.Mean, st.Deviation)},
		{"Jitter", fmt.Sprintf("+/-%.1f dBm", st.Jitter)},
		{"Min/Max", fmt.Sprintf("%d / %d dBm (range %d)", st.Min, st.Max, st.Range)},
		{"Stable", fmt.Sprintf("%.0f%% within %d dBm", st.Stability*100, config.StableBandDBm)},
		{"Interval", fmt.Sprintf("%d ms median, %.0f ms mean", st.Interval, st.MeanGap)},
		{"Rate", fmt.Sprintf("%.2f adverts/s", st.Rate)},
	}
	if !d.HasSignal() { // statistics start at Median
		for i := 5; i < len(fields); i++ {
			fields[i].value = noSignal
		}
	}
	for _, f := range fields {
		lines = append(lines, StyleStatLabel.Render(fmt.Sprintf("  %-10s", f.label))+StyleStatValue.Render(f.value))
	}

	lines = append(lines, "")
	barWidth := max(10, innerW-22)
	signal := StyleHelp.Render(noSignal)
	if d.HasSignal() {
		signal = renderSignalBar(d.RSSI, barWidth)
	}
	lines = append(lines, StyleStatLabel.Render("  Signal   ")+signal)

	if len(history) > 0 {
		sparkW := min(max(10, innerW-4), config.SparkSamples)
		lines = append(lines, "", StyleStatLabel.Render("  Samples (oldest first):"))
		lines = append(lines, "  "+renderSparkline(history, st.MedianAvg, sparkW))
	}

	if len(lines) > innerH {
		lines = lines[:innerH]
	}
	return StylePanelActive.Width(width - 2).Height(innerH).Render(strings.Join(lines, "\n"))
}

// noSignal stands in for figures of a device without samples.
const noSignal = "--"

func renderSignalBar(rssi float64, width int) string {
	// Map RSSI -100..-30 to 0..width filled bars
	ratio := math.Min(1, math.Max(0, (rssi+100.0)/70.0))
	filled := int(math.Round(ratio * float64(width)))

	filledPart := lipgloss.NewStyle().Foreground(proximityColor(rssi)).Render(strings.Repeat("|", filled))
	emptyPart := lipgloss.NewStyle().Foreground(ColorDimGreen).Render(strings.Repeat("-", width-filled))
	return StyleHelp.Render("[") + filledPart + emptyPart + StyleHelp.Render("]")
}

// spikeDBm is how far below the median average a sample must fall to be
// drawn as a spike.
const spikeDBm = 10

// renderSparkline draws the last width samples. Samples far below center are
// highlighted; those are what the median filters out.
func renderSparkline(values []float64, center float64, width int) string {
	if len(values) == 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []byte{'_', '.', '-', '~', '^'}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	rng := math.Max(1, maxV-minV)

	normal := lipgloss.NewStyle().Foreground(ColorGreen)
	spike := lipgloss.NewStyle().Foreground(ColorSpike)

	var sb strings.Builder
	for _, v := range values {
		idx := int((v - minV) / rng * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)
		sty := normal
		if center-v > spikeDBm {
			sty = spike
		}
		sb.WriteString(sty.Render(string(chars[idx])))
	}
	return sb.String()
}

func formatLastSeen(t time.Time) string {
	d := time.Since(t)
	if d < time.Second {
		return "now"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm ago", int(d.Minutes()))
}
