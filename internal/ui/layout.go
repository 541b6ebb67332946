package ui

import "github.com/charmbracelet/lipgloss"

// ComposeLayout joins the device list and the stats panel horizontally,
// with menu bar on top and status bar on bottom.
func ComposeLayout(menuBar, deviceList, statsPanel, statusBar string) string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top, deviceList, statsPanel)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}
