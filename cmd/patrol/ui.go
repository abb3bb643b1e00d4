package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Palette kept muted and dark-terminal friendly.
var (
	accent = lipgloss.Color("99")
	amber  = lipgloss.Color("214")
	dimmed = lipgloss.Color("243")
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	stepStyle  = lipgloss.NewStyle().Foreground(dimmed)
	eventStyle = lipgloss.NewStyle().Foreground(amber)
)

// title prints a shift-level banner line.
func title(s string) {
	fmt.Println(titleStyle.Render("== " + s + " =="))
}

// step prints one line of guard activity.
func step(format string, a ...any) {
	fmt.Println(stepStyle.Render("·") + " " + fmt.Sprintf(format, a...))
}

// event prints something happening to the guard.
func event(format string, a ...any) {
	fmt.Println(eventStyle.Render("!") + " " + fmt.Sprintf(format, a...))
}
