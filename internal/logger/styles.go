/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package logger

import "github.com/charmbracelet/lipgloss"

type styleFunc func(strs ...string) string

// Terminal styles shared by the commands.
var (
	StyleSuccess = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	StyleError   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	StyleWarn    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	StyleHeading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	StyleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Render applies style to text when color is enabled.
func Render(style lipgloss.Style, text string) string {
	if !ColorEnabled() {
		return text
	}
	return style.Render(text)
}
