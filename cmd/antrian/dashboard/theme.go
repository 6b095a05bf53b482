// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/klinikmitra/antrian/lib/record"
)

// Theme defines the color palette for the dashboard. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	StatusNew        lipgloss.Color
	StatusInProgress lipgloss.Color
	StatusDone       lipgloss.Color
	StatusCancelled  lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("243"),

	SelectedBackground: lipgloss.Color("24"),
	SelectedForeground: lipgloss.Color("231"),

	StatusNew:        lipgloss.Color("110"),
	StatusInProgress: lipgloss.Color("214"),
	StatusDone:       lipgloss.Color("71"),
	StatusCancelled:  lipgloss.Color("167"),

	HeaderForeground: lipgloss.Color("117"),
	BorderColor:      lipgloss.Color("238"),
	HelpText:         lipgloss.Color("243"),
}

// StatusColor returns the color for a ticket status. Unknown values
// return FaintText.
func (theme Theme) StatusColor(status record.Status) lipgloss.Color {
	switch status {
	case record.StatusNew:
		return theme.StatusNew
	case record.StatusInProgress:
		return theme.StatusInProgress
	case record.StatusDone:
		return theme.StatusDone
	case record.StatusCancelled:
		return theme.StatusCancelled
	default:
		return theme.FaintText
	}
}
