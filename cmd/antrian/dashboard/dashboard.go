// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

// Package dashboard provides the interactive queue dashboard TUI
// command. This is a separate package from cmd/antrian/queue so that
// the charmbracelet/bubbletea dependency (and its transitive closure:
// lipgloss, termenv, cellbuf) is only linked into binaries that
// actually import this package.
package dashboard

import (
	"fmt"

	"github.com/spf13/pflag"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/klinikmitra/antrian/cmd/antrian/cli"
	"github.com/klinikmitra/antrian/lib/clock"
)

// Command returns the "dashboard" command that launches the
// interactive queue dashboard.
func Command() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "dashboard",
		Summary: "Interactive queue dashboard",
		Description: `Launch an interactive terminal UI for watching the queue.

The queue reloads automatically on the configured refresh interval, so
waiting tickets move to "Sedang Berlangsung" on screen without any
keypress. Staff see the whole queue; patients see their own tickets.`,
		Usage: "antrian dashboard [flags]",
		Examples: []cli.Example{
			{
				Description: "Open the dashboard",
				Command:     "antrian dashboard",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("dashboard", pflag.ContinueOnError)
			flagSet.StringVar(&configPath, "config", "", "config file path")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			session, err := cli.LoadSession()
			if err != nil {
				return err
			}
			env, err := cli.LoadEnv(configPath, cli.NewCommandLogger().With("command", "dashboard"))
			if err != nil {
				return err
			}

			model := NewModel(Config{
				Session:      session,
				Service:      env.Service,
				Clock:        clock.Real(),
				RefreshEvery: env.Config.RefreshInterval(),
			})
			program := tea.NewProgram(model, tea.WithAltScreen())
			_, err = program.Run()
			return err
		},
	}
}
