// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete antrian CLI command tree.
package commands

import (
	"fmt"

	backupcmd "github.com/klinikmitra/antrian/cmd/antrian/backup"
	"github.com/klinikmitra/antrian/cmd/antrian/dashboard"
	queuecmd "github.com/klinikmitra/antrian/cmd/antrian/queue"
	usercmd "github.com/klinikmitra/antrian/cmd/antrian/user"

	"github.com/klinikmitra/antrian/cmd/antrian/cli"
	"github.com/klinikmitra/antrian/lib/version"
)

// Root builds and returns the complete antrian CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "antrian",
		Description: `Antrian: clinic patient queue tracker.

Register patient accounts, file queue tickets per department, and
track each ticket through its lifecycle. State lives in two flat
text files; tickets left waiting are promoted automatically.`,
		Subcommands: []*cli.Command{
			usercmd.Command(),
			queuecmd.Command(),
			dashboard.Command(),
			backupcmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("antrian %s\n", version.String())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Log in (saves a session locally)",
				Command:     "antrian user login budi@mail.test",
			},
			{
				Description: "File a ticket for yourself",
				Command:     "antrian queue create --poli \"Poli Umum\" --keluhan \"Demam tinggi\"",
			},
			{
				Description: "Watch the queue live",
				Command:     "antrian dashboard",
			},
		},
	}
}
