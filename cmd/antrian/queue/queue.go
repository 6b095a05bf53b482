// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

// Package queue implements the ticket commands: list, show, create,
// status, delete, and reset.
//
// Patients operate on their own tickets; staff operate on the whole
// queue. The acting account comes from the saved session.
package queue

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/klinikmitra/antrian/cmd/antrian/cli"
	"github.com/klinikmitra/antrian/lib/record"
	"github.com/klinikmitra/antrian/lib/service"
)

// Command returns the "queue" command tree.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "queue",
		Summary: "Manage the patient queue",
		Subcommands: []*cli.Command{
			listCommand(),
			showCommand(),
			createCommand(),
			statusCommand(),
			deleteCommand(),
			resetCommand(),
		},
	}
}

// loadVisible returns the tickets the session may see: the whole
// queue for staff, own tickets for patients. The stale-promotion rule
// runs as part of the read.
func loadVisible(env *cli.Env, session service.Session) ([]record.Ticket, error) {
	if session.IsAdmin() {
		return env.Service.ListAllTickets(session)
	}
	return env.Service.ListTicketsForOwner(session.User.NIK)
}

func listCommand() *cli.Command {
	var configPath string
	var statusFilter string
	var departmentFilter string
	var searchText string

	return &cli.Command{
		Name:    "list",
		Summary: "List queue tickets",
		Description: "List queue tickets in a table. Staff see the whole queue; patients\n" +
			"see the tickets they created.",
		Usage: "antrian queue list [flags]",
		Examples: []cli.Example{
			{
				Description: "Only new tickets for one department",
				Command:     "antrian queue list --status Baru --poli \"Poli Gigi\"",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flagSet.StringVar(&configPath, "config", "", "config file path")
			flagSet.StringVar(&statusFilter, "status", "", "filter by status")
			flagSet.StringVar(&departmentFilter, "poli", "", "filter by department")
			flagSet.StringVar(&searchText, "search", "", "filter by patient name or complaint substring")
			return flagSet
		},
		Run: func(args []string) error {
			session, err := cli.LoadSession()
			if err != nil {
				return err
			}
			env, err := cli.LoadEnv(configPath, cli.NewCommandLogger().With("command", "queue/list"))
			if err != nil {
				return err
			}

			tickets, err := loadVisible(env, session)
			if err != nil {
				return err
			}

			var rows []record.Ticket
			for _, ticket := range tickets {
				if statusFilter != "" && !strings.EqualFold(string(ticket.Status), statusFilter) {
					continue
				}
				if departmentFilter != "" && !strings.EqualFold(ticket.Department, departmentFilter) {
					continue
				}
				if searchText != "" && !matchesSearch(ticket, searchText) {
					continue
				}
				rows = append(rows, ticket)
			}

			if len(rows) == 0 {
				fmt.Fprintln(os.Stderr, "No tickets")
				return nil
			}
			printTable(rows, time.Now())
			return nil
		},
	}
}

func matchesSearch(ticket record.Ticket, text string) bool {
	text = strings.ToLower(text)
	return strings.Contains(strings.ToLower(ticket.PatientName), text) ||
		strings.Contains(strings.ToLower(ticket.Complaint), text)
}

func printTable(tickets []record.Ticket, now time.Time) {
	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ID\tPASIEN\tPOLI\tSTATUS\tMENUNGGU\tDIBUAT")
	for _, ticket := range tickets {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			ticket.ID,
			ticket.PatientName,
			ticket.Department,
			ticket.Status,
			formatAge(ticket, now),
			ticket.CreatedAt.Format(record.TimestampLayout),
		)
	}
	tw.Flush()
}

// formatAge renders the waiting time for open tickets; finished
// tickets show a dash.
func formatAge(ticket record.Ticket, now time.Time) string {
	if ticket.Status.Terminal() {
		return "-"
	}
	return ticket.Age(now).Truncate(time.Second).String()
}

func showCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "show",
		Summary: "Show one ticket in full",
		Usage:   "antrian queue show <id> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
			flagSet.StringVar(&configPath, "config", "", "config file path")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one ticket id argument")
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid ticket id %q", args[0])
			}

			session, err := cli.LoadSession()
			if err != nil {
				return err
			}
			env, err := cli.LoadEnv(configPath, cli.NewCommandLogger().With("command", "queue/show"))
			if err != nil {
				return err
			}

			tickets, err := loadVisible(env, session)
			if err != nil {
				return err
			}
			for _, ticket := range tickets {
				if ticket.ID == id {
					printDetail(ticket)
					return nil
				}
			}
			return fmt.Errorf("no ticket %d", id)
		},
	}
}

func printDetail(ticket record.Ticket) {
	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", ticket.ID)
	fmt.Fprintf(tw, "Pasien:\t%s (NIK %s)\n", ticket.PatientName, ticket.PatientNIK)
	fmt.Fprintf(tw, "Alamat:\t%s\n", ticket.PatientAddress)
	fmt.Fprintf(tw, "Telepon:\t%s\n", ticket.PatientPhone)
	fmt.Fprintf(tw, "Poli:\t%s\n", ticket.Department)
	fmt.Fprintf(tw, "Keluhan:\t%s\n", strings.ReplaceAll(ticket.Complaint, "\n", "\n\t"))
	fmt.Fprintf(tw, "Status:\t%s\n", ticket.Status)
	fmt.Fprintf(tw, "Dibuat:\t%s oleh NIK %s\n", ticket.CreatedAt.Format(record.TimestampLayout), ticket.CreatorNIK)
	tw.Flush()
}

func createCommand() *cli.Command {
	var configPath string
	var draft service.TicketDraft

	return &cli.Command{
		Name:    "create",
		Summary: "File a new queue ticket",
		Description: "File a new queue ticket. Patients default the patient fields from\n" +
			"their own account; staff must supply them explicitly when filing on a\n" +
			"patient's behalf.",
		Usage: "antrian queue create --poli <department> --keluhan <complaint> [flags]",
		Examples: []cli.Example{
			{
				Description: "A patient files for themselves",
				Command:     "antrian queue create --poli \"Poli Umum\" --keluhan \"Demam tinggi\"",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("create", pflag.ContinueOnError)
			flagSet.StringVar(&configPath, "config", "", "config file path")
			flagSet.StringVar(&draft.PatientNIK, "pasien-nik", "", "patient NIK (defaults to the logged-in patient)")
			flagSet.StringVar(&draft.PatientName, "pasien-nama", "", "patient name (defaults to the logged-in patient)")
			flagSet.StringVar(&draft.PatientAddress, "alamat", "", "patient address")
			flagSet.StringVar(&draft.PatientPhone, "telepon", "", "patient phone")
			flagSet.StringVar(&draft.Department, "poli", "", "department")
			flagSet.StringVar(&draft.Complaint, "keluhan", "", "complaint")
			return flagSet
		},
		Run: func(args []string) error {
			session, err := cli.LoadSession()
			if err != nil {
				return err
			}
			env, err := cli.LoadEnv(configPath, cli.NewCommandLogger().With("command", "queue/create"))
			if err != nil {
				return err
			}

			if !session.IsAdmin() {
				if draft.PatientNIK == "" {
					draft.PatientNIK = session.User.NIK
				}
				if draft.PatientName == "" {
					draft.PatientName = session.User.Nama
				}
			}

			ticket, err := env.Service.CreateTicket(session, draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Created ticket %d for %s (%s)\n",
				ticket.ID, ticket.PatientName, ticket.Department)
			return nil
		},
	}
}

func statusCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "status",
		Summary: "Set a ticket's status (staff only)",
		Usage:   "antrian queue status <id> <status> [flags]",
		Description: "Set a ticket's status. Valid statuses: " +
			statusNames() + ".\nTickets in Selesai or Batal cannot be reopened.",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("status", pflag.ContinueOnError)
			flagSet.StringVar(&configPath, "config", "", "config file path")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("expected <id> and <status> arguments")
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid ticket id %q", args[0])
			}

			session, err := cli.LoadSession()
			if err != nil {
				return err
			}
			env, err := cli.LoadEnv(configPath, cli.NewCommandLogger().With("command", "queue/status"))
			if err != nil {
				return err
			}

			if err := env.Service.SetTicketStatus(session, id, record.Status(args[1])); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Ticket %d is now %s\n", id, args[1])
			return nil
		},
	}
}

func statusNames() string {
	statuses := record.Statuses()
	names := make([]string, len(statuses))
	for i, status := range statuses {
		names[i] = string(status)
	}
	return strings.Join(names, ", ")
}

func deleteCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "delete",
		Summary: "Remove a ticket (staff only)",
		Usage:   "antrian queue delete <id> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("delete", pflag.ContinueOnError)
			flagSet.StringVar(&configPath, "config", "", "config file path")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one ticket id argument")
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid ticket id %q", args[0])
			}

			session, err := cli.LoadSession()
			if err != nil {
				return err
			}
			env, err := cli.LoadEnv(configPath, cli.NewCommandLogger().With("command", "queue/delete"))
			if err != nil {
				return err
			}

			if err := env.Service.DeleteTicket(session, id); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Deleted ticket %d\n", id)
			return nil
		},
	}
}

func resetCommand() *cli.Command {
	var configPath string
	var force bool

	return &cli.Command{
		Name:    "reset",
		Summary: "Clear the entire queue (staff only)",
		Description: "Clear the entire queue. Ticket numbering restarts from 1.\n" +
			"Requires --force; there is no undo.",
		Usage: "antrian queue reset --force [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("reset", pflag.ContinueOnError)
			flagSet.StringVar(&configPath, "config", "", "config file path")
			flagSet.BoolVar(&force, "force", false, "confirm clearing every ticket")
			return flagSet
		},
		Run: func(args []string) error {
			if !force {
				return fmt.Errorf("refusing to clear the queue without --force")
			}

			session, err := cli.LoadSession()
			if err != nil {
				return err
			}
			env, err := cli.LoadEnv(configPath, cli.NewCommandLogger().With("command", "queue/reset"))
			if err != nil {
				return err
			}

			if err := env.Service.ResetAllTickets(session); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "Queue cleared")
			return nil
		},
	}
}
