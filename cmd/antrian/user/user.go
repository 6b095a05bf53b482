// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

// Package user implements the account commands: register, login,
// logout, whoami, and seed-admin.
package user

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/klinikmitra/antrian/cmd/antrian/cli"
	"github.com/klinikmitra/antrian/lib/record"
	"github.com/klinikmitra/antrian/lib/service"
)

// Command returns the "user" command tree.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "user",
		Summary: "Manage clinic accounts",
		Subcommands: []*cli.Command{
			registerCommand(),
			loginCommand(),
			logoutCommand(),
			whoamiCommand(),
			seedAdminCommand(),
		},
	}
}

func registerCommand() *cli.Command {
	var configPath string
	var reg service.Registration
	var passwordFile string

	return &cli.Command{
		Name:    "register",
		Summary: "Register a new patient account",
		Description: "Register a new patient account in the clinic's account store.\n" +
			"A medical record number is assigned automatically from the NIK.",
		Usage: "antrian user register --nik <nik> --nama <name> --email <email> [flags]",
		Examples: []cli.Example{
			{
				Description: "Register and read the password from a file",
				Command:     "antrian user register --nik 3171234567 --nama \"Budi Santoso\" --email budi@mail.test --password-file ./pw",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("register", pflag.ContinueOnError)
			flagSet.StringVar(&configPath, "config", "", "config file path")
			flagSet.StringVar(&reg.NIK, "nik", "", "national identity number")
			flagSet.StringVar(&reg.Nama, "nama", "", "full name")
			flagSet.StringVar(&reg.Alamat, "alamat", "", "home address")
			flagSet.StringVar(&reg.NoTelepon, "telepon", "", "phone number")
			flagSet.StringVar(&reg.Email, "email", "", "email address")
			flagSet.StringVar(&reg.TanggalLahir, "tanggal-lahir", "", "date of birth (YYYY-MM-DD)")
			flagSet.StringVar(&passwordFile, "password-file", "", "read the password from this file instead of prompting")
			return flagSet
		},
		Run: func(args []string) error {
			logger := cli.NewCommandLogger().With("command", "user/register")
			env, err := cli.LoadEnv(configPath, logger)
			if err != nil {
				return err
			}

			password, err := cli.ReadPassword("Password: ", passwordFile)
			if err != nil {
				return err
			}
			reg.Password = password

			user, err := env.Service.Register(reg)
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "Registered %s (medical record %s)\n", user.Nama, user.NoRekamMedis)
			return nil
		},
	}
}

func loginCommand() *cli.Command {
	var configPath string
	var passwordFile string

	return &cli.Command{
		Name:    "login",
		Summary: "Log in and save a session",
		Description: "Authenticate against the account store and save the session to disk.\n" +
			"The identifier may be an email address or a full name; both match\n" +
			"case-insensitively.",
		Usage: "antrian user login <identifier> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("login", pflag.ContinueOnError)
			flagSet.StringVar(&configPath, "config", "", "config file path")
			flagSet.StringVar(&passwordFile, "password-file", "", "read the password from this file instead of prompting")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one identifier argument")
			}

			logger := cli.NewCommandLogger().With("command", "user/login")
			env, err := cli.LoadEnv(configPath, logger)
			if err != nil {
				return err
			}

			password, err := cli.ReadPassword("Password: ", passwordFile)
			if err != nil {
				return err
			}

			session, err := env.Service.Authenticate(args[0], password)
			if err != nil {
				return err
			}
			if err := cli.SaveSession(session); err != nil {
				return fmt.Errorf("saving session: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Logged in as %s (%s)\n", session.User.Nama, session.User.Role)
			fmt.Fprintf(os.Stderr, "Session saved to %s\n", cli.SessionFilePath())
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:    "logout",
		Summary: "Discard the saved session",
		Run: func(args []string) error {
			if err := cli.ClearSession(); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "Logged out")
			return nil
		},
	}
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:    "whoami",
		Summary: "Show the logged-in account",
		Run: func(args []string) error {
			session, err := cli.LoadSession()
			if err != nil {
				return err
			}
			fmt.Printf("%s <%s> nik=%s role=%s\n",
				session.User.Nama, session.User.Email, session.User.NIK, session.User.Role)
			return nil
		},
	}
}

func seedAdminCommand() *cli.Command {
	var configPath string
	var passwordFile string
	admin := record.User{}

	return &cli.Command{
		Name:    "seed-admin",
		Summary: "Create the initial staff account",
		Description: "Create the initial staff account if the store has none yet.\n" +
			"Exits with code 1 when an admin already exists.",
		Usage: "antrian user seed-admin --nik <nik> --nama <name> --email <email> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("seed-admin", pflag.ContinueOnError)
			flagSet.StringVar(&configPath, "config", "", "config file path")
			flagSet.StringVar(&admin.NIK, "nik", "", "national identity number")
			flagSet.StringVar(&admin.Nama, "nama", "", "full name")
			flagSet.StringVar(&admin.Email, "email", "", "email address")
			flagSet.StringVar(&admin.Jabatan, "jabatan", "Administrator", "job title")
			flagSet.StringVar(&passwordFile, "password-file", "", "read the password from this file instead of prompting")
			return flagSet
		},
		Run: func(args []string) error {
			if admin.NIK == "" || admin.Nama == "" || admin.Email == "" {
				return fmt.Errorf("--nik, --nama, and --email are required")
			}

			logger := cli.NewCommandLogger().With("command", "user/seed-admin")
			env, err := cli.LoadEnv(configPath, logger)
			if err != nil {
				return err
			}

			password, err := cli.ReadPassword("Password: ", passwordFile)
			if err != nil {
				return err
			}
			admin.Password = password

			created, err := env.Service.SeedAdmin(admin)
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintln(os.Stderr, "An admin account already exists; nothing seeded")
				return &cli.ExitError{Code: 1}
			}

			fmt.Fprintf(os.Stderr, "Seeded admin %s\n", admin.Nama)
			return nil
		},
	}
}
