// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"log/slog"

	"github.com/klinikmitra/antrian/lib/config"
	"github.com/klinikmitra/antrian/lib/flatfile"
	"github.com/klinikmitra/antrian/lib/queue"
	"github.com/klinikmitra/antrian/lib/service"
	"github.com/klinikmitra/antrian/lib/userstore"
)

// Env is the wired application environment a command operates on:
// configuration, both stores, and the service layer on top of them.
type Env struct {
	Config  *config.Config
	Users   *userstore.Store
	Tickets *queue.Store
	Service *service.Service
	Logger  *slog.Logger
}

// LoadEnv loads configuration and wires the stores and service. An
// empty configPath falls back to the ANTRIAN_CONFIG environment
// variable, then built-in defaults.
func LoadEnv(configPath string, logger *slog.Logger) (*Env, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.EnsurePaths(); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = NewCommandLogger()
	}

	users := userstore.New(flatfile.New(cfg.UsersPath()), logger)
	tickets := queue.New(queue.Config{
		File:         flatfile.New(cfg.TicketsPath()),
		Logger:       logger,
		PromoteAfter: cfg.PromoteAfter(),
	})

	return &Env{
		Config:  cfg,
		Users:   users,
		Tickets: tickets,
		Service: service.New(service.Config{
			Users:       users,
			Tickets:     tickets,
			Logger:      logger,
			Departments: cfg.Departments,
		}),
		Logger: logger,
	}, nil
}
