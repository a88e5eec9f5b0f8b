package main

import (
	"fmt"
	"log/slog"
	"os"

	"hnsync/internal/cmd"
	"hnsync/internal/config"
	"hnsync/internal/helper"
	"hnsync/internal/logging"
)

var commands = map[string]func(config.Config, []string) error{
	"sync":         cmd.Sync,
	"fetch":        cmd.Fetch,
	"serve":        cmd.Serve,
	"list":         cmd.List,
	"delete":       cmd.Delete,
	"status":       cmd.Status,
	"set-interval": cmd.SetInterval,
	"set-workers":  cmd.SetWorkers,
}

func main() {
	if len(os.Args) < 2 {
		helper.PrintHelp(os.Stdout)
		os.Exit(1)
	}

	name := os.Args[1]
	switch name {
	case "--help", "-h", "help":
		helper.PrintHelp(os.Stdout)
		return
	}

	run, ok := commands[name]
	if !ok {
		fmt.Printf("unknown command: %s\n\n", name)
		helper.PrintHelp(os.Stdout)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Init("info", "")
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, os.Args[2:]); err != nil {
		slog.Error("command failed", "command", name, "error", err)
		os.Exit(1)
	}
}
