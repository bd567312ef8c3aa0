package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/taskflow/internal/cli"
	"github.com/idilsaglam/taskflow/internal/config"
	"github.com/idilsaglam/taskflow/internal/logging"
	"github.com/idilsaglam/taskflow/internal/store/csvstore"
	"github.com/idilsaglam/taskflow/internal/tui"
	"github.com/idilsaglam/taskflow/internal/ui"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the exit code so deferred flushes happen before os.Exit.
func run(args []string) int {
	fs := flag.NewFlagSet("taskflow", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: taskflow [flags] [command [args]]")
		fs.PrintDefaults()
	}
	cfg, err := config.Load(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			cli.PrintHelp(os.Stdout)
			return cli.ExitOK
		}
		fmt.Fprintln(os.Stderr, err)
		return cli.ExitUsage
	}

	logger := logging.New(os.Stderr, logging.Options{
		Level:           cfg.LogLevel,
		Format:          cfg.LogFormat,
		ReportTimestamp: cfg.LogTimestamps,
	})
	out := ui.NewPrinter(os.Stdout, cfg.Theme, cfg.NoColor)

	store := csvstore.Open(cfg.DataFile, logger)
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("could not save tasks", "path", store.Path(), "err", err)
		}
	}()
	logger.Debug("task file", "path", store.Path(), "tasks", len(store.List()))

	shell := cli.New(store, out, cli.Options{
		Browse: func() error { return tui.Run(store, out.Theme()) },
	})

	// Remaining args run as a single command.
	if rest := fs.Args(); len(rest) > 0 {
		return shell.RunArgs(rest)
	}
	cli.PrintHelp(os.Stdout)
	return shell.Run(os.Stdin)
}
