package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Adda-Baaj/reservation-desk/internal/app"
	"github.com/Adda-Baaj/reservation-desk/internal/config"
	"github.com/Adda-Baaj/reservation-desk/internal/logger"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "reservectl: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	global := pflag.NewFlagSet("reservectl", pflag.ContinueOnError)
	global.SetInterspersed(false)
	global.Usage = func() { usage(global) }
	config.RegisterFlags(global)
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		usage(global)
		return fmt.Errorf("missing command")
	}

	cfg, err := config.Load(global)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.DebugObj("reservectl starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	console, err := app.NewConsole(ctx, cfg, log, os.Stdout)
	if err != nil {
		logger.ErrorObj("failed to initialize console", "error", err.Error())
		return err
	}
	defer func() {
		if err := console.Close(); err != nil {
			logger.WarnObj("console close failed", "error", err.Error())
		}
	}()

	return dispatch(ctx, console, global.Arg(0), global.Args()[1:])
}

func usage(fs *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Usage: reservectl [global flags] <command> [flags]

Commands:
  list      list reservations (--date, --email)
  create    create a reservation (--name, --email, --date, --seats)
  delete    delete a reservation by id
  history   show recently settled requests from the journal (--limit)

Global flags:
%s`, fs.FlagUsages())
}
