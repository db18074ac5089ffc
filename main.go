// main.go
// Purpose: Application entry point. Loads configuration, builds the simulator
// client and controller, performs the initial load and starts the operator
// console (line or hotkey mode). Handles shutdown on interrupt (Ctrl+C).
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"elevsim/common"
	"elevsim/elevclient"
	"elevsim/elevconsole"
	"elevsim/elevctl"
)

func main() {
	envFile := flag.String("env", ".env", "dotenv file with default configuration")
	hotkeys := flag.Bool("keys", false, "single-key operator mode instead of command lines")
	autoStart := flag.Bool("auto", false, "arm auto-step once the first snapshot is loaded")
	flag.Parse()

	cfg, err := common.DefaultConfig(*envFile)
	log := common.GetLoggerConfigured(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("file", *envFile).Msg("loading environment file")
	}
	log.Info().
		Str("api", cfg.APIBase).
		Str("transport", cfg.Transport).
		Interface("defaults", cfg.Defaults).
		Msg("starting elevator simulator client")

	// ctrl + c handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	httpClient, closeTransport := elevclient.NewHTTPClient(cfg)
	defer closeTransport()

	client := elevclient.New(cfg, httpClient, common.ComponentLogger("client"))
	ctl := elevctl.New(client, cfg, common.ComponentLogger("controller"))
	defer ctl.Close()

	if err := ctl.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("initial load failed; use refresh once the simulator is up")
	}
	if *autoStart {
		if err := ctl.EnableAuto(); err != nil {
			log.Warn().Err(err).Msg("auto-step not started")
		}
	}

	con := elevconsole.New(ctl, os.Stdout, common.ComponentLogger("console"))
	con.Show()

	if *hotkeys {
		err = hotkeyThread(ctx, con)
	} else {
		err = consoleThread(ctx, con, os.Stdin, os.Stdout)
	}
	if err != nil {
		log.Error().Err(err).Msg("console stopped")
	}
	log.Info().Msg("Shutting down")
}
