package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"hourglass/bot"
	"hourglass/config"
	"hourglass/dal"
)

var (
	configPath = flag.String(
		"config",
		"config.yml",
		"Path to the YAML configuration file.",
	)
	botToken = flag.String(
		"token",
		"",
		"Bot access token. Overrides the config file and DISCORD_TOKEN.",
	)
	dbPath = flag.String(
		"dbPath",
		"",
		"SQLite database file path. Overrides the config file.",
	)
)

func main() {
	flag.Parse()

	// Secrets may live in a .env file during development.
	godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *botToken != "" {
		cfg.Token = *botToken
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if cfg.Token == "" {
		fmt.Fprintln(os.Stderr, "no bot token: set -token, DISCORD_TOKEN or the config file")
		flag.Usage()
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	db, err := dal.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	log.Info().Str("path", cfg.DBPath).Msg("connected to database")

	b, err := bot.New(cfg, db, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start bot")
	}
	log.Info().Msg("bot is up")

	pollEvery, _ := cfg.PollEvery()
	ticker := time.NewTicker(pollEvery)
	done := make(chan bool)
	go b.PollReminders(ticker, done)

	if stats := b.StartStatsReporter(); stats != nil {
		defer stats.Stop()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ticker.Stop()
	done <- true

	log.Info().Msg("shutting down")
	b.Shutdown()
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
