package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A local .env is optional; absence is not an error.
	_ = godotenv.Load()

	log := newLogger()

	rootCmd := &cobra.Command{
		Use:           "daybreak",
		Short:         "Daybreak personal-productivity backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newServeCmd(log), newPlanCmd(log), newPlanAllCmd(log))
	return rootCmd.Execute()
}

// newLogger builds the process logger: human-readable console output on a
// terminal, JSON otherwise.
func newLogger() zerolog.Logger {
	var log zerolog.Logger
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	} else {
		log = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	if lvl, err := zerolog.ParseLevel(os.Getenv("DAYBREAK_LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		log = log.Level(lvl)
	}
	return log
}

func dbPath() string {
	if p := os.Getenv("DAYBREAK_DB"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "daybreak.db"
	}
	return home + "/.daybreak/daybreak.db"
}
