package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/stemsi/quizlingua/internal/config"
	"github.com/stemsi/quizlingua/internal/logger"
)

func main() {
	var (
		migrationDir string
		steps        int
	)
	flag.StringVar(&migrationDir, "path", "migrations", "Path to migration files")
	flag.IntVar(&steps, "steps", 0, "Apply N migrations instead of all (negative rolls back)")
	flag.Usage = printUsage
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(2)
	}

	m, err := migrate.New("file://"+migrationDir, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Str("path", migrationDir).Msg("Migration failed to initialize")
	}
	defer m.Close()

	if err := run(m, args, steps, log); err != nil {
		log.Fatal().Err(err).Str("command", args[0]).Msg("Migration failed")
	}
}

func run(m *migrate.Migrate, args []string, steps int, log zerolog.Logger) error {
	switch args[0] {
	case "up":
		var err error
		if steps != 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
		if ignoreNoChange(err) != nil {
			return err
		}
		log.Info().Msg("Migrated up successfully")
	case "down":
		var err error
		if steps != 0 {
			err = m.Steps(-abs(steps))
		} else {
			err = m.Down()
		}
		if ignoreNoChange(err) != nil {
			return err
		}
		log.Info().Msg("Migrated down successfully")
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Info().Msg("No migrations applied")
			return nil
		}
		if err != nil {
			return err
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current version")
	case "force":
		if len(args) < 2 {
			return errors.New("force requires a version argument")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[1], err)
		}
		if err := m.Force(v); err != nil {
			return err
		}
		log.Info().Int("version", v).Msg("Forced version")
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: migrate [flags] <command>")
	fmt.Fprintln(os.Stderr, "Commands: up, down, version, force <version>")
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
}
