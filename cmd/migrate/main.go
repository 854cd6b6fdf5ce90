// Command migrate manages the postgres schema for stock, fund and audit
// tables. The sqlite driver migrates itself on server start.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"tijori/internal/config"
	"tijori/internal/database"
	"tijori/internal/logger"
)

const usage = `usage: migrate <command> [arg]

  up [N]       apply all pending holding migrations, or the next N
  down [N]     roll back the last N migrations (default 1)
  version      print the applied schema version
  force V      mark version V as applied after fixing a dirty migration`

// migrationsSource is relative to the repository root.
const migrationsSource = "file://migrations"

// migrator is the subset of *migrate.Migrate the commands use.
type migrator interface {
	Up() error
	Steps(n int) error
	Version() (uint, bool, error)
	Force(v int) error
}

type command struct {
	name string
	n    int
}

func main() {
	logger.Init(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	if err := run(os.Args[1:]); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func run(args []string) error {
	cmd, err := parseCommand(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dbConfig := database.NewConfig(cfg)
	if dbConfig.Driver != database.DriverPostgres {
		return fmt.Errorf("DB_DRIVER=%s is migrated on server start; this command only targets postgres", dbConfig.Driver)
	}

	m, err := migrate.New(migrationsSource, dbConfig.MigrationURL())
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	return apply(m, cmd, logger.Get())
}

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{}, errors.New(usage)
	}

	cmd := command{name: args[0]}
	switch cmd.name {
	case "up":
		cmd.n = 0
	case "down":
		cmd.n = 1
	case "version":
		if len(args) > 1 {
			return command{}, errors.New("version takes no argument")
		}
		return cmd, nil
	case "force":
		if len(args) != 2 {
			return command{}, errors.New("force needs a version")
		}
	default:
		return command{}, fmt.Errorf("unknown command %q\n%s", cmd.name, usage)
	}

	if len(args) > 2 {
		return command{}, fmt.Errorf("%s takes at most one argument", cmd.name)
	}
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 0 || (n == 0 && cmd.name != "force") {
			return command{}, fmt.Errorf("invalid %s argument %q", cmd.name, args[1])
		}
		cmd.n = n
	}
	return cmd, nil
}

func apply(m migrator, cmd command, log *zap.SugaredLogger) error {
	switch cmd.name {
	case "up":
		var err error
		if cmd.n > 0 {
			err = m.Steps(cmd.n)
		} else {
			err = m.Up()
		}
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration up failed: %w", err)
		}
		log.Info("Holding tables are up to date")

	case "down":
		if err := m.Steps(-cmd.n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration down failed: %w", err)
		}
		log.Infof("Rolled back %d migration(s)", cmd.n)

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Info("No holding migrations applied yet")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		if dirty {
			log.Warnf("Schema version %d is dirty; fix it and run: migrate force %d", version, version)
			return nil
		}
		log.Infof("Schema version: %d", version)

	case "force":
		if err := m.Force(cmd.n); err != nil {
			return fmt.Errorf("force version %d failed: %w", cmd.n, err)
		}
		log.Infof("Schema version forced to %d", cmd.n)
	}

	return nil
}
