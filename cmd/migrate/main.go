package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/stemsi/quiz-app/internal/config"
	"github.com/stemsi/quiz-app/internal/database"
	"github.com/stemsi/quiz-app/internal/logger"
	"github.com/stemsi/quiz-app/internal/repository"
	"github.com/stemsi/quiz-app/internal/service"
)

func main() {
	var migrationDir string
	flag.StringVar(&migrationDir, "path", "", "Read migrations from this directory instead of the embedded set (e.g. "+database.MigrationsDir+")")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return
	}

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	if args[0] == "seed" {
		seed(cfg)
		return
	}

	m, err := newMigrator(migrationDir, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Migration failed to initialize: %v", err)
	}
	defer m.Close()

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("Up failed: %v", err)
		}
		fmt.Println("Migrated up successfully")
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("Down failed: %v", err)
		}
		fmt.Println("Migrated down successfully")
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("Version failed: %v", err)
		}
		fmt.Printf("Version: %d, Dirty: %t\n", version, dirty)
	case "force":
		if len(args) < 2 {
			log.Fatal("force requires version argument")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatalf("Invalid version: %v", err)
		}
		if err := m.Force(v); err != nil {
			log.Fatalf("Force failed: %v", err)
		}
		fmt.Printf("Forced version to %d\n", v)
	default:
		printUsage()
	}
}

func newMigrator(dir, databaseURL string) (*migrate.Migrate, error) {
	if dir == "" {
		return database.NewMigrator(databaseURL)
	}
	return migrate.New("file://"+dir, databaseURL)
}

// seed inserts the sample questions into an empty question bank.
func seed(cfg *config.Config) {
	zl := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, zl)
	if err != nil {
		log.Fatalf("Connect failed: %v", err)
	}
	defer pool.Close()

	n, err := service.SeedSampleQuestions(ctx, repository.NewQuestionRepository(pool), zl)
	if err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	fmt.Printf("Inserted %d sample questions\n", n)
}

func printUsage() {
	fmt.Println("Usage: migrate [flags] <command>")
	fmt.Println("Commands: up, down, version, force <version>, seed")
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
