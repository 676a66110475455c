package main

import (
	"flag"
	"fmt"
	"os"

	"cleaning-service-scheduler/cmd/bootstrap"
	"cleaning-service-scheduler/config"
	"cleaning-service-scheduler/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
)

func main() {
	steps := flag.Int("steps", 1, "number of migrations to roll back with down")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: migrate [-steps N] up|down")
	}
	flag.Parse()

	cfg, err := config.LoadConfig(".env")
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	log, err := bootstrap.NewLogger(cfg.App)
	if err != nil {
		logrus.Fatal(err)
	}

	if cfg.DB.Driver != "postgres" {
		log.Fatal("SQL migrations only run against postgres; sqlite is migrated on startup")
	}

	switch flag.Arg(0) {
	case "up":
		err = database.MigrateUp(cfg.DB)
	case "down":
		err = database.MigrateDown(cfg.DB, *steps)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Infof("Migration %s complete", flag.Arg(0))
}
