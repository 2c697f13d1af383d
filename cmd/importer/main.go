// Package main loads a roster snapshot (resources and allocations) from a JSON
// file into planning.db.
//
// Usage:
//
//	importer -file snapshot.json
package main

import (
	"flag"
	"os"

	"github.com/aristath/resourceplan/internal/config"
	"github.com/aristath/resourceplan/internal/database"
	"github.com/aristath/resourceplan/internal/modules/roster"
	"github.com/aristath/resourceplan/pkg/logger"
)

func main() {
	file := flag.String("file", "", "path to a JSON roster snapshot")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})

	if *file == "" {
		log.Fatal().Msg("-file is required")
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("Failed to open snapshot")
	}
	defer f.Close()

	db, err := database.New(database.Config{
		Path:    cfg.DatabasePath(),
		Profile: database.ProfileStandard,
		Name:    "planning",
		Driver:  cfg.DBDriver,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open planning database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate planning database")
	}

	result, err := roster.NewImporter(db.Conn(), log).ImportJSON(f)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("Import failed")
	}

	log.Info().
		Int("resources", result.Resources).
		Int("allocations", result.Allocations).
		Str("database", db.Path()).
		Msg("Snapshot imported")
}
