package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"smarttag/internal/repository/sqlite"

	"github.com/golang-migrate/migrate/v4"
)

func main() {
	dbPath := flag.String("db", "data/smarttag.db", "Database path")
	down := flag.Bool("down", false, "Roll back all migrations")
	flag.Parse()

	db, err := sqlite.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	m, err := db.Migrator()
	if err != nil {
		log.Fatalf("Failed to load migrations: %v", err)
	}

	if *down {
		fmt.Printf("Rolling back migrations on %s\n", *dbPath)
		err = m.Down()
	} else {
		fmt.Printf("Applying migrations to %s\n", *dbPath)
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("Migration failed: %v", err)
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		fmt.Println("Database has no migrations applied")
	case err != nil:
		log.Fatalf("Failed to read version: %v", err)
	default:
		fmt.Printf("Database at version %d (dirty: %v)\n", version, dirty)
	}
}
