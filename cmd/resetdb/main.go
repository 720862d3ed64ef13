package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/devconnect/api/config"
)

// resetdb tears the schema down and re-applies every migration, then prints
// the resulting users table structure. Destructive; meant for development
// and staging databases only.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		log.Fatalf("migrate driver: %v", err)
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", cfg.MigrationsDir), "postgres", driver)
	if err != nil {
		log.Fatalf("migrate init: %v", err)
	}

	log.Println("dropping schema...")
	if err := m.Down(); err != nil && !errors.Is(migrate.ErrNoChange, err) {
		// A dirty or partially-applied schema is expected here; log and continue.
		log.Printf("down failed (this might be normal): %v", err)
	}

	log.Println("re-applying migrations...")
	if err := m.Up(); err != nil && !errors.Is(migrate.ErrNoChange, err) {
		log.Fatalf("up failed: %v", err)
	}

	rows, err := db.Query(`
		SELECT column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_name = 'users'
		ORDER BY ordinal_position
	`)
	if err != nil {
		log.Fatalf("failed to inspect users table: %v", err)
	}
	defer func() { _ = rows.Close() }()

	fmt.Println("users table structure:")
	for rows.Next() {
		var name, dataType, nullable string
		if err := rows.Scan(&name, &dataType, &nullable); err != nil {
			log.Fatalf("scan: %v", err)
		}
		fmt.Printf("  %-12s %-26s nullable=%s\n", name, dataType, nullable)
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("rows: %v", err)
	}

	log.Println("reset completed successfully")
}
