package database

import (
	"database/sql"
	"fmt"
	"log"

	"reviews-server/models"

	_ "github.com/lib/pq"
)

type DB struct {
	*sql.DB
}

var Database *DB

// Connect establishes a connection to the PostgreSQL database
func Connect(databaseURL string) (*DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	Database = &DB{db}
	return Database, nil
}

// InitializeTables creates all tables if they don't exist.
// Order matters: companies reference categories, reviews reference both
// users and companies.
func (db *DB) InitializeTables() error {
	tables := []interface {
		TableName() string
		CreateTableSQL() string
	}{
		models.User{},
		models.Category{},
		models.Company{},
		models.Review{},
	}

	for _, table := range tables {
		log.Printf("Creating table: %s", table.TableName())
		if _, err := db.Exec(table.CreateTableSQL()); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.TableName(), err)
		}
	}

	log.Println("All tables created successfully!")
	return nil
}
