package models

import (
	"time"
)

type Company struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	UID          string    `json:"uid" db:"uid"`
	Address      string    `json:"address" db:"address"`
	Phone        string    `json:"phone" db:"phone"`
	Email        string    `json:"email" db:"email"`
	Image        string    `json:"image" db:"image"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CategoryID   int64     `json:"category_id" db:"category_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func (Company) TableName() string {
	return "companies"
}

// Deleting a category removes its companies, and their reviews with them.
func (Company) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS companies (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		uid TEXT NOT NULL UNIQUE,
		address TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL UNIQUE,
		image TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		category_id BIGINT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS idx_companies_category ON companies(category_id);`
}
