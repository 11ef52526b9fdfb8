package models

import (
	"time"
)

type Review struct {
	ID          int64     `json:"id" db:"id"`
	Description string    `json:"description" db:"description"`
	Rating      int       `json:"rating" db:"rating"`
	UserID      int64     `json:"user_id" db:"user_id"`
	CompanyID   int64     `json:"company_id" db:"company_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}

func (Review) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS reviews (
		id BIGSERIAL PRIMARY KEY,
		description TEXT NOT NULL,
		rating SMALLINT NOT NULL CHECK (rating >= 1 AND rating <= 5),
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		company_id BIGINT NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS idx_reviews_user ON reviews(user_id);
	CREATE INDEX IF NOT EXISTS idx_reviews_company ON reviews(company_id);`
}
