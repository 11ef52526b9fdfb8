package handlers

import (
	"reviews-server/database"
)

var DB *database.DB

// InitializeHandlers wires the shared database handle used by all handlers.
func InitializeHandlers(db *database.DB) {
	DB = db
}
