package main

import (
	"log"

	"reviews-server/config"
	"reviews-server/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a handful of categories, companies, users and reviews for local
// development. Run with: go run ./scripts
func main() {
	if err := config.Load(); err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.Connect(config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.InitializeTables(); err != nil {
		log.Fatal("Failed to initialize tables:", err)
	}

	password, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash seed password:", err)
	}

	categories := []string{"Restaurants", "Hotels", "Tech"}
	categoryIDs := make([]int64, 0, len(categories))
	for _, name := range categories {
		var id int64
		if err := db.QueryRow(`INSERT INTO categories (name) VALUES ($1) RETURNING id`, name).Scan(&id); err != nil {
			log.Fatal("Failed to seed category:", err)
		}
		categoryIDs = append(categoryIDs, id)
	}

	companies := []struct {
		name, address, phone, email string
		category                    int64
	}{
		{"Cafe Aurora", "12 Main St", "555-0101", "hello@cafeaurora.example", categoryIDs[0]},
		{"Hotel Miramar", "1 Seaside Ave", "555-0102", "front@miramar.example", categoryIDs[1]},
		{"Bitworks", "99 Loop Rd", "555-0103", "team@bitworks.example", categoryIDs[2]},
	}
	companyIDs := make([]int64, 0, len(companies))
	for _, co := range companies {
		var id int64
		err := db.QueryRow(
			`INSERT INTO companies (name, uid, address, phone, email, image, password_hash, category_id)
			 VALUES ($1, $2, $3, $4, $5, '', $6, $7) RETURNING id`,
			co.name, uuid.New().String(), co.address, co.phone, co.email, string(password), co.category,
		).Scan(&id)
		if err != nil {
			log.Fatal("Failed to seed company:", err)
		}
		companyIDs = append(companyIDs, id)
	}

	users := []struct{ name, email string }{
		{"Ana Torres", "ana@example.com"},
		{"Luis Vega", "luis@example.com"},
	}
	userIDs := make([]int64, 0, len(users))
	for _, u := range users {
		var id int64
		err := db.QueryRow(
			`INSERT INTO users (name, uid, image, email, password_hash)
			 VALUES ($1, $2, '', $3, $4) RETURNING id`,
			u.name, uuid.New().String(), u.email, string(password),
		).Scan(&id)
		if err != nil {
			log.Fatal("Failed to seed user:", err)
		}
		userIDs = append(userIDs, id)
	}

	reviews := []struct {
		description string
		rating      int
		user        int64
		company     int64
	}{
		{"Great coffee and friendly staff.", 5, userIDs[0], companyIDs[0]},
		{"Good, but a bit noisy at lunch.", 4, userIDs[1], companyIDs[0]},
		{"Rooms were clean, service slow.", 3, userIDs[0], companyIDs[1]},
	}
	for _, r := range reviews {
		if _, err := db.Exec(
			`INSERT INTO reviews (description, rating, user_id, company_id) VALUES ($1, $2, $3, $4)`,
			r.description, r.rating, r.user, r.company,
		); err != nil {
			log.Fatal("Failed to seed review:", err)
		}
	}

	log.Println("Seed data inserted successfully!")
}
