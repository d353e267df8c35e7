package main

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/communitydesk/bulletin-board/config"
	"github.com/communitydesk/bulletin-board/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@communitydesk.local"
	password := "password123"
	name := "Demo User"
	hash, err := helpers.HashPassword(password, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET name=EXCLUDED.name
		RETURNING id
	`, uuid.NewString(), name, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	posts := []struct {
		title, contactName, eventDate, contactInfo, timeline, description string
	}{
		{"Food Drive", "Ann", "2026-09-12", "ann@communitydesk.local", "9am-1pm", "Canned goods collection at the community center."},
		{"Park Cleanup", "Ben", "2026-09-20", "555-0101", "all day", "Bring gloves; bags provided."},
	}
	for _, p := range posts {
		if _, err := db.Exec(`
			INSERT INTO posts (owner_id, title, contact_name, event_date, contact_info, timeline, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, id, p.title, p.contactName, p.eventDate, p.contactInfo, p.timeline, p.description); err != nil {
			log.Fatalf("failed to seed post %q: %v", p.title, err)
		}
	}
	fmt.Printf("seeded %d posts for user %s\n", len(posts), id)
}
