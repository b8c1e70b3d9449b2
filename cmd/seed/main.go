package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-task-tracker/config"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := "demo"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO UPDATE SET username = EXCLUDED.username
		RETURNING id
	`, uuid.NewString(), username, hash, time.Now().UTC()).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s username=%s password=%s\n", id, username, password)

	titles := []string{"Buy milk", "Write report", "Call dentist"}
	for i, title := range titles {
		_, err := db.Exec(`
			INSERT INTO tasks (id, user_id, title, description, priority, tags,
			                   due_date, completed, archived, created_at)
			VALUES ($1, $2, $3, '', 'medium', '{}', NULL, false, false, $4)
		`, uuid.NewString(), username, title, time.Now().UTC().Add(time.Duration(i)*time.Second))
		if err != nil {
			log.Fatalf("failed to seed task %q: %v", title, err)
		}
	}
	fmt.Printf("seeded %d tasks for %s\n", len(titles), username)
}
