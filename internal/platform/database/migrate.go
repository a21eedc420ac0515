package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/gosimple/slug"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		hashed_password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'student',
		email_verified BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		wallet_address TEXT NOT NULL,
		tokens INTEGER NOT NULL DEFAULT 0 CHECK (tokens >= 0),
		total_earned INTEGER NOT NULL DEFAULT 0,
		bio TEXT NOT NULL DEFAULT '',
		institution TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS activities (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		category TEXT NOT NULL,
		reward INTEGER NOT NULL CHECK (reward > 0),
		proof_type TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS submissions (
		activity_id INTEGER NOT NULL,
		student_id TEXT NOT NULL,
		activity_title TEXT NOT NULL,
		student_name TEXT NOT NULL,
		student_email TEXT NOT NULL,
		status TEXT NOT NULL,
		proof_type TEXT NOT NULL,
		proof_value TEXT NOT NULL,
		tokens INTEGER NOT NULL,
		submitted_at TIMESTAMPTZ NOT NULL,
		reviewed_at TIMESTAMPTZ,
		PRIMARY KEY (activity_id, student_id)
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		hash TEXT NOT NULL,
		type TEXT NOT NULL,
		from_account TEXT NOT NULL,
		to_account TEXT NOT NULL,
		amount INTEGER NOT NULL CHECK (amount > 0),
		status TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS certificates (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL,
		student_name TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		token_id TEXT NOT NULL,
		category TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		issued_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS admin_settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		platform_name TEXT NOT NULL,
		auto_approve_threshold INTEGER NOT NULL,
		max_tokens_per_day INTEGER NOT NULL,
		maintenance_mode BOOLEAN NOT NULL,
		notifications_enabled BOOLEAN NOT NULL
	)`,
}

type seedActivity struct {
	ID        int
	Title     string
	Category  string
	Reward    int
	ProofType string
}

// The reward catalog is reference data; changing a reward here never touches
// tokens already captured on existing submissions.
var catalogSeed = []seedActivity{
	{1, "Attendance Streak", "Academic", 50, "percentage"},
	{2, "CGPA Milestone", "Academic", 150, "percentage"},
	{3, "Hackathon Participation", "Technical", 200, "file"},
	{4, "Research Paper", "Academic", 300, "link"},
	{5, "Attendance", "Academic", 50, "percentage"},
	{6, "Community Volunteering", "Social", 100, "text"},
	{7, "Open Source Contribution", "Technical", 250, "link"},
	{8, "Sports Achievement", "Extracurricular", 120, "file"},
}

// Migrate applies the schema and seeds the reward catalog and the default
// admin settings row. Safe to run on every startup.
func Migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	for _, a := range catalogSeed {
		_, err := db.Exec(
			`INSERT INTO activities (id, title, slug, category, reward, proof_type)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (id) DO NOTHING`,
			a.ID, a.Title, slug.Make(a.Title), a.Category, a.Reward, a.ProofType,
		)
		if err != nil {
			return fmt.Errorf("seed activity %d: %w", a.ID, err)
		}
	}

	_, err := db.Exec(
		`INSERT INTO admin_settings (id, platform_name, auto_approve_threshold, max_tokens_per_day, maintenance_mode, notifications_enabled)
		 VALUES (1, 'Learn2Earn', 0, 1000, FALSE, TRUE)
		 ON CONFLICT (id) DO NOTHING`,
	)
	if err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	log.Println("Database schema up to date.")
	return nil
}
