package database

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables if they do not exist. Splits and
// settlements cascade with their parents so a deleted trip or expense
// never leaves orphaned rows behind.
func CreateSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username VARCHAR(50) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(72) NOT NULL,
			avatar_url TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS trips (
			id BIGSERIAL PRIMARY KEY,
			owner_id BIGINT NOT NULL REFERENCES users(id),
			name VARCHAR(100) NOT NULL,
			destination VARCHAR(100) NOT NULL,
			currency CHAR(3) NOT NULL DEFAULT 'USD',
			start_date DATE,
			end_date DATE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS participants (
			id BIGSERIAL PRIMARY KEY,
			trip_id BIGINT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255),
			user_id BIGINT REFERENCES users(id),
			is_owner BOOLEAN NOT NULL DEFAULT FALSE,
			invite_token VARCHAR(36) NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id BIGSERIAL PRIMARY KEY,
			trip_id BIGINT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
			paid_by_participant_id BIGINT NOT NULL REFERENCES participants(id),
			amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
			currency CHAR(3) NOT NULL DEFAULT 'USD',
			category VARCHAR(50) NOT NULL,
			description VARCHAR(255) NOT NULL,
			date DATE NOT NULL,
			split_type VARCHAR(10) NOT NULL CHECK (split_type IN ('EQUAL', 'CUSTOM', 'PERCENTAGE')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS splits (
			id BIGSERIAL PRIMARY KEY,
			expense_id BIGINT NOT NULL REFERENCES expenses(id) ON DELETE CASCADE,
			participant_id BIGINT NOT NULL REFERENCES participants(id) ON DELETE CASCADE,
			amount NUMERIC(12,2) NOT NULL CHECK (amount >= 0),
			paid BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (expense_id, participant_id)
		)`,
		`CREATE TABLE IF NOT EXISTS settlements (
			id BIGSERIAL PRIMARY KEY,
			trip_id BIGINT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
			from_participant_id BIGINT NOT NULL REFERENCES participants(id),
			to_participant_id BIGINT NOT NULL REFERENCES participants(id),
			amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
			currency CHAR(3) NOT NULL DEFAULT 'USD',
			note VARCHAR(500),
			settled_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK (from_participant_id <> to_participant_id)
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id BIGSERIAL PRIMARY KEY,
			recipient_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			message TEXT NOT NULL,
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			related_entity_type VARCHAR(20),
			related_entity_id BIGINT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_participants_trip ON participants(trip_id)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_trip ON expenses(trip_id)`,
		`CREATE INDEX IF NOT EXISTS idx_splits_expense ON splits(expense_id)`,
		`CREATE INDEX IF NOT EXISTS idx_settlements_trip ON settlements(trip_id)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications(recipient_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}
