// Package db provides optional PostgreSQL persistence for completed company
// profiles. The pipeline never depends on it; a missing DATABASE_URL simply
// disables the store.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/company-profiler/internal/types"
)

// ErrNotFound is returned when no stored profile exists for a domain.
var ErrNotFound = errors.New("profile not found")

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the profile table when it does not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS company_profiles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			domain TEXT NOT NULL UNIQUE,
			profile JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// StoredProfile is a persisted company profile row.
type StoredProfile struct {
	ID        uuid.UUID             `json:"id"`
	Domain    string                `json:"domain"`
	Profile   *types.CompanyProfile `json:"profile"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// SaveProfile upserts the profile for a domain and returns its row ID.
func (db *DB) SaveProfile(ctx context.Context, domain string, profile *types.CompanyProfile) (uuid.UUID, error) {
	jsonBytes, err := json.Marshal(profile)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal profile: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO company_profiles (domain, profile)
		 VALUES ($1, $2)
		 ON CONFLICT (domain) DO UPDATE SET profile = $2, updated_at = NOW()
		 RETURNING id`,
		domain, jsonBytes,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save profile for %s: %w", domain, err)
	}
	return id, nil
}

// GetProfile retrieves the stored profile for a domain, or nil when absent.
func (db *DB) GetProfile(ctx context.Context, domain string) (*StoredProfile, error) {
	var stored StoredProfile
	var profileBytes []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, domain, profile, created_at, updated_at
		 FROM company_profiles WHERE domain = $1`,
		domain,
	).Scan(&stored.ID, &stored.Domain, &profileBytes, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile for %s: %w", domain, err)
	}

	if err := json.Unmarshal(profileBytes, &stored.Profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile for %s: %w", domain, err)
	}
	return &stored, nil
}

// ListProfiles retrieves recently updated profiles. A limit of 0 uses 50.
func (db *DB) ListProfiles(ctx context.Context, limit int) ([]StoredProfile, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, domain, profile, created_at, updated_at
		 FROM company_profiles ORDER BY updated_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []StoredProfile
	for rows.Next() {
		var stored StoredProfile
		var profileBytes []byte
		if err := rows.Scan(&stored.ID, &stored.Domain, &profileBytes, &stored.CreatedAt, &stored.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		if err := json.Unmarshal(profileBytes, &stored.Profile); err != nil {
			return nil, fmt.Errorf("failed to decode profile for %s: %w", stored.Domain, err)
		}
		profiles = append(profiles, stored)
	}
	return profiles, nil
}

// DeleteProfile removes the stored profile for a domain.
func (db *DB) DeleteProfile(ctx context.Context, domain string) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM company_profiles WHERE domain = $1`, domain)
	if err != nil {
		return fmt.Errorf("failed to delete profile for %s: %w", domain, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, domain)
	}
	return nil
}
