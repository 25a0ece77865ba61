package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema crea las tablas si no existen. Se llama en el arranque y un
// fallo acá es fatal: sin store no hay servicio.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const schema = `
		CREATE EXTENSION IF NOT EXISTS vector;

		CREATE TABLE IF NOT EXISTS questions (
			id         TEXT PRIMARY KEY,
			text       TEXT NOT NULL,
			trait      TEXT NOT NULL,
			is_reverse BOOLEAN NOT NULL DEFAULT FALSE,
			position   INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS participants (
			participant_id       TEXT PRIMARY KEY,
			display_name         TEXT NOT NULL,
			job_performance      DOUBLE PRECISION NOT NULL DEFAULT 0,
			academic_performance DOUBLE PRECISION NOT NULL DEFAULT 0,
			justification        TEXT NOT NULL DEFAULT '',
			role_fits            TEXT[] NOT NULL DEFAULT '{}',
			trait_profile        vector(5),
			created_at           TIMESTAMPTZ NOT NULL,
			updated_at           TIMESTAMPTZ NOT NULL
		);

		CREATE TABLE IF NOT EXISTS trait_scores (
			id             UUID PRIMARY KEY,
			participant_id TEXT NOT NULL REFERENCES participants(participant_id) ON DELETE CASCADE,
			trait          TEXT NOT NULL,
			percentage     DOUBLE PRECISION NOT NULL,
			created_at     TIMESTAMPTZ NOT NULL,
			UNIQUE (participant_id, trait)
		);
	`
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
