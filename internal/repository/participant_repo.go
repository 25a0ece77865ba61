package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"persona-fit/internal/domain"
)

// ParticipantRepository es el contrato de persistencia de participantes.
//
// Upsert es idempotente por participant_id: nombre, performance y
// justificación se reemplazan (no se acumulan) y el set de trait scores se
// sustituye completo en la misma transacción, de modo que nunca sobreviven
// rasgos de una entrega anterior. Find relee siempre el store, garantizando
// que una lectura observa el último commit aunque venga de otro proceso.
type ParticipantRepository interface {
	Find(ctx context.Context, participantID string) (domain.Participant, error)
	Upsert(ctx context.Context, participant domain.Participant) error
	SaveRoleFits(ctx context.Context, participantID string, roleFits []string) error
	FindSimilar(ctx context.Context, participantID string, k int) ([]domain.SimilarParticipant, error)
}

// PgParticipantRepository implementa ParticipantRepository usando pgxpool.
// Las claves primarias hacen estructuralmente imposible el duplicado que el
// resto del sistema asume resuelto.
type PgParticipantRepository struct {
	pool *pgxpool.Pool
}

func NewPgParticipantRepository(pool *pgxpool.Pool) *PgParticipantRepository {
	return &PgParticipantRepository{pool: pool}
}

func (r *PgParticipantRepository) Find(ctx context.Context, participantID string) (domain.Participant, error) {
	const query = `
		SELECT participant_id, display_name, job_performance, academic_performance, justification, role_fits, created_at, updated_at
		FROM participants
		WHERE participant_id = $1
	`
	var p domain.Participant
	err := r.pool.QueryRow(ctx, query, participantID).Scan(
		&p.ID,
		&p.DisplayName,
		&p.Performance.JobPerformance,
		&p.Performance.AcademicPerformance,
		&p.Justification,
		&p.RoleFits,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Participant{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Participant{}, domain.NewStoreError("find participant", err)
	}

	const scoresQuery = `
		SELECT id, participant_id, trait, percentage, created_at
		FROM trait_scores
		WHERE participant_id = $1
		ORDER BY trait
	`
	rows, err := r.pool.Query(ctx, scoresQuery, participantID)
	if err != nil {
		return domain.Participant{}, domain.NewStoreError("find trait scores", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ts domain.TraitScore
		if err := rows.Scan(&ts.ID, &ts.ParticipantID, &ts.Trait, &ts.Percentage, &ts.CreatedAt); err != nil {
			return domain.Participant{}, domain.NewStoreError("scan trait score", err)
		}
		p.TraitScores = append(p.TraitScores, ts)
	}
	if err := rows.Err(); err != nil {
		return domain.Participant{}, domain.NewStoreError("find trait scores", err)
	}

	return p, nil
}

func (r *PgParticipantRepository) Upsert(ctx context.Context, participant domain.Participant) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.NewStoreError("begin upsert", err)
	}
	defer tx.Rollback(ctx)

	const upsertQuery = `
		INSERT INTO participants (participant_id, display_name, job_performance, academic_performance, justification, trait_profile, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (participant_id)
		DO UPDATE SET
			display_name = EXCLUDED.display_name,
			job_performance = EXCLUDED.job_performance,
			academic_performance = EXCLUDED.academic_performance,
			justification = EXCLUDED.justification,
			trait_profile = EXCLUDED.trait_profile,
			updated_at = EXCLUDED.updated_at
	`
	_, err = tx.Exec(ctx, upsertQuery,
		participant.ID,
		participant.DisplayName,
		participant.Performance.JobPerformance,
		participant.Performance.AcademicPerformance,
		participant.Justification,
		traitProfileVector(participant.TraitScores),
		participant.CreatedAt,
		participant.UpdatedAt,
	)
	if err != nil {
		return domain.NewStoreError("upsert participant", err)
	}

	// Reemplazo total: no deben sobrevivir rasgos de una entrega anterior.
	if _, err := tx.Exec(ctx, `DELETE FROM trait_scores WHERE participant_id = $1`, participant.ID); err != nil {
		return domain.NewStoreError("clear trait scores", err)
	}

	const insertScore = `
		INSERT INTO trait_scores (id, participant_id, trait, percentage, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, ts := range participant.TraitScores {
		if _, err := tx.Exec(ctx, insertScore, ts.ID, ts.ParticipantID, ts.Trait, ts.Percentage, ts.CreatedAt); err != nil {
			return domain.NewStoreError("insert trait score "+ts.Trait, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.NewStoreError("commit upsert", err)
	}
	return nil
}

func (r *PgParticipantRepository) SaveRoleFits(ctx context.Context, participantID string, roleFits []string) error {
	const query = `
		UPDATE participants
		SET role_fits = $2, updated_at = NOW()
		WHERE participant_id = $1
	`
	tag, err := r.pool.Exec(ctx, query, participantID, roleFits)
	if err != nil {
		return domain.NewStoreError("save role fits", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PgParticipantRepository) FindSimilar(ctx context.Context, participantID string, k int) ([]domain.SimilarParticipant, error) {
	if k <= 0 {
		k = 5
	}
	const query = `
		SELECT p.participant_id, p.display_name,
		       p.trait_profile <-> ref.trait_profile AS distance
		FROM participants p,
		     (SELECT trait_profile FROM participants WHERE participant_id = $1) ref
		WHERE p.participant_id <> $1
		  AND p.trait_profile IS NOT NULL
		  AND ref.trait_profile IS NOT NULL
		ORDER BY p.trait_profile <-> ref.trait_profile
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, participantID, k)
	if err != nil {
		return nil, domain.NewStoreError("find similar", err)
	}
	defer rows.Close()

	var out []domain.SimilarParticipant
	for rows.Next() {
		var sp domain.SimilarParticipant
		if err := rows.Scan(&sp.ID, &sp.DisplayName, &sp.Distance); err != nil {
			return nil, domain.NewStoreError("scan similar", err)
		}
		out = append(out, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreError("find similar", err)
	}
	return out, nil
}

// traitProfileVector arma el vector de 5 dimensiones en el orden canónico
// de TraitNames para la búsqueda de perfiles similares.
func traitProfileVector(scores []domain.TraitScore) pgvector.Vector {
	byTrait := make(map[string]float64, len(scores))
	for _, ts := range scores {
		byTrait[ts.Trait] = ts.Percentage
	}
	dims := make([]float32, len(domain.TraitNames))
	for i, trait := range domain.TraitNames {
		dims[i] = float32(byTrait[trait])
	}
	return pgvector.NewVector(dims)
}
