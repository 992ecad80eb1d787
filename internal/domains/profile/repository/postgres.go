package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"vocalhub-backend/internal/domains/profile/model"
	"vocalhub-backend/internal/shared/utils"
)

type postgresProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresProfileRepository(pool *pgxpool.Pool) Repository {
	return &postgresProfileRepository{pool: pool}
}

const profileColumns = `
	id, name, gender, engines, languages,
	avatar_path, avatar_thumb_path, image_path, description, created_at`

// InsertProfile runs inside a caller-owned transaction so a profile and the
// submission that introduces it commit together.
func InsertProfile(ctx context.Context, tx pgx.Tx, p *model.VoiceProfile) error {
	query := `
		INSERT INTO voice_profiles (
			id, name, gender, engines, languages,
			avatar_path, image_path, description, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := tx.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Gender,
		pq.Array(p.Engines),
		pq.Array(p.Languages),
		p.AvatarRef,
		p.ImageRef,
		p.Description,
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert voice profile: %w", err)
	}
	return nil
}

// =====================================================
// READ
// =====================================================

func (r *postgresProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.VoiceProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM voice_profiles WHERE id = $1`

	p, err := scanProfile(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get voice profile: %w", err)
	}
	return p, nil
}

func (r *postgresProfileRepository) List(ctx context.Context, filter model.ListFilter) ([]*model.VoiceProfile, error) {
	var where utils.WhereBuilder
	if filter.Query != "" {
		where.Add("name ILIKE ('%%' || $%d || '%%')", filter.Query)
	}
	if filter.Engine != "" {
		where.Add("$%d = ANY(engines)", filter.Engine)
	}
	if filter.Language != "" {
		where.Add("$%d = ANY(languages)", filter.Language)
	}
	if filter.Gender != "" {
		where.Add("gender = $%d", filter.Gender)
	}

	query := `SELECT ` + profileColumns + ` FROM voice_profiles` + where.SQL() + ` ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list voice profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]*model.VoiceProfile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan voice profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// =====================================================
// UPDATE
// =====================================================

func (r *postgresProfileRepository) SetAvatarThumb(ctx context.Context, id uuid.UUID, ref string) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE voice_profiles SET avatar_thumb_path = $2 WHERE id = $1`, id, ref)
	if err != nil {
		return fmt.Errorf("failed to set avatar thumbnail: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrProfileNotFound
	}
	return nil
}

func scanProfile(row pgx.Row) (*model.VoiceProfile, error) {
	p := &model.VoiceProfile{}
	var engines, languages []string

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Gender,
		pq.Array(&engines),
		pq.Array(&languages),
		&p.AvatarRef,
		&p.AvatarThumbRef,
		&p.ImageRef,
		&p.Description,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Engines = engines
	p.Languages = languages
	return p, nil
}
