package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"vocalhub-backend/internal/domains/moderation/model"
	profileModel "vocalhub-backend/internal/domains/profile/model"
	profileRepo "vocalhub-backend/internal/domains/profile/repository"
	"vocalhub-backend/internal/shared/utils"
	"vocalhub-backend/pkg/database"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresModerationRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresModerationRepository(pool *pgxpool.Pool) Repository {
	return &postgresModerationRepository{pool: pool}
}

// tableFor is the only place a kind is mapped to storage
func tableFor(kind model.Kind) (string, error) {
	switch kind {
	case model.KindVoicebank:
		return "voicebanks", nil
	case model.KindTutorial:
		return "tutorials", nil
	}
	return "", model.ErrUnknownKind
}

// =====================================================
// CREATE
// =====================================================

// CreateVoicebank - Insert a voicebank, and its new profile when given, in a
// single transaction. Either both rows exist afterwards or neither does.
func (r *postgresModerationRepository) CreateVoicebank(
	ctx context.Context,
	vb *model.Voicebank,
	newProfile *profileModel.VoiceProfile,
) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		// 1. New profile first so the FK resolves
		if newProfile != nil {
			if err := profileRepo.InsertProfile(ctx, tx, newProfile); err != nil {
				return err
			}
		}

		// 2. Submission, always PENDING on insert
		query := `
			INSERT INTO voicebanks (
				id, profile_id, submitter_id, file_path, sample_path,
				voice_provider, status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		_, err := tx.Exec(ctx, query,
			vb.ID,
			vb.ProfileID,
			vb.SubmitterID,
			vb.FileRef,
			vb.SampleRef,
			vb.VoiceProvider,
			vb.Status,
			vb.CreatedAt,
			vb.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert voicebank: %w", err)
		}
		return nil
	})
}

func (r *postgresModerationRepository) CreateTutorial(ctx context.Context, t *model.Tutorial) error {
	query := `
		INSERT INTO tutorials (
			id, title, description, type, difficulty, file_path,
			engines, submitter_id, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		t.ID,
		t.Title,
		t.Description,
		t.Type,
		t.Difficulty,
		t.FileRef,
		pq.Array(t.Engines),
		t.SubmitterID,
		t.Status,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert tutorial: %w", err)
	}
	return nil
}

// =====================================================
// READ
// =====================================================

const voicebankSelect = `
	SELECT
		v.id, v.profile_id, v.submitter_id, v.file_path, v.sample_path,
		v.voice_provider, v.status, v.created_at, v.updated_at,
		p.name, p.avatar_path
	FROM voicebanks v
	JOIN voice_profiles p ON p.id = v.profile_id`

const tutorialSelect = `
	SELECT
		t.id, t.title, t.description, t.type, t.difficulty, t.file_path,
		t.engines, t.submitter_id, t.status, t.created_at, t.updated_at
	FROM tutorials t`

func (r *postgresModerationRepository) Get(ctx context.Context, kind model.Kind, id uuid.UUID) (model.Record, error) {
	var (
		rec model.Record
		err error
	)

	switch kind {
	case model.KindVoicebank:
		rec, err = scanVoicebank(r.pool.QueryRow(ctx, voicebankSelect+` WHERE v.id = $1`, id))
	case model.KindTutorial:
		rec, err = scanTutorial(r.pool.QueryRow(ctx, tutorialSelect+` WHERE t.id = $1`, id))
	default:
		return nil, model.ErrUnknownKind
	}

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", kind, err)
	}
	return rec, nil
}

// List - Records of one kind matching the filter, newest first.
// Kind-specific filters are ignored for the other kind.
func (r *postgresModerationRepository) List(ctx context.Context, kind model.Kind, filter model.ListFilter) ([]model.Record, error) {
	var (
		where  utils.WhereBuilder
		query  string
		alias  string
		scanFn func(pgx.Row) (model.Record, error)
	)

	switch kind {
	case model.KindVoicebank:
		query, alias = voicebankSelect, "v"
		scanFn = func(row pgx.Row) (model.Record, error) { return scanVoicebank(row) }
		if filter.ProfileID != nil {
			where.Add("v.profile_id = $%d", *filter.ProfileID)
		}
	case model.KindTutorial:
		query, alias = tutorialSelect, "t"
		scanFn = func(row pgx.Row) (model.Record, error) { return scanTutorial(row) }
		if filter.TutorialType != nil {
			where.Add("t.type = $%d", *filter.TutorialType)
		}
		if filter.Difficulty != nil {
			where.Add("t.difficulty = $%d", *filter.Difficulty)
		}
	default:
		return nil, model.ErrUnknownKind
	}

	// Shared moderation filters
	if filter.Status != nil {
		where.Add(alias+".status = $%d", *filter.Status)
	}
	if filter.SubmitterID != nil {
		where.Add(alias+".submitter_id = $%d", *filter.SubmitterID)
	}

	query += where.SQL() + ` ORDER BY ` + alias + `.created_at DESC`

	rows, err := r.pool.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	defer rows.Close()

	records := make([]model.Record, 0)
	for rows.Next() {
		rec, err := scanFn(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", kind, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", kind, err)
	}

	return records, nil
}

func (r *postgresModerationRepository) CountByStatus(ctx context.Context, kind model.Kind, status model.Status) (int, error) {
	table, err := tableFor(kind)
	if err != nil {
		return 0, err
	}

	var n int
	err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+table+` WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", kind, err)
	}
	return n, nil
}

// =====================================================
// STATUS TRANSITION
// =====================================================

// SetStatus - Unconditional overwrite; concurrent decisions resolve as last write wins
func (r *postgresModerationRepository) SetStatus(ctx context.Context, kind model.Kind, id uuid.UUID, status model.Status) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	query := `UPDATE ` + table + ` SET status = $2, updated_at = $3 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to set %s status: %w", kind, err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrSubmissionNotFound
	}
	return nil
}

// =====================================================
// SCANNERS
// =====================================================

func scanVoicebank(row pgx.Row) (*model.Voicebank, error) {
	vb := &model.Voicebank{Profile: &model.ProfileSummary{}}

	err := row.Scan(
		&vb.ID,
		&vb.ProfileID,
		&vb.SubmitterID,
		&vb.FileRef,
		&vb.SampleRef,
		&vb.VoiceProvider,
		&vb.Status,
		&vb.CreatedAt,
		&vb.UpdatedAt,
		&vb.Profile.Name,
		&vb.Profile.AvatarRef,
	)
	if err != nil {
		return nil, err
	}

	vb.Profile.ID = vb.ProfileID
	return vb, nil
}

func scanTutorial(row pgx.Row) (*model.Tutorial, error) {
	t := &model.Tutorial{}
	var engines []string

	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Type,
		&t.Difficulty,
		&t.FileRef,
		pq.Array(&engines),
		&t.SubmitterID,
		&t.Status,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Engines = engines
	return t, nil
}
