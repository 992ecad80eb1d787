package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	profileModel "vocalhub-backend/internal/domains/profile/model"
	"vocalhub-backend/internal/domains/song/model"
	"vocalhub-backend/internal/shared/utils"
)

type postgresSongRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresSongRepository(pool *pgxpool.Pool) Repository {
	return &postgresSongRepository{pool: pool}
}

const songSelect = `
	SELECT s.id, s.title, s.profile_id, s.submitter_id, s.file_path, s.cover_path,
	       s.creator, s.bilibili_url, s.lyrics, p.name, s.created_at
	FROM songs s
	JOIN voice_profiles p ON p.id = s.profile_id`

func (r *postgresSongRepository) Create(ctx context.Context, s *model.Song) error {
	query := `
		INSERT INTO songs (
			id, title, profile_id, submitter_id, file_path, cover_path,
			creator, bilibili_url, lyrics, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		s.ID,
		s.Title,
		s.ProfileID,
		s.SubmitterID,
		s.FileRef,
		s.CoverRef,
		s.Creator,
		s.BilibiliURL,
		s.Lyrics,
		s.CreatedAt,
	)
	if err != nil {
		// profile deleted between lookup and insert
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return profileModel.ErrProfileNotFound
		}
		return fmt.Errorf("failed to insert song: %w", err)
	}
	return nil
}

func (r *postgresSongRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Song, error) {
	s, err := scanSong(r.pool.QueryRow(ctx, songSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSongNotFound
		}
		return nil, fmt.Errorf("failed to get song: %w", err)
	}
	return s, nil
}

// List - Songs newest first, optionally for one profile
func (r *postgresSongRepository) List(ctx context.Context, profileID *uuid.UUID) ([]*model.Song, error) {
	var where utils.WhereBuilder
	if profileID != nil {
		where.Add("s.profile_id = $%d", *profileID)
	}
	return r.query(ctx, songSelect+where.SQL()+` ORDER BY s.created_at DESC`, where.Args()...)
}

func (r *postgresSongRepository) ListBySubmitter(ctx context.Context, submitterID uuid.UUID) ([]*model.Song, error) {
	return r.query(ctx, songSelect+` WHERE s.submitter_id = $1 ORDER BY s.created_at DESC`, submitterID)
}

func (r *postgresSongRepository) query(ctx context.Context, sql string, args ...any) ([]*model.Song, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	defer rows.Close()

	songs := make([]*model.Song, 0)
	for rows.Next() {
		s, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		songs = append(songs, s)
	}
	return songs, rows.Err()
}

func scanSong(row pgx.Row) (*model.Song, error) {
	s := &model.Song{}
	err := row.Scan(
		&s.ID,
		&s.Title,
		&s.ProfileID,
		&s.SubmitterID,
		&s.FileRef,
		&s.CoverRef,
		&s.Creator,
		&s.BilibiliURL,
		&s.Lyrics,
		&s.ProfileName,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}
