package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"vocalhub-backend/internal/domains/link/model"
	"vocalhub-backend/internal/shared/utils"
)

type Repository interface {
	Create(ctx context.Context, l *model.Link) error

	// List orders by category ASC, name ASC
	List(ctx context.Context, category *model.Category) ([]*model.Link, error)
}

type postgresLinkRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresLinkRepository(pool *pgxpool.Pool) Repository {
	return &postgresLinkRepository{pool: pool}
}

func (r *postgresLinkRepository) Create(ctx context.Context, l *model.Link) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO links (id, name, url, category, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, l.ID, l.Name, l.URL, l.Category, l.Description, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert link: %w", err)
	}
	return nil
}

func (r *postgresLinkRepository) List(ctx context.Context, category *model.Category) ([]*model.Link, error) {
	var where utils.WhereBuilder
	if category != nil {
		where.Add("category = $%d", *category)
	}

	query := `SELECT id, name, url, category, description, created_at FROM links` +
		where.SQL() + ` ORDER BY category ASC, name ASC`

	rows, err := r.pool.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	defer rows.Close()

	links := make([]*model.Link, 0)
	for rows.Next() {
		l := &model.Link{}
		if err := rows.Scan(&l.ID, &l.Name, &l.URL, &l.Category, &l.Description, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}
