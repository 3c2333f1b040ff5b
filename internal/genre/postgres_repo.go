package genre

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, g *Genre) error {
	const query = `
	INSERT INTO genres (id, name)
	VALUES (gen_random_uuid(), $1)
	RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, g.Name).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
}

func (r *PostgresRepo) List(ctx context.Context, q Query) ([]Genre, int, error) {
	const countQuery = `
	SELECT COUNT(*)
	FROM genres
	WHERE deleted_at IS NULL
	AND ($1 = '' OR name ILIKE '%' || $1 || '%')
	`
	var total int
	if err := r.db.QueryRow(ctx, countQuery, q.Search).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
	SELECT id, name, created_at, updated_at
	FROM genres
	WHERE deleted_at IS NULL
	AND ($1 = '' OR name ILIKE '%' || $1 || '%')
	ORDER BY name ASC
	LIMIT $2 OFFSET $3
	`
	if q.Desc {
		query = `
	SELECT id, name, created_at, updated_at
	FROM genres
	WHERE deleted_at IS NULL
	AND ($1 = '' OR name ILIKE '%' || $1 || '%')
	ORDER BY name DESC
	LIMIT $2 OFFSET $3
	`
	}

	rows, err := r.db.Query(ctx, query, q.Search, q.Limit, q.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var genres []Genre
	for rows.Next() {
		var g Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, 0, err
		}
		genres = append(genres, g)
	}
	return genres, total, rows.Err()
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Genre, error) {
	// ids that cannot be a uuid cannot match a row
	if uuid.Validate(id) != nil {
		return Genre{}, ErrNotFound
	}

	const query = `
	SELECT id, name, created_at, updated_at
	FROM genres
	WHERE id = $1 AND deleted_at IS NULL
	LIMIT 1
	`
	var g Genre
	err := r.db.QueryRow(ctx, query, id).Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Genre{}, ErrNotFound
		}
		return Genre{}, err
	}
	return g, nil
}

func (r *PostgresRepo) ListBooks(ctx context.Context, genreID string) ([]BookSummary, error) {
	const query = `
	SELECT id, title, writer, price, stock_quantity
	FROM books
	WHERE genre_id = $1 AND deleted_at IS NULL
	ORDER BY title ASC
	`
	rows, err := r.db.Query(ctx, query, genreID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := make([]BookSummary, 0)
	for rows.Next() {
		var b BookSummary
		if err := rows.Scan(&b.ID, &b.Title, &b.Writer, &b.Price, &b.StockQuantity); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *PostgresRepo) GetByName(ctx context.Context, name string) (Genre, error) {
	const query = `
	SELECT id, name, created_at, updated_at
	FROM genres
	WHERE name = $1 AND deleted_at IS NULL
	LIMIT 1
	`
	var g Genre
	err := r.db.QueryRow(ctx, query, name).Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Genre{}, ErrNotFound
		}
		return Genre{}, err
	}
	return g, nil
}

func (r *PostgresRepo) Update(ctx context.Context, id, name string) (Genre, error) {
	if uuid.Validate(id) != nil {
		return Genre{}, ErrNotFound
	}

	const query = `
	UPDATE genres
	SET name = $2, updated_at = now()
	WHERE id = $1 AND deleted_at IS NULL
	RETURNING id, name, created_at, updated_at
	`
	var g Genre
	err := r.db.QueryRow(ctx, query, id, name).Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Genre{}, ErrNotFound
		}
		return Genre{}, err
	}
	return g, nil
}

func (r *PostgresRepo) SoftDelete(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return ErrNotFound
	}

	const query = `
	UPDATE genres
	SET deleted_at = now(), updated_at = now()
	WHERE id = $1 AND deleted_at IS NULL
	`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
