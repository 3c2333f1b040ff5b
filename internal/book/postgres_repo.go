package book

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func translateConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503": // foreign_key_violation
			return ErrGenreNotFound
		case "23505": // unique_violation
			return ErrTitleTaken
		}
	}
	return err
}

func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	const query = `
	INSERT INTO books (id, title, writer, publisher, publication_year, description, price, stock_quantity, genre_id)
	VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		b.Title, b.Writer, b.Publisher, b.PublicationYear, b.Description,
		b.Price, b.StockQuantity, b.GenreID,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return translateConstraint(err)
	}
	return nil
}

func (r *PostgresRepo) List(ctx context.Context, q Query) ([]Book, int, error) {
	clauses := []string{"b.deleted_at IS NULL"}
	args := []any{}
	argn := 1

	if q.GenreID != "" {
		clauses = append(clauses, fmt.Sprintf("b.genre_id = $%d", argn))
		args = append(args, q.GenreID)
		argn++
	}

	if q.Search != "" {
		clauses = append(clauses, fmt.Sprintf("(b.title ILIKE $%d OR b.writer ILIKE $%d OR b.publisher ILIKE $%d)", argn, argn+1, argn+2))
		pattern := "%" + q.Search + "%"
		args = append(args, pattern, pattern, pattern)
		argn += 3
	}

	where := "WHERE " + strings.Join(clauses, " AND ")

	titleOrder := "ASC"
	if q.TitleDesc {
		titleOrder = "DESC"
	}
	yearOrder := "ASC"
	if q.YearDesc {
		yearOrder = "DESC"
	}

	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM books b %s", where)
	var total int
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := fmt.Sprintf(`
		SELECT b.id, b.title, b.writer, b.publisher, b.publication_year, COALESCE(b.description, ''),
		       b.price, b.stock_quantity, b.genre_id, g.name,
		       b.created_at, b.updated_at
		FROM books b
		JOIN genres g ON g.id = b.genre_id
		%s
		ORDER BY b.title %s, b.publication_year %s
		LIMIT $%d OFFSET $%d`,
		where, titleOrder, yearOrder, argn, argn+1)

	args = append(args, q.Limit, q.Offset)
	rows, err := r.db.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Writer, &b.Publisher, &b.PublicationYear, &b.Description,
			&b.Price, &b.StockQuantity, &b.GenreID, &b.GenreName,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Book, error) {
	// ids that cannot be a uuid cannot match a row
	if uuid.Validate(id) != nil {
		return Book{}, ErrNotFound
	}

	const query = `
	SELECT b.id, b.title, b.writer, b.publisher, b.publication_year, COALESCE(b.description, ''),
	       b.price, b.stock_quantity, b.genre_id, g.name,
	       b.created_at, b.updated_at
	FROM books b
	JOIN genres g ON g.id = b.genre_id
	WHERE b.id = $1 AND b.deleted_at IS NULL
	LIMIT 1
	`
	var b Book
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Title, &b.Writer, &b.Publisher, &b.PublicationYear, &b.Description,
		&b.Price, &b.StockQuantity, &b.GenreID, &b.GenreName,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) GetByTitle(ctx context.Context, title string) (Book, error) {
	const query = `
	SELECT id, title, writer, publisher, publication_year, COALESCE(description, ''),
	       price, stock_quantity, genre_id, created_at, updated_at
	FROM books
	WHERE title = $1 AND deleted_at IS NULL
	LIMIT 1
	`
	var b Book
	err := r.db.QueryRow(ctx, query, title).Scan(
		&b.ID, &b.Title, &b.Writer, &b.Publisher, &b.PublicationYear, &b.Description,
		&b.Price, &b.StockQuantity, &b.GenreID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Update(ctx context.Context, id string, p Patch) (Book, error) {
	if uuid.Validate(id) != nil {
		return Book{}, ErrNotFound
	}

	sets := []string{"updated_at = now()"}
	args := []any{id}
	argn := 2

	addSet := func(col string, val any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, argn))
		args = append(args, val)
		argn++
	}

	if p.Title != nil {
		addSet("title", *p.Title)
	}
	if p.Writer != nil {
		addSet("writer", *p.Writer)
	}
	if p.Publisher != nil {
		addSet("publisher", *p.Publisher)
	}
	if p.PublicationYear != nil {
		addSet("publication_year", *p.PublicationYear)
	}
	if p.Description != nil {
		addSet("description", *p.Description)
	}
	if p.Price != nil {
		addSet("price", *p.Price)
	}
	if p.StockQuantity != nil {
		addSet("stock_quantity", *p.StockQuantity)
	}
	if p.GenreID != nil {
		addSet("genre_id", *p.GenreID)
	}

	query := fmt.Sprintf(`
	UPDATE books
	SET %s
	WHERE id = $1 AND deleted_at IS NULL
	RETURNING id, title, writer, publisher, publication_year, COALESCE(description, ''),
	          price, stock_quantity, genre_id, created_at, updated_at`,
		strings.Join(sets, ", "))

	var b Book
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.Title, &b.Writer, &b.Publisher, &b.PublicationYear, &b.Description,
		&b.Price, &b.StockQuantity, &b.GenreID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, translateConstraint(err)
	}
	return b, nil
}

func (r *PostgresRepo) GenreExists(ctx context.Context, genreID string) (bool, error) {
	if uuid.Validate(genreID) != nil {
		return false, nil
	}

	const query = `SELECT EXISTS (SELECT 1 FROM genres WHERE id = $1 AND deleted_at IS NULL)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, genreID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresRepo) SoftDelete(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return ErrNotFound
	}

	const query = `
	UPDATE books
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
