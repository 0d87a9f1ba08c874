package repository

import (
	"context"
	"errors"
	"fmt"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/jokehub/jokehub/internal/joke/domain"
)

var ErrJokeNotFound = errors.New("joke not found")

type Repository interface {
	Create(ctx context.Context, joke domain.Joke) error
	FindByID(ctx context.Context, id domain.ID) (domain.Joke, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Summary, error)
	Count(ctx context.Context) (int, error)
	FindByOffset(ctx context.Context, offset int) (domain.Joke, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, joke domain.Joke) error {
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO jokes (id, name, content, jokester_id) VALUES ($1, $2, $3, $4)`,
		string(joke.ID),
		joke.Name,
		joke.Content,
		joke.JokesterID,
	)
	if err != nil {
		return fmt.Errorf("failed to create joke: %w", err)
	}
	return nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.Joke, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, name, content, jokester_id, created_at FROM jokes WHERE id = $1`,
		string(id),
	)

	joke, err := scanJoke(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Joke{}, ErrJokeNotFound
		}
		return domain.Joke{}, fmt.Errorf("failed to find joke by id: %w", err)
	}

	return joke, nil
}

func (r *PgRepository) ListRecent(ctx context.Context, limit int) ([]domain.Summary, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, name FROM jokes ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jokes: %w", err)
	}
	defer rows.Close()

	var jokes []domain.Summary
	for rows.Next() {
		var j domain.Summary
		if err := rows.Scan(&j.ID, &j.Name); err != nil {
			return nil, fmt.Errorf("failed to scan joke: %w", err)
		}
		jokes = append(jokes, j)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	return jokes, nil
}

func (r *PgRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM jokes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count jokes: %w", err)
	}
	return count, nil
}

// FindByOffset backs the random-joke read: a count picks the offset, this
// fetches the row. Ordering by id keeps the offset stable within one read.
func (r *PgRepository) FindByOffset(ctx context.Context, offset int) (domain.Joke, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, name, content, jokester_id, created_at FROM jokes ORDER BY id LIMIT 1 OFFSET $1`,
		offset,
	)

	joke, err := scanJoke(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Joke{}, ErrJokeNotFound
		}
		return domain.Joke{}, fmt.Errorf("failed to find joke by offset: %w", err)
	}

	return joke, nil
}

func scanJoke(row pgx.Row) (domain.Joke, error) {
	var joke domain.Joke
	err := row.Scan(&joke.ID, &joke.Name, &joke.Content, &joke.JokesterID, &joke.CreatedAt)
	return joke, err
}
