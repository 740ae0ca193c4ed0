package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/portfolio/internal/domain/beat"
	"github.com/rpggio/portfolio/internal/repository"
)

// BeatRepository implements beat.Repository.
type BeatRepository struct {
	db *DB
}

// NewBeatRepository creates a new BeatRepository
func NewBeatRepository(db *DB) *BeatRepository {
	return &BeatRepository{db: db}
}

const beatColumns = `id, title, description, audio_url, cover_image_url, genre, duration, created_at`

// Create inserts b and sets its ID.
func (r *BeatRepository) Create(ctx context.Context, b *beat.Beat) error {
	query := `
		INSERT INTO beats (title, description, audio_url, cover_image_url, genre, duration, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	err := r.db.queryRow(ctx, query,
		b.Title,
		nullString(b.Description),
		b.AudioURL,
		nullString(b.CoverImageURL),
		nullString(b.Genre),
		nullInt(b.Duration),
		b.CreatedAt,
	).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("failed to create beat: %w", err)
	}
	return nil
}

// Get retrieves a beat by ID
func (r *BeatRepository) Get(ctx context.Context, id int64) (*beat.Beat, error) {
	query := `SELECT ` + beatColumns + ` FROM beats WHERE id = ?`

	b, err := scanBeat(r.db.queryRow(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get beat: %w", err)
	}
	return b, nil
}

// List returns beats newest first. A non-positive limit returns all rows.
func (r *BeatRepository) List(ctx context.Context, limit int) ([]beat.Beat, error) {
	query := `SELECT ` + beatColumns + ` FROM beats ORDER BY created_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list beats: %w", err)
	}
	defer rows.Close()

	beats := []beat.Beat{}
	for rows.Next() {
		b, err := scanBeat(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan beat: %w", err)
		}
		beats = append(beats, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating beats: %w", err)
	}
	return beats, nil
}

// Update overwrites every mutable column of b.
func (r *BeatRepository) Update(ctx context.Context, b *beat.Beat) error {
	query := `
		UPDATE beats
		SET title = ?, description = ?, audio_url = ?, cover_image_url = ?,
			genre = ?, duration = ?
		WHERE id = ?
	`

	result, err := r.db.exec(ctx, query,
		b.Title,
		nullString(b.Description),
		b.AudioURL,
		nullString(b.CoverImageURL),
		nullString(b.Genre),
		nullInt(b.Duration),
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update beat: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a beat if it exists.
func (r *BeatRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.exec(ctx, `DELETE FROM beats WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete beat: %w", err)
	}
	return nil
}

func scanBeat(row rowScanner) (*beat.Beat, error) {
	var b beat.Beat
	var description, coverImageURL, genre sql.NullString
	var duration sql.NullInt64
	if err := row.Scan(
		&b.ID,
		&b.Title,
		&description,
		&b.AudioURL,
		&coverImageURL,
		&genre,
		&duration,
		&b.CreatedAt,
	); err != nil {
		return nil, err
	}
	b.Description = description.String
	b.CoverImageURL = coverImageURL.String
	b.Genre = genre.String
	if duration.Valid {
		d := int(duration.Int64)
		b.Duration = &d
	}
	return &b, nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
