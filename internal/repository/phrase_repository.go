package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"focototal-be/internal/database"
	"focototal-be/internal/entities"
)

const phraseColumns = `id, phrase, author, tags, user_id, created_at, updated_at`

type phraseRepository struct {
	db database.DBTX
}

func NewPhraseRepository(db database.DBTX) PhraseRepository {
	return &phraseRepository{db: db}
}

func (r *phraseRepository) Create(ctx context.Context, p *entities.Phrase) error {
	query := `
		INSERT INTO phrases (` + phraseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.Phrase, p.Author, pq.Array(tagsOrEmpty(p.Tags)), p.UserID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create phrase: %w", err)
	}
	return nil
}

func (r *phraseRepository) FindByID(ctx context.Context, userID, id string) (*entities.Phrase, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+phraseColumns+` FROM phrases WHERE id = $1 AND user_id = $2`, id, userID)
	p, err := scanPhrase(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find phrase: %w", err)
	}
	return p, nil
}

func (r *phraseRepository) List(ctx context.Context, f PhraseFilter) ([]*entities.Phrase, int, error) {
	var where whereClause
	if f.UserID != "" {
		where.add("user_id = $%[1]d", f.UserID)
	}
	if f.Author != "" {
		where.add("author ILIKE $%[1]d", containsPattern(f.Author))
	}
	if f.Tag != "" {
		where.add("$%[1]d = ANY(tags)", f.Tag)
	}
	if f.Search != "" {
		where.add("(phrase ILIKE $%[1]d OR author ILIKE $%[1]d)", containsPattern(f.Search))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM phrases`+where.String(), where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count phrases: %w", err)
	}

	query := `SELECT ` + phraseColumns + ` FROM phrases` + where.String() + ` ORDER BY created_at DESC, id`
	args := where.args
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", where.next(), where.next()+1)
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list phrases: %w", err)
	}
	defer rows.Close()

	phrases := make([]*entities.Phrase, 0)
	for rows.Next() {
		p, err := scanPhrase(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan phrase: %w", err)
		}
		phrases = append(phrases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list phrases: %w", err)
	}

	return phrases, total, nil
}

func (r *phraseRepository) Update(ctx context.Context, p *entities.Phrase) error {
	query := `
		UPDATE phrases
		SET phrase = $1, author = $2, tags = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6
	`
	res, err := r.db.ExecContext(ctx, query, p.Phrase, p.Author, pq.Array(tagsOrEmpty(p.Tags)), p.UpdatedAt, p.ID, p.UserID)
	if err != nil {
		return fmt.Errorf("failed to update phrase: %w", err)
	}
	return requireAffected(res, "update phrase")
}

func (r *phraseRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM phrases WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete phrase: %w", err)
	}
	return requireAffected(res, "delete phrase")
}

func (r *phraseRepository) DistinctAuthors(ctx context.Context, userID string) ([]string, error) {
	var where whereClause
	if userID != "" {
		where.add("user_id = $%[1]d", userID)
	}
	return r.queryStrings(ctx, `SELECT DISTINCT author FROM phrases`+where.String()+` ORDER BY author`, where.args...)
}

func (r *phraseRepository) DistinctTags(ctx context.Context, userID string) ([]string, error) {
	var where whereClause
	if userID != "" {
		where.add("user_id = $%[1]d", userID)
	}
	query := `SELECT DISTINCT tag FROM (SELECT unnest(tags) AS tag FROM phrases` + where.String() + `) t ORDER BY tag`
	all, err := r.queryStrings(ctx, query, where.args...)
	if err != nil {
		return nil, err
	}

	tags := make([]string, 0, len(all))
	for _, tag := range all {
		if strings.TrimSpace(tag) != "" {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

func (r *phraseRepository) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query phrases: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan phrases: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanPhrase(s rowScanner) (*entities.Phrase, error) {
	var p entities.Phrase
	if err := s.Scan(&p.ID, &p.Phrase, &p.Author, pq.Array(&p.Tags), &p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Tags = tagsOrEmpty(p.Tags)
	return &p, nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
