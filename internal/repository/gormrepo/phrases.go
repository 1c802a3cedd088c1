package gormrepo

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"focototal-be/internal/entities"
	"focototal-be/internal/repository"
)

type phraseRepository struct {
	db *gorm.DB
}

func (r *phraseRepository) Create(ctx context.Context, p *entities.Phrase) error {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create phrase: %w", err)
	}
	return nil
}

func (r *phraseRepository) FindByID(ctx context.Context, userID, id string) (*entities.Phrase, error) {
	var p entities.Phrase
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Take(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *phraseRepository) List(ctx context.Context, f repository.PhraseFilter) ([]*entities.Phrase, int, error) {
	q := r.db.WithContext(ctx).Model(&entities.Phrase{})
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Author != "" {
		q = q.Where(`LOWER(author) LIKE ? ESCAPE '\'`, likeContains(f.Author))
	}
	if f.Tag != "" {
		q = q.Where("EXISTS (SELECT 1 FROM json_each(phrases.tags) WHERE json_each.value = ?)", f.Tag)
	}
	if f.Search != "" {
		pattern := likeContains(f.Search)
		q = q.Where(`(LOWER(phrase) LIKE ? ESCAPE '\' OR LOWER(author) LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count phrases: %w", err)
	}

	q = q.Order("created_at DESC").Order("id")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	phrases := make([]*entities.Phrase, 0)
	if err := q.Find(&phrases).Error; err != nil {
		return nil, 0, fmt.Errorf("list phrases: %w", err)
	}
	return phrases, int(total), nil
}

func (r *phraseRepository) Update(ctx context.Context, p *entities.Phrase) error {
	res := r.db.WithContext(ctx).Model(&entities.Phrase{}).
		Where("id = ? AND user_id = ?", p.ID, p.UserID).
		Select("phrase", "author", "tags", "updated_at").
		Updates(p)
	return affected(res, "update phrase")
}

func (r *phraseRepository) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entities.Phrase{})
	return affected(res, "delete phrase")
}

func (r *phraseRepository) DistinctAuthors(ctx context.Context, userID string) ([]string, error) {
	q := r.db.WithContext(ctx).Model(&entities.Phrase{})
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	authors := make([]string, 0)
	if err := q.Distinct().Order("author").Pluck("author", &authors).Error; err != nil {
		return nil, fmt.Errorf("distinct authors: %w", err)
	}
	return authors, nil
}

func (r *phraseRepository) DistinctTags(ctx context.Context, userID string) ([]string, error) {
	q := r.db.WithContext(ctx).Model(&entities.Phrase{}).Select("tags")
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	var phrases []entities.Phrase
	if err := q.Find(&phrases).Error; err != nil {
		return nil, fmt.Errorf("distinct tags: %w", err)
	}

	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, p := range phrases {
		for _, tag := range p.Tags {
			if strings.TrimSpace(tag) == "" {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags, nil
}
