package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"focototal-be/internal/apperror"
	"focototal-be/internal/cache"
	"focototal-be/internal/entities"
	"focototal-be/internal/logging"
	"focototal-be/internal/models"
	"focototal-be/internal/repository"
)

const filtersTTL = 5 * time.Minute

type PhraseService interface {
	Create(ctx context.Context, userID string, req *models.CreatePhraseRequest) (*entities.Phrase, error)
	List(ctx context.Context, caller Caller, q *models.ListPhrasesQuery) (*models.PhraseListResponse, error)
	Get(ctx context.Context, userID, id string) (*entities.Phrase, error)
	Update(ctx context.Context, userID, id string, req *models.UpdatePhraseRequest) (*entities.Phrase, error)
	Delete(ctx context.Context, userID, id string) error
	Authors(ctx context.Context, caller Caller, userID string) ([]string, error)
	Tags(ctx context.Context, caller Caller, userID string) ([]string, error)
}

type phraseService struct {
	phrases repository.PhraseRepository
	cache   cache.Cache
	logger  logging.Logger
	now     clock
}

// NewPhraseService caches the author and tag lookups when cacheClient is
// non-nil and works uncached otherwise.
func NewPhraseService(phrases repository.PhraseRepository, cacheClient cache.Cache, logger logging.Logger) PhraseService {
	return &phraseService{phrases: phrases, cache: cacheClient, logger: logger, now: utcNow}
}

func (s *phraseService) Create(ctx context.Context, userID string, req *models.CreatePhraseRequest) (*entities.Phrase, error) {
	now := s.now()
	p := &entities.Phrase{
		ID:        uuid.NewString(),
		Phrase:    req.Phrase,
		Author:    req.Author,
		Tags:      req.Tags,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if err := s.phrases.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create phrase: %w", err)
	}
	s.invalidate(ctx, userID)
	return p, nil
}

// List defaults to the caller's own phrases. Only admins may list another
// user's phrases, or everyone's by leaving userId empty.
func (s *phraseService) List(ctx context.Context, caller Caller, q *models.ListPhrasesQuery) (*models.PhraseListResponse, error) {
	owner, err := scope(caller, q.UserID)
	if err != nil {
		return nil, err
	}

	paging := q.Paging()
	phrases, total, err := s.phrases.List(ctx, repository.PhraseFilter{
		UserID: owner,
		Author: q.Author,
		Tag:    q.Tag,
		Search: q.Search,
		Limit:  paging.PageSize(),
		Offset: paging.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list phrases: %w", err)
	}
	if phrases == nil {
		phrases = []*entities.Phrase{}
	}

	return &models.PhraseListResponse{
		Phrases:    phrases,
		Pagination: models.NewPagination(paging.PageNumber(), paging.PageSize(), total),
	}, nil
}

func (s *phraseService) Get(ctx context.Context, userID, id string) (*entities.Phrase, error) {
	p, err := s.phrases.FindByID(ctx, userID, id)
	if err != nil {
		return nil, phraseErr(err)
	}
	return p, nil
}

func (s *phraseService) Update(ctx context.Context, userID, id string, req *models.UpdatePhraseRequest) (*entities.Phrase, error) {
	p, err := s.phrases.FindByID(ctx, userID, id)
	if err != nil {
		return nil, phraseErr(err)
	}

	if req.Phrase != nil {
		p.Phrase = *req.Phrase
	}
	if req.Author != nil {
		p.Author = *req.Author
	}
	if req.Tags != nil {
		p.Tags = req.Tags
	}
	p.UpdatedAt = s.now()

	if err := s.phrases.Update(ctx, p); err != nil {
		return nil, phraseErr(err)
	}
	s.invalidate(ctx, userID)
	return p, nil
}

func (s *phraseService) Delete(ctx context.Context, userID, id string) error {
	if err := s.phrases.Delete(ctx, userID, id); err != nil {
		return phraseErr(err)
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *phraseService) Authors(ctx context.Context, caller Caller, userID string) ([]string, error) {
	owner, err := scope(caller, userID)
	if err != nil {
		return nil, err
	}
	return s.cached(ctx, filterKey("authors", owner), func() ([]string, error) {
		return s.phrases.DistinctAuthors(ctx, owner)
	})
}

func (s *phraseService) Tags(ctx context.Context, caller Caller, userID string) ([]string, error) {
	owner, err := scope(caller, userID)
	if err != nil {
		return nil, err
	}
	return s.cached(ctx, filterKey("tags", owner), func() ([]string, error) {
		return s.phrases.DistinctTags(ctx, owner)
	})
}

// cached serves key from Redis when possible. Cache errors only cost a
// database round trip.
func (s *phraseService) cached(ctx context.Context, key string, load func() ([]string, error)) ([]string, error) {
	if s.cache != nil {
		var values []string
		err := s.cache.GetJSON(ctx, key, &values)
		if err == nil {
			return values, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn(ctx, "phrase filter cache read failed", "key", key, "error", err)
		}
	}

	values, err := load()
	if err != nil {
		return nil, fmt.Errorf("failed to load phrase filters: %w", err)
	}
	if values == nil {
		values = []string{}
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, values, filtersTTL); err != nil {
			s.logger.Warn(ctx, "phrase filter cache write failed", "key", key, "error", err)
		}
	}
	return values, nil
}

// invalidate drops the owner's cached filters and the all-users ones.
func (s *phraseService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	keys := []string{
		filterKey("authors", userID), filterKey("tags", userID),
		filterKey("authors", ""), filterKey("tags", ""),
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn(ctx, "phrase filter cache invalidation failed", "error", err)
	}
}

func filterKey(kind, owner string) string {
	if owner == "" {
		owner = "all"
	}
	return fmt.Sprintf("phrases:filters:%s:%s", kind, owner)
}

// scope resolves which owner a phrase query targets.
func scope(caller Caller, requested string) (string, error) {
	switch {
	case requested == "" && caller.IsAdmin():
		return "", nil
	case requested == "" || requested == caller.UserID:
		return caller.UserID, nil
	case caller.IsAdmin():
		return requested, nil
	default:
		return "", apperror.ErrForbidden
	}
}

func phraseErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.ErrPhraseNotFound
	}
	return fmt.Errorf("phrase: %w", err)
}
