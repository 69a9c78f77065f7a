package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/projects-miniapp/internal/logging"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/domain"
)

// Store is the persistence the service needs.
type Store interface {
	ListPage(ctx context.Context, page, limit int, sort string) ([]domain.Project, error)
	Get(ctx context.Context, id int64) (*domain.Project, error)
	Create(ctx context.Context, p domain.Project) (*domain.Project, error)
	Update(ctx context.Context, p domain.Project) (*domain.Project, error)
	Count(ctx context.Context) (int, error)
}

// PageCache caches list pages.
type PageCache interface {
	Get(ctx context.Context, sort string, page, limit int) ([]domain.Project, bool, error)
	Set(ctx context.Context, sort string, page, limit int, projects []domain.Project) error
	Invalidate(ctx context.Context) (int, error)
}

// ProjectService handles project-related business logic
type ProjectService struct {
	store Store
	cache PageCache
	log   *logging.Logger
}

// NewProjectService creates a new project service. cache may be nil.
func NewProjectService(store Store, cache PageCache, log *logging.Logger) *ProjectService {
	if log == nil {
		log = logging.Nop()
	}
	return &ProjectService{
		store: store,
		cache: cache,
		log:   log.Named("projects"),
	}
}

// ListPage returns one page, served from the cache when possible. Cache
// failures are logged and fall through to the store.
func (s *ProjectService) ListPage(ctx context.Context, page, limit int, sort string) ([]domain.Project, error) {
	if page < 1 {
		return nil, domain.ErrInvalidPage
	}
	log := s.log.For(ctx)

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, sort, page, limit)
		if err != nil {
			log.Warn("list_projects", "page cache read failed", zap.Error(err))
		} else if ok {
			log.Debug("list_projects", "cache hit", zap.Int("page", page))
			return cached, nil
		}
	}

	items, err := s.store.ListPage(ctx, page, limit, sort)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, sort, page, limit, items); err != nil {
			log.Warn("list_projects", "page cache write failed", zap.Error(err))
		}
	}
	return items, nil
}

// Count returns the total number of projects. It is not cached.
func (s *ProjectService) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// Get returns a single project.
func (s *ProjectService) Get(ctx context.Context, id int64) (*domain.Project, error) {
	return s.store.Get(ctx, id)
}

// Create stores a new project.
func (s *ProjectService) Create(ctx context.Context, p domain.Project) (*domain.Project, error) {
	out, err := s.store.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, "create_project")
	s.log.For(ctx).Info("create_project", "project created", zap.Int64("project_id", out.ID))
	return out, nil
}

// Update replaces the stored project with p. Field rules are enforced by the client form only.
func (s *ProjectService) Update(ctx context.Context, p domain.Project) (*domain.Project, error) {
	out, err := s.store.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, "update_project")
	s.log.For(ctx).Info("update_project", "project updated", zap.Int64("project_id", out.ID))
	return out, nil
}

// InvalidateCache drops every cached page.
func (s *ProjectService) InvalidateCache(ctx context.Context) (int, error) {
	if s.cache == nil {
		return 0, nil
	}
	return s.cache.Invalidate(ctx)
}

func (s *ProjectService) invalidate(ctx context.Context, op string) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Invalidate(ctx); err != nil {
		s.log.For(ctx).Warn(op, "page cache invalidation failed", zap.Error(err))
	}
}
