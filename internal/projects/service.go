package projects

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chukwumaoranu/portfolio-gw/internal/listcache"
	"github.com/chukwumaoranu/portfolio-gw/internal/upstream"
)

// Service keeps an optimistic in-memory copy of the admin project list.
// Reads are served from the cache once warm, and every mutation adjusts
// the cache immediately from the upstream response so the next read does
// not need a refetch.
type Service struct {
	api   upstream.API
	cache *listcache.List[upstream.Project]
}

func NewService(api upstream.API) *Service {
	return &Service{
		api: api,
		cache: listcache.New(func(p upstream.Project) int {
			return p.ID
		}),
	}
}

// All returns the cached list, refreshing it from upstream first if the
// cache is cold or a refresh is forced.
func (s *Service) All(ctx context.Context, forceRefresh bool) ([]upstream.Project, error) {
	if s.cache.Len() == 0 || forceRefresh {
		if err := s.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	return s.cache.Items(), nil
}

func (s *Service) Refresh(ctx context.Context) error {
	data, err := s.api.Get(ctx, "/api/projects")
	if err != nil {
		return err
	}

	var projects []upstream.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return fmt.Errorf("unmarshal projects: %w", err)
	}

	s.cache.Replace(projects)
	return nil
}

func (s *Service) Create(ctx context.Context, project upstream.Project) (*upstream.Project, error) {
	data, err := s.api.Post(ctx, "/api/projects/create", project)
	if err != nil {
		return nil, err
	}

	var created upstream.Project
	if err := json.Unmarshal(data, &created); err != nil {
		return nil, fmt.Errorf("unmarshal created project: %w", err)
	}

	s.cache.Prepend(created)
	return &created, nil
}

func (s *Service) Update(ctx context.Context, id int, project upstream.Project) (*upstream.Project, error) {
	data, err := s.api.Put(ctx, fmt.Sprintf("/api/projects/update/%d", id), project)
	if err != nil {
		return nil, err
	}

	var updated upstream.Project
	if err := json.Unmarshal(data, &updated); err != nil {
		return nil, fmt.Errorf("unmarshal updated project: %w", err)
	}
	if updated.ID == 0 {
		updated.ID = id
	}

	s.cache.Update(updated)
	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if _, err := s.api.Delete(ctx, fmt.Sprintf("/api/projects/delete/%d", id)); err != nil {
		return err
	}

	s.cache.Remove(id)
	return nil
}

// Stats returns the dashboard aggregates as-is, the gateway has no reason
// to reshape them.
func (s *Service) Stats(ctx context.Context) (json.RawMessage, error) {
	return s.api.Get(ctx, "/api/projects/stats")
}

// PublicList fetches the visitor-facing project list. It bypasses the
// admin cache, the public site layer has its own.
func (s *Service) PublicList(ctx context.Context) ([]upstream.Project, error) {
	data, err := s.api.Get(ctx, "/api/projects/public")
	if err != nil {
		return nil, err
	}

	var projects []upstream.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("unmarshal public projects: %w", err)
	}

	return projects, nil
}

func (s *Service) PublicBySlug(ctx context.Context, slug string) (*upstream.Project, error) {
	data, err := s.api.Get(ctx, fmt.Sprintf("/api/projects/slug/%s", slug))
	if err != nil {
		return nil, err
	}

	var project upstream.Project
	if err := json.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("unmarshal project %q: %w", slug, err)
	}

	return &project, nil
}
