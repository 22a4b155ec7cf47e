package technologies

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chukwumaoranu/portfolio-gw/internal/listcache"
	"github.com/chukwumaoranu/portfolio-gw/internal/upstream"
)

// Service mirrors the skills list kept upstream. Same optimistic cache
// discipline as the projects service: reads hit the cache once warm,
// mutations patch it from the upstream response.
type Service struct {
	api   upstream.API
	cache *listcache.List[upstream.Technology]
}

func NewService(api upstream.API) *Service {
	return &Service{
		api: api,
		cache: listcache.New(func(t upstream.Technology) int {
			return t.ID
		}),
	}
}

func (s *Service) All(ctx context.Context, forceRefresh bool) ([]upstream.Technology, error) {
	if s.cache.Len() == 0 || forceRefresh {
		if err := s.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	return s.cache.Items(), nil
}

func (s *Service) Refresh(ctx context.Context) error {
	data, err := s.api.Get(ctx, "/api/technologies")
	if err != nil {
		return err
	}

	var technologies []upstream.Technology
	if err := json.Unmarshal(data, &technologies); err != nil {
		return fmt.Errorf("unmarshal technologies: %w", err)
	}

	s.cache.Replace(technologies)
	return nil
}

func (s *Service) Create(ctx context.Context, technology upstream.Technology) (*upstream.Technology, error) {
	data, err := s.api.Post(ctx, "/api/technologies/create", technology)
	if err != nil {
		return nil, err
	}

	var created upstream.Technology
	if err := json.Unmarshal(data, &created); err != nil {
		return nil, fmt.Errorf("unmarshal created technology: %w", err)
	}

	s.cache.Prepend(created)
	return &created, nil
}

func (s *Service) Update(ctx context.Context, id int, technology upstream.Technology) (*upstream.Technology, error) {
	data, err := s.api.Put(ctx, fmt.Sprintf("/api/technologies/update/%d", id), technology)
	if err != nil {
		return nil, err
	}

	var updated upstream.Technology
	if err := json.Unmarshal(data, &updated); err != nil {
		return nil, fmt.Errorf("unmarshal updated technology: %w", err)
	}
	if updated.ID == 0 {
		updated.ID = id
	}

	s.cache.Update(updated)
	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if _, err := s.api.Delete(ctx, fmt.Sprintf("/api/technologies/delete/%d", id)); err != nil {
		return err
	}

	s.cache.Remove(id)
	return nil
}

// ByProject returns the technologies attached to one project. The result
// is not cached, the per-project view changes with project edits.
func (s *Service) ByProject(ctx context.Context, projectID int) ([]upstream.Technology, error) {
	data, err := s.api.Get(ctx, fmt.Sprintf("/api/technologies/project/%d", projectID))
	if err != nil {
		return nil, err
	}

	var technologies []upstream.Technology
	if err := json.Unmarshal(data, &technologies); err != nil {
		return nil, fmt.Errorf("unmarshal project technologies: %w", err)
	}

	return technologies, nil
}

func (s *Service) PublicList(ctx context.Context) ([]upstream.Technology, error) {
	data, err := s.api.Get(ctx, "/api/technologies/public")
	if err != nil {
		return nil, err
	}

	var technologies []upstream.Technology
	if err := json.Unmarshal(data, &technologies); err != nil {
		return nil, fmt.Errorf("unmarshal public technologies: %w", err)
	}

	return technologies, nil
}
