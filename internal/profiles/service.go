package profiles

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chukwumaoranu/portfolio-gw/internal/listcache"
	"github.com/chukwumaoranu/portfolio-gw/internal/upstream"
)

// Service manages the owner profile records. A portfolio realistically
// has one main profile, but the upstream keeps a list, so the cache
// discipline matches the other entity services.
type Service struct {
	api   upstream.API
	cache *listcache.List[upstream.Profile]
}

func NewService(api upstream.API) *Service {
	return &Service{
		api: api,
		cache: listcache.New(func(p upstream.Profile) int {
			return p.ID
		}),
	}
}

func (s *Service) All(ctx context.Context, forceRefresh bool) ([]upstream.Profile, error) {
	if s.cache.Len() == 0 || forceRefresh {
		if err := s.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	return s.cache.Items(), nil
}

func (s *Service) Refresh(ctx context.Context) error {
	data, err := s.api.Get(ctx, "/api/profiles")
	if err != nil {
		return err
	}

	var profiles []upstream.Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return fmt.Errorf("unmarshal profiles: %w", err)
	}

	s.cache.Replace(profiles)
	return nil
}

func (s *Service) Create(ctx context.Context, profile upstream.Profile) (*upstream.Profile, error) {
	data, err := s.api.Post(ctx, "/api/profiles/create", profile)
	if err != nil {
		return nil, err
	}

	var created upstream.Profile
	if err := json.Unmarshal(data, &created); err != nil {
		return nil, fmt.Errorf("unmarshal created profile: %w", err)
	}

	s.cache.Prepend(created)
	return &created, nil
}

func (s *Service) Update(ctx context.Context, id int, profile upstream.Profile) (*upstream.Profile, error) {
	data, err := s.api.Put(ctx, fmt.Sprintf("/api/profiles/update/%d", id), profile)
	if err != nil {
		return nil, err
	}

	var updated upstream.Profile
	if err := json.Unmarshal(data, &updated); err != nil {
		return nil, fmt.Errorf("unmarshal updated profile: %w", err)
	}
	if updated.ID == 0 {
		updated.ID = id
	}

	s.cache.Update(updated)
	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if _, err := s.api.Delete(ctx, fmt.Sprintf("/api/profiles/%d", id)); err != nil {
		return err
	}

	s.cache.Remove(id)
	return nil
}

func (s *Service) Stats(ctx context.Context) (json.RawMessage, error) {
	return s.api.Get(ctx, "/api/profiles/stats")
}

// PublicMain fetches the visitor-facing main profile.
func (s *Service) PublicMain(ctx context.Context) (*upstream.Profile, error) {
	data, err := s.api.Get(ctx, "/api/profiles/public/main")
	if err != nil {
		return nil, err
	}

	var profile upstream.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("unmarshal main profile: %w", err)
	}

	return &profile, nil
}
