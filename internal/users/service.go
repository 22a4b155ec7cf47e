package users

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chukwumaoranu/portfolio-gw/internal/listcache"
	"github.com/chukwumaoranu/portfolio-gw/internal/upstream"
)

// Service manages admin accounts. Accounts are created through the
// register flow, so this only lists and deletes.
type Service struct {
	api   upstream.API
	cache *listcache.List[upstream.User]
}

func NewService(api upstream.API) *Service {
	return &Service{
		api: api,
		cache: listcache.New(func(u upstream.User) int {
			return u.ID
		}),
	}
}

func (s *Service) All(ctx context.Context, forceRefresh bool) ([]upstream.User, error) {
	if s.cache.Len() == 0 || forceRefresh {
		if err := s.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	return s.cache.Items(), nil
}

func (s *Service) Refresh(ctx context.Context) error {
	data, err := s.api.Get(ctx, "/api/users")
	if err != nil {
		return err
	}

	var users []upstream.User
	if err := json.Unmarshal(data, &users); err != nil {
		return fmt.Errorf("unmarshal users: %w", err)
	}

	s.cache.Replace(users)
	return nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if _, err := s.api.Delete(ctx, fmt.Sprintf("/api/users/users/%d", id)); err != nil {
		return err
	}

	s.cache.Remove(id)
	return nil
}
