package contact

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chukwumaoranu/portfolio-gw/internal/instrumentation"
	"github.com/chukwumaoranu/portfolio-gw/internal/listcache"
	"github.com/chukwumaoranu/portfolio-gw/internal/upstream"

	log "github.com/sirupsen/logrus"
)

// ErrValidation carries the per-field messages of a rejected submission.
type ErrValidation struct {
	FieldErrors map[string]string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("contact message invalid, %d field(s) rejected", len(e.FieldErrors))
}

// Service handles visitor messages: validated public submissions in,
// admin inbox listing and cleanup out.
type Service struct {
	api   upstream.API
	instr *instrumentation.Instrumentation
	cache *listcache.List[upstream.ContactMessage]
}

func NewService(api upstream.API, instr *instrumentation.Instrumentation) *Service {
	return &Service{
		api:   api,
		instr: instr,
		cache: listcache.New(func(m upstream.ContactMessage) int {
			return m.ID
		}),
	}
}

// Submit validates the message and forwards it upstream. A message
// failing validation is rejected before any upstream call is made.
func (s *Service) Submit(ctx context.Context, message upstream.ContactMessage) error {
	if fieldErrors := Validate(message); len(fieldErrors) > 0 {
		return &ErrValidation{FieldErrors: fieldErrors}
	}

	if _, err := s.api.Post(ctx, "/api/contact/add", message); err != nil {
		return err
	}

	s.instr.CounterContactMessages.Inc()
	log.Tracef("new contact message from [%s], subject: %s", message.Email, message.Subject)

	return nil
}

func (s *Service) All(ctx context.Context, forceRefresh bool) ([]upstream.ContactMessage, error) {
	if s.cache.Len() == 0 || forceRefresh {
		if err := s.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	return s.cache.Items(), nil
}

func (s *Service) Refresh(ctx context.Context) error {
	data, err := s.api.Get(ctx, "/api/contact")
	if err != nil {
		return err
	}

	var messages []upstream.ContactMessage
	if err := json.Unmarshal(data, &messages); err != nil {
		return fmt.Errorf("unmarshal contact messages: %w", err)
	}

	s.cache.Replace(messages)
	return nil
}

func (s *Service) Get(ctx context.Context, id int) (*upstream.ContactMessage, error) {
	data, err := s.api.Get(ctx, fmt.Sprintf("/api/contact/%d", id))
	if err != nil {
		return nil, err
	}

	var message upstream.ContactMessage
	if err := json.Unmarshal(data, &message); err != nil {
		return nil, fmt.Errorf("unmarshal contact message: %w", err)
	}

	return &message, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if _, err := s.api.Delete(ctx, fmt.Sprintf("/api/contact/delete/%d", id)); err != nil {
		return err
	}

	s.cache.Remove(id)
	return nil
}

func (s *Service) Stats(ctx context.Context) (json.RawMessage, error) {
	return s.api.Get(ctx, "/api/contact/stats/overview")
}
