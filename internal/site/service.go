package site

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chukwumaoranu/portfolio-gw/internal/contact"
	"github.com/chukwumaoranu/portfolio-gw/internal/telemetry/tracing"
	"github.com/chukwumaoranu/portfolio-gw/internal/upstream"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

const defaultCacheExpireSeconds = 5 * 60

// Service is the visitor-facing read layer. Public portfolio content
// changes rarely, so upstream responses are cached as raw JSON and served
// from memory until they expire.
type Service struct {
	api           upstream.API
	contact       *contact.Service
	cache         *freecache.Cache
	expireSeconds int
}

func NewService(api upstream.API, contactService *contact.Service, cacheExpireSeconds int) *Service {
	megabyte := 1024 * 1024
	cacheSize := 10 * megabyte

	if cacheExpireSeconds <= 0 {
		cacheExpireSeconds = defaultCacheExpireSeconds
	}

	return &Service{
		api:           api,
		contact:       contactService,
		cache:         freecache.NewCache(cacheSize),
		expireSeconds: cacheExpireSeconds,
	}
}

func (s *Service) MainProfile(ctx context.Context) (json.RawMessage, error) {
	return s.cachedGet(ctx, "/api/profiles/public/main", "profile::main")
}

// Home assembles the landing page payload, the main profile plus the
// public project list, in one response so the page needs a single fetch.
func (s *Service) Home(ctx context.Context) (json.RawMessage, error) {
	profile, err := s.MainProfile(ctx)
	if err != nil {
		return nil, err
	}

	projects, err := s.Projects(ctx)
	if err != nil {
		return nil, err
	}

	home, err := json.Marshal(struct {
		Profile  json.RawMessage `json:"profile"`
		Projects json.RawMessage `json:"projects"`
	}{Profile: profile, Projects: projects})
	if err != nil {
		return nil, fmt.Errorf("marshal home payload: %w", err)
	}

	return home, nil
}

func (s *Service) Projects(ctx context.Context) (json.RawMessage, error) {
	return s.cachedGet(ctx, "/api/projects/public", "projects::all")
}

func (s *Service) ProjectBySlug(ctx context.Context, slug string) (json.RawMessage, error) {
	return s.cachedGet(
		ctx,
		fmt.Sprintf("/api/projects/slug/%s", slug),
		fmt.Sprintf("projects::%s", slug),
	)
}

func (s *Service) Technologies(ctx context.Context) (json.RawMessage, error) {
	return s.cachedGet(ctx, "/api/technologies/public", "technologies::all")
}

func (s *Service) SubmitContactMessage(ctx context.Context, message upstream.ContactMessage) error {
	return s.contact.Submit(ctx, message)
}

func (s *Service) cachedGet(ctx context.Context, path, cacheKey string) (content json.RawMessage, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "siteService.cachedGet")
	defer span.End()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, fmt.Sprintf("served: %s", path))
		}
	}()

	if cached, err := s.cache.Get([]byte(cacheKey)); err == nil {
		log.Tracef("site content [%s] served from cache", cacheKey)
		return cached, nil
	}

	content, err = s.api.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set([]byte(cacheKey), content, s.expireSeconds); err != nil {
		log.Errorf("failed to write site cache for [%s]: %s", cacheKey, err)
	}

	return content, nil
}
