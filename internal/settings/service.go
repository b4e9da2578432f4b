package settings

import (
	"context"
	"fmt"
	"strings"

	"tixmarket/pkg/logger"
	"tixmarket/pkg/metrics"
)

type Service interface {
	// Current reads the active document from the store on every call.
	Current(ctx context.Context) (Config, error)
	// Replace applies a raw replacement document and persists it.
	Replace(ctx context.Context, patch []byte) (Config, error)

	ListScenarios(ctx context.Context) ([]Scenario, error)
	LoadScenario(ctx context.Context, name string) (Config, error)

	SetMetrics(m *metrics.Registry)
}

type service struct {
	store     Store
	scenarios *ScenarioCatalog
	log       *logger.Logger
	metrics   *metrics.Registry
}

func NewService(store Store, scenarios *ScenarioCatalog) Service {
	return &service{
		store:     store,
		scenarios: scenarios,
		log:       logger.GetDefault(),
	}
}

func (s *service) SetMetrics(m *metrics.Registry) {
	s.metrics = m
}

func (s *service) Current(ctx context.Context) (Config, error) {
	cfg, err := s.store.Load(ctx)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func (s *service) Replace(ctx context.Context, patch []byte) (Config, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return Config{}, err
	}
	next, err := Replace(current, patch)
	if err != nil {
		return Config{}, err
	}
	if err := s.save(ctx, next, "api"); err != nil {
		return Config{}, err
	}
	return next, nil
}

func (s *service) ListScenarios(ctx context.Context) ([]Scenario, error) {
	return s.scenarios.List(ctx)
}

func (s *service) LoadScenario(ctx context.Context, name string) (Config, error) {
	scenario, err := s.scenarios.Find(ctx, name)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Decode(scenario.Config)
	if err != nil {
		return Config{}, err
	}
	if err := s.save(ctx, cfg, "scenario:"+name); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (s *service) save(ctx context.Context, cfg Config, source string) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	if err := s.store.Save(ctx, cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	s.log.LogConfigUpdated(ctx, source)
	kind, _, _ := strings.Cut(source, ":")
	s.metrics.RecordConfigUpdate(kind)
	return nil
}
