package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tixmarket/internal/shared/apperr"
	"tixmarket/internal/shared/constants"
	"tixmarket/pkg/cache"
	"tixmarket/pkg/logger"
)

// ScenarioCatalog reads scenario presets from *.json files in a directory.
type ScenarioCatalog struct {
	dir   string
	cache cache.Service
}

func NewScenarioCatalog(dir string) *ScenarioCatalog {
	return &ScenarioCatalog{dir: dir}
}

// SetCacheService caches the scenario list in Redis. A nil service disables caching.
func (c *ScenarioCatalog) SetCacheService(cacheService cache.Service) {
	c.cache = cacheService
}

// List returns every readable scenario ordered by file name. A missing
// directory yields an empty list. Unreadable files are skipped.
func (c *ScenarioCatalog) List(ctx context.Context) ([]Scenario, error) {
	if c.cache == nil {
		return c.read()
	}
	var scenarios []Scenario
	err := c.cache.GetOrSet(ctx, constants.ScenarioListKey, constants.TTL_SCENARIO_LIST, func() (interface{}, error) {
		return c.read()
	}, &scenarios)
	if err != nil {
		return nil, err
	}
	if scenarios == nil {
		scenarios = []Scenario{}
	}
	return scenarios, nil
}

// Refresh drops the cached scenario list.
func (c *ScenarioCatalog) Refresh(ctx context.Context) error {
	if c.cache == nil {
		return nil
	}
	return c.cache.Delete(ctx, constants.ScenarioListKey)
}

// Find returns the scenario with the given name.
func (c *ScenarioCatalog) Find(ctx context.Context, name string) (*Scenario, error) {
	scenarios, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range scenarios {
		if scenarios[i].Name == name && len(scenarios[i].Config) > 0 && string(scenarios[i].Config) != "null" {
			return &scenarios[i], nil
		}
	}
	return nil, apperr.NotFound("scenario")
}

func (c *ScenarioCatalog) read() ([]Scenario, error) {
	entries, err := os.ReadDir(c.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []Scenario{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read scenarios directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	scenarios := make([]Scenario, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(c.dir, name))
		if err != nil {
			logger.GetDefault().WithError(err).Warn("Skipping unreadable scenario", "file", name)
			continue
		}
		var s Scenario
		if err := json.Unmarshal(data, &s); err != nil {
			logger.GetDefault().WithError(err).Warn("Skipping malformed scenario", "file", name)
			continue
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}
