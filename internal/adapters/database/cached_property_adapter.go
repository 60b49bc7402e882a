package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/staybook/backend/internal/adapters/database/mappers"
	"github.com/staybook/backend/internal/adapters/database/records"
	"github.com/staybook/backend/internal/domain/entities"
	"github.com/staybook/backend/internal/domain/providers"
	"github.com/staybook/backend/internal/domain/repositories"
	"github.com/staybook/backend/internal/infrastructure/observability"
)

const propertyCacheNamespace = "property"

// CachedPropertyAdapter wraps a PropertyRepository with read-through caching of single properties
type CachedPropertyAdapter struct {
	adapter    repositories.PropertyRepository
	cache      providers.CacheProvider
	metrics    *observability.Metrics
	ttlSeconds int
}

// NewCachedPropertyAdapter creates a new cached property adapter. Properties never change
// after creation, so entries only expire by TTL.
func NewCachedPropertyAdapter(
	adapter repositories.PropertyRepository,
	cache providers.CacheProvider,
	metrics *observability.Metrics,
	ttlSeconds int,
) repositories.PropertyRepository {
	return &CachedPropertyAdapter{
		adapter:    adapter,
		cache:      cache,
		metrics:    metrics,
		ttlSeconds: ttlSeconds,
	}
}

func propertyCacheKey(id string) string {
	return fmt.Sprintf("%s:%s", propertyCacheNamespace, id)
}

// Create stores the property and primes the cache
func (a *CachedPropertyAdapter) Create(ctx context.Context, property *entities.Property) error {
	if err := a.adapter.Create(ctx, property); err != nil {
		return err
	}
	a.store(ctx, property)
	return nil
}

// GetByID retrieves a property, serving it from cache when possible
func (a *CachedPropertyAdapter) GetByID(ctx context.Context, id string) (*entities.Property, error) {
	logger := observability.LoggerFromContext(ctx)
	key := propertyCacheKey(id)

	cached, err := a.cache.Get(ctx, key)
	switch {
	case err == nil:
		var record records.PropertyRecord
		if err := json.Unmarshal(cached, &record); err == nil {
			if property, err := mappers.PropertyToDomain(&record); err == nil {
				observability.RecordCacheHit(ctx, a.metrics, propertyCacheNamespace)
				return property, nil
			}
		}
		logger.Warn().Str("key", key).Msg("discarding unreadable cached property")
	case !errors.Is(err, providers.ErrCacheMiss):
		logger.Warn().Err(err).Str("key", key).Msg("property cache lookup failed")
	}
	observability.RecordCacheMiss(ctx, a.metrics, propertyCacheNamespace)

	property, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.store(ctx, property)
	return property, nil
}

// List is not cached; pages change whenever a property is added
func (a *CachedPropertyAdapter) List(ctx context.Context, filter repositories.PropertyFilter) ([]*entities.Property, error) {
	return a.adapter.List(ctx, filter)
}

func (a *CachedPropertyAdapter) store(ctx context.Context, property *entities.Property) {
	data, err := json.Marshal(mappers.PropertyToPersistence(property))
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, propertyCacheKey(property.ID()), data, a.ttlSeconds); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("property_id", property.ID()).Msg("failed to cache property")
	}
}
