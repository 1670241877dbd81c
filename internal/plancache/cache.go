package plancache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fortranov/sportproject/internal/telemetry/metrics"
	"github.com/fortranov/sportproject/internal/telemetry/tracing"
	"github.com/fortranov/sportproject/internal/training"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"
)

const keyPrefix = "planview::plan::"

// Cache is a read-through plan cache keyed by UIN. Create and delete go
// straight to the backend and invalidate the key afterwards.
// Concurrent reads of the same uncached UIN share one backend call.
type Cache struct {
	backend        PlanBackend
	store          Store
	ttl            time.Duration
	metricsManager *metrics.Manager

	group singleflight.Group

	// mu guards the load bookkeeping below and is held across the final
	// store write of a load, so an invalidation cannot land between the
	// staleness check and the write. Entries exist only while a load of
	// that UIN is in flight.
	mu          sync.Mutex
	loading     map[string]int
	generations map[string]uint64
}

func New(backend PlanBackend, store Store, ttl time.Duration, metricsManager *metrics.Manager) *Cache {
	if store == nil {
		store = NoopStore{}
	}
	return &Cache{
		backend:        backend,
		store:          store,
		ttl:            ttl,
		metricsManager: metricsManager,
		loading:        make(map[string]int),
		generations:    make(map[string]uint64),
	}
}

func Key(uin string) string {
	return keyPrefix + uin
}

func (c *Cache) GetPlan(ctx context.Context, uin string) (plan *training.TrainingPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "planCache.getPlan")
	span.SetAttributes(attribute.String("uin", uin))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	key := Key(uin)
	if cached, err := c.store.Get(ctx, key); err == nil {
		plan = &training.TrainingPlan{}
		if err := json.Unmarshal(cached, plan); err == nil {
			log.Tracef("plan cache: hit for %s", uin)
			span.SetAttributes(attribute.Bool("cache.hit", true))
			c.countHit()
			return plan, nil
		} else {
			log.WithField("uin", uin).Errorf("plan cache: unmarshal cached plan: %s", err)
		}
	} else if !errors.Is(err, ErrCacheMiss) {
		log.Warnf("plan cache: store get %s: %s", uin, err)
	}

	span.SetAttributes(attribute.Bool("cache.hit", false))
	c.countMiss()

	// a caller giving up must not fail the others waiting on the same flight
	flightCtx := context.WithoutCancel(ctx)
	v, err, shared := c.group.Do(key, func() (any, error) {
		return c.load(flightCtx, uin)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.Tracef("plan cache: shared backend call for %s", uin)
	}

	return v.(*training.TrainingPlan), nil
}

func (c *Cache) load(ctx context.Context, uin string) (*training.TrainingPlan, error) {
	generation := c.beginLoad(uin)

	plan, err := c.backend.GetPlan(ctx, uin)
	if err != nil {
		c.endLoad(uin)
		return nil, err
	}

	encoded, err := json.Marshal(plan)
	if err != nil {
		c.endLoad(uin)
		return nil, fmt.Errorf("marshal plan %s: %w", uin, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.endLoadLocked(uin)

	if generation != c.generations[uin] {
		log.Debugf("plan cache: %s invalidated during load, not caching", uin)
		return plan, nil
	}
	if err := c.store.Set(ctx, Key(uin), encoded, c.ttl); err != nil {
		log.WithField("uin", uin).Errorf("plan cache: store set: %s", err)
	}

	return plan, nil
}

func (c *Cache) beginLoad(uin string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading[uin]++
	return c.generations[uin]
}

func (c *Cache) endLoad(uin string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endLoadLocked(uin)
}

func (c *Cache) endLoadLocked(uin string) {
	c.loading[uin]--
	if c.loading[uin] <= 0 {
		delete(c.loading, uin)
		delete(c.generations, uin)
	}
}

func (c *Cache) CreatePlan(ctx context.Context, req training.CreatePlanRequest) (*training.TrainingPlan, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "planCache.createPlan")
	defer span.End()

	plan, err := c.backend.CreatePlan(ctx, req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	c.Invalidate(ctx, req.UIN)
	return plan, nil
}

func (c *Cache) DeletePlan(ctx context.Context, uin string) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "planCache.deletePlan")
	defer span.End()

	err := c.backend.DeletePlan(ctx, uin)
	// a missing plan upstream must not stay cached either
	if err == nil || errors.Is(err, training.ErrNotFound) {
		c.Invalidate(ctx, uin)
	}
	if err != nil {
		span.RecordError(err)
	}
	return err
}

// Invalidate drops the cached plan of uin. It waits for a load of uin that
// is writing its result, and marks loads still in flight as stale.
func (c *Cache) Invalidate(ctx context.Context, uin string) {
	c.mu.Lock()
	if c.loading[uin] > 0 {
		c.generations[uin]++
	}
	c.mu.Unlock()

	c.group.Forget(Key(uin))
	if err := c.store.Delete(ctx, Key(uin)); err != nil {
		log.WithField("uin", uin).Errorf("plan cache: invalidate: %s", err)
	}
	if c.metricsManager != nil {
		c.metricsManager.CounterPlanCacheInvalidate.Inc()
	}
	log.Debugf("plan cache: invalidated %s", uin)
}

func (c *Cache) countHit() {
	if c.metricsManager != nil {
		c.metricsManager.CounterPlanCacheHits.Inc()
	}
}

func (c *Cache) countMiss() {
	if c.metricsManager != nil {
		c.metricsManager.CounterPlanCacheMisses.Inc()
	}
}
