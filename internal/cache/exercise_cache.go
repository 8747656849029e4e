package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/mesocycles/internal/telemetry/tracing"
	"github.com/2beens/mesocycles/internal/training"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	megabyte                = 1024 * 1024
	defaultExerciseCacheTTL = time.Hour
)

type exercisesRepo interface {
	Get(ctx context.Context, id int) (*training.Exercise, error)
}

// ExerciseCache serves exercise lookups from an in-process cache,
// falling back to the repo on a miss.
type ExerciseCache struct {
	cache *freecache.Cache
	repo  exercisesRepo
	ttl   time.Duration
}

func NewExerciseCache(repo exercisesRepo, sizeMB int, ttl time.Duration) *ExerciseCache {
	if sizeMB <= 0 {
		sizeMB = 1
	}
	if ttl <= 0 {
		ttl = defaultExerciseCacheTTL
	}
	return &ExerciseCache{
		cache: freecache.NewCache(sizeMB * megabyte),
		repo:  repo,
		ttl:   ttl,
	}
}

func (c *ExerciseCache) Get(ctx context.Context, id int) (_ *training.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "cache.exercises.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("exercise.id", id))

	key := cacheKey(id)
	if exerciseBytes, getErr := c.cache.Get(key); getErr == nil {
		exercise := &training.Exercise{}
		unmarshalErr := json.Unmarshal(exerciseBytes, exercise)
		if unmarshalErr == nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return exercise, nil
		}
		log.Errorf("failed to unmarshal cached exercise %d: %s", id, unmarshalErr)
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	exercise, err := c.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	exerciseBytes, err := json.Marshal(exercise)
	if err != nil {
		log.Errorf("failed to marshal exercise %d for cache: %s", id, err)
		return exercise, nil
	}
	if err := c.cache.Set(key, exerciseBytes, int(c.ttl.Seconds())); err != nil {
		log.Errorf("failed to cache exercise %d: %s", id, err)
	}

	return exercise, nil
}

// Invalidate drops the cached exercise, e.g. after its weight increment changed.
func (c *ExerciseCache) Invalidate(id int) bool {
	return c.cache.Del(cacheKey(id))
}

func (c *ExerciseCache) HitCount() int64 {
	return c.cache.HitCount()
}

func (c *ExerciseCache) MissCount() int64 {
	return c.cache.MissCount()
}

func cacheKey(id int) []byte {
	return []byte(fmt.Sprintf("exercise::%d", id))
}
