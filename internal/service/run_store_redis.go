package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const runKeyPrefix = "timetable:run:"

type redisRunStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRunStore backs the run store with redis so workbook downloads can
// hit any instance behind a balancer.
func NewRedisRunStore(client *redis.Client, ttl time.Duration) RunStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &redisRunStore{client: client, ttl: ttl}
}

func (s *redisRunStore) Save(ctx context.Context, run TimetableRun) error {
	payload, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("encode run %s: %w", run.ID, err)
	}
	if err := s.client.Set(ctx, runKeyPrefix+run.ID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store run %s: %w", run.ID, err)
	}
	return nil
}

func (s *redisRunStore) Get(ctx context.Context, id string) (TimetableRun, bool, error) {
	payload, err := s.client.Get(ctx, runKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return TimetableRun{}, false, nil
	}
	if err != nil {
		return TimetableRun{}, false, fmt.Errorf("load run %s: %w", id, err)
	}
	var run TimetableRun
	if err := json.Unmarshal(payload, &run); err != nil {
		return TimetableRun{}, false, fmt.Errorf("decode run %s: %w", id, err)
	}
	return run, true, nil
}

func (s *redisRunStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, runKeyPrefix+id).Err()
}
