package services

import (
	"context"
	"time"

	"github.com/alnoor/community-platform/pkg/pg"
	"github.com/alnoor/community-platform/pkg/redis"
)

// HealthService reports readiness of the backing stores.
type HealthService struct {
	db    *pg.DB
	cache redis.RedisAdapter
}

func NewHealthService(db *pg.DB, cache redis.RedisAdapter) *HealthService {
	return &HealthService{db: db, cache: cache}
}

func (s *HealthService) Get() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if s.db != nil {
		sqlDB, err := s.db.Read(ctx).DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return err
		}
	}

	if s.cache != nil {
		if err := s.cache.Client().Ping(ctx).Err(); err != nil {
			return err
		}
	}
	return nil
}
