package main

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/application/event"
	"github.com/xiebiao/bookcatalog/internal/application/query"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/messaging"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
	"github.com/xiebiao/bookcatalog/pkg/mq"
)

// provideDB 创建数据库连接并返回关闭函数
func provideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := mysql.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

// provideDetailCache 按配置选择Redis详情缓存或空缓存
// 缓存关闭时不连接Redis;开启时外面包一层熔断
func provideDetailCache(ctx context.Context, cfg *config.Config) (query.DetailCache, func(), error) {
	if !cfg.Cache.Enabled {
		zap.L().Info("图书详情缓存未开启")
		return query.NoopCache{}, func() {}, nil
	}

	client, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			zap.L().Warn("关闭Redis连接失败", zap.Error(err))
		}
	}
	cache := redis.NewGuardedCache(
		redis.NewBookDetailCache(client, cfg.Cache.DetailTTL),
		circuitbreaker.Settings{
			Name:             "book_detail_cache",
			FailureThreshold: cfg.Cache.BreakerThreshold,
			OpenTimeout:      cfg.Cache.BreakerTimeout,
		},
	)
	return cache, cleanup, nil
}

// provideEventPublisher 按配置选择RabbitMQ事件发布或空实现
func provideEventPublisher(cfg *config.Config) (event.Publisher, func(), error) {
	if !cfg.Events.Enabled {
		return event.NoopPublisher{}, func() {}, nil
	}

	pub, err := mq.NewPublisher(cfg.Events.URL, cfg.Events.Exchange)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := pub.Close(); err != nil {
			zap.L().Warn("关闭RabbitMQ连接失败", zap.Error(err))
		}
	}
	return messaging.NewEventPublisher(pub), cleanup, nil
}
