package redis

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/application/query"
	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
)

// GuardedCache 给详情缓存加熔断
// Redis连续失败后在OpenTimeout内不再访问Redis:
//   - Get直接当作未命中(不报错,避免每个请求都打告警日志)
//   - Set/Delete/DeleteAll返回circuitbreaker.ErrOpen,由调用方记日志
type GuardedCache struct {
	next    query.DetailCache
	breaker *circuitbreaker.Breaker
}

var _ query.DetailCache = (*GuardedCache)(nil)

// NewGuardedCache 用熔断器包装缓存
func NewGuardedCache(next query.DetailCache, settings circuitbreaker.Settings) *GuardedCache {
	if settings.Name == "" {
		settings.Name = "book_detail_cache"
	}
	// 请求被取消不算Redis故障
	settings.IsFailure = func(err error) bool {
		return err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	if settings.OnStateChange == nil {
		settings.OnStateChange = func(name string, from, to circuitbreaker.State) {
			zap.L().Warn("缓存熔断状态变化",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		}
	}
	return &GuardedCache{next: next, breaker: circuitbreaker.New(settings)}
}

// State 熔断器当前状态
func (c *GuardedCache) State() circuitbreaker.State {
	return c.breaker.State()
}

func (c *GuardedCache) Get(ctx context.Context, id uint) (*query.BookDTO, bool, error) {
	var (
		dto *query.BookDTO
		hit bool
	)
	err := c.breaker.Execute(func() error {
		var err error
		dto, hit, err = c.next.Get(ctx, id)
		return err
	})
	if errors.Is(err, circuitbreaker.ErrOpen) {
		return nil, false, nil
	}
	return dto, hit, err
}

func (c *GuardedCache) Set(ctx context.Context, dto *query.BookDTO) error {
	return c.breaker.Execute(func() error {
		return c.next.Set(ctx, dto)
	})
}

func (c *GuardedCache) Delete(ctx context.Context, id uint) error {
	return c.breaker.Execute(func() error {
		return c.next.Delete(ctx, id)
	})
}

func (c *GuardedCache) DeleteAll(ctx context.Context) error {
	return c.breaker.Execute(func() error {
		return c.next.DeleteAll(ctx)
	})
}
