package book

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/application/event"
	"github.com/xiebiao/bookcatalog/internal/application/query"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// ManageBookUseCase 图书写操作用例
// 设计说明:
// 1. 业务规则(校验、引用检查、事务)全部在领域服务里
// 2. 应用层负责横切关注点:链路追踪、指标、日志、详情缓存失效
// 3. 缓存失效和事件发布放在事务提交之后,失败只记日志,不影响写操作结果
type ManageBookUseCase struct {
	service book.Service
	cache   query.DetailCache
	events  event.Publisher
}

// NewManageBookUseCase 创建图书写操作用例
func NewManageBookUseCase(service book.Service, cache query.DetailCache, events event.Publisher) *ManageBookUseCase {
	return &ManageBookUseCase{service: service, cache: cache, events: events}
}

// Create 创建图书,返回新图书ID
func (uc *ManageBookUseCase) Create(ctx context.Context, cmd book.CreateCommand) (id uint, err error) {
	ctx, span := tracing.StartSpan(ctx, "book.CreateBook",
		attribute.Int("book.author_id", int(cmd.AuthorID)),
		attribute.Int("book.genre_count", len(cmd.GenreIDs)),
	)
	start := time.Now()
	defer func() {
		metrics.ObserveCommand("create_book", start, true, err)
		tracing.End(span, err)
	}()

	id, err = uc.service.CreateBook(ctx, cmd)
	if err != nil {
		return 0, err
	}

	event.Emit(ctx, uc.events, event.BookCreated, id)
	zap.L().Info("图书已创建",
		zap.Uint("book_id", id),
		zap.String("title", cmd.Title),
		zap.String("trace_id", tracing.ExtractTraceID(ctx)),
	)
	return id, nil
}

// Update 更新图书并替换类型集合,图书不存在返回false
func (uc *ManageBookUseCase) Update(ctx context.Context, cmd book.UpdateCommand) (found bool, err error) {
	ctx, span := tracing.StartSpan(ctx, "book.UpdateBook", attribute.Int("book.id", int(cmd.ID)))
	start := time.Now()
	defer func() {
		metrics.ObserveCommand("update_book", start, found, err)
		tracing.End(span, err)
	}()

	found, err = uc.service.UpdateBook(ctx, cmd)
	if err != nil || !found {
		return found, err
	}

	uc.evict(ctx, cmd.ID)
	event.Emit(ctx, uc.events, event.BookUpdated, cmd.ID)
	zap.L().Info("图书已更新", zap.Uint("book_id", cmd.ID))
	return true, nil
}

// Delete 删除图书,不存在返回false
func (uc *ManageBookUseCase) Delete(ctx context.Context, id uint) (found bool, err error) {
	ctx, span := tracing.StartSpan(ctx, "book.DeleteBook", attribute.Int("book.id", int(id)))
	start := time.Now()
	defer func() {
		metrics.ObserveCommand("delete_book", start, found, err)
		tracing.End(span, err)
	}()

	found, err = uc.service.DeleteBook(ctx, id)
	if err != nil || !found {
		return found, err
	}

	uc.evict(ctx, id)
	event.Emit(ctx, uc.events, event.BookDeleted, id)
	zap.L().Info("图书已删除", zap.Uint("book_id", id))
	return true, nil
}

func (uc *ManageBookUseCase) evict(ctx context.Context, id uint) {
	if err := uc.cache.Delete(ctx, id); err != nil {
		zap.L().Warn("图书详情缓存失效失败", zap.Uint("book_id", id), zap.Error(err))
	}
}
