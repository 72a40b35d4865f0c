package author

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/application/event"
	"github.com/xiebiao/bookcatalog/internal/application/query"
	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// ManageAuthorUseCase 作者写操作用例
// 图书详情里内嵌了作者信息,作者更新后清空全部详情缓存
type ManageAuthorUseCase struct {
	service author.Service
	cache   query.DetailCache
	events  event.Publisher
}

// NewManageAuthorUseCase 创建作者写操作用例
func NewManageAuthorUseCase(service author.Service, cache query.DetailCache, events event.Publisher) *ManageAuthorUseCase {
	return &ManageAuthorUseCase{service: service, cache: cache, events: events}
}

// Create 创建作者
func (uc *ManageAuthorUseCase) Create(ctx context.Context, cmd author.CreateCommand) (id uint, err error) {
	ctx, span := tracing.StartSpan(ctx, "author.CreateAuthor")
	start := time.Now()
	defer func() {
		metrics.ObserveCommand("create_author", start, true, err)
		tracing.End(span, err)
	}()

	id, err = uc.service.CreateAuthor(ctx, cmd)
	if err != nil {
		return 0, err
	}
	event.Emit(ctx, uc.events, event.AuthorCreated, id)
	zap.L().Info("作者已创建", zap.Uint("author_id", id), zap.String("name", cmd.Name))
	return id, nil
}

// Update 更新作者,不存在返回false
func (uc *ManageAuthorUseCase) Update(ctx context.Context, cmd author.UpdateCommand) (found bool, err error) {
	ctx, span := tracing.StartSpan(ctx, "author.UpdateAuthor", attribute.Int("author.id", int(cmd.ID)))
	start := time.Now()
	defer func() {
		metrics.ObserveCommand("update_author", start, found, err)
		tracing.End(span, err)
	}()

	found, err = uc.service.UpdateAuthor(ctx, cmd)
	if err != nil || !found {
		return found, err
	}

	if err := uc.cache.DeleteAll(ctx); err != nil {
		zap.L().Warn("清空图书详情缓存失败", zap.Uint("author_id", cmd.ID), zap.Error(err))
	}
	event.Emit(ctx, uc.events, event.AuthorUpdated, cmd.ID)
	zap.L().Info("作者已更新", zap.Uint("author_id", cmd.ID))
	return true, nil
}

// Delete 删除作者
// 仍有图书引用时返回冲突错误;能删除说明没有图书,不涉及详情缓存
func (uc *ManageAuthorUseCase) Delete(ctx context.Context, id uint) (found bool, err error) {
	ctx, span := tracing.StartSpan(ctx, "author.DeleteAuthor", attribute.Int("author.id", int(id)))
	start := time.Now()
	defer func() {
		metrics.ObserveCommand("delete_author", start, found, err)
		tracing.End(span, err)
	}()

	found, err = uc.service.DeleteAuthor(ctx, id)
	if err != nil || !found {
		return found, err
	}
	event.Emit(ctx, uc.events, event.AuthorDeleted, id)
	zap.L().Info("作者已删除", zap.Uint("author_id", id))
	return true, nil
}

// QueryAuthorsUseCase 作者查询用例
type QueryAuthorsUseCase struct {
	engine *query.Engine
}

// NewQueryAuthorsUseCase 创建作者查询用例
func NewQueryAuthorsUseCase(engine *query.Engine) *QueryAuthorsUseCase {
	return &QueryAuthorsUseCase{engine: engine}
}

// List 作者分页
func (uc *QueryAuthorsUseCase) List(ctx context.Context, p query.Pagination) (*query.PagedResult[query.AuthorDTO], error) {
	ctx, span := tracing.StartSpan(ctx, "author.List")
	defer span.End()
	defer metrics.ObserveQuery("list_authors", time.Now())

	return uc.engine.ListAuthors(ctx, p)
}

// Get 单个作者,不存在返回nil
func (uc *QueryAuthorsUseCase) Get(ctx context.Context, id uint) (*query.AuthorDTO, error) {
	ctx, span := tracing.StartSpan(ctx, "author.Get", attribute.Int("author.id", int(id)))
	defer span.End()
	defer metrics.ObserveQuery("get_author", time.Now())

	return uc.engine.AuthorByID(ctx, id)
}

// Detail 作者详情(含作品),不存在返回nil
func (uc *QueryAuthorsUseCase) Detail(ctx context.Context, id uint) (*query.AuthorDetailDTO, error) {
	ctx, span := tracing.StartSpan(ctx, "author.Detail", attribute.Int("author.id", int(id)))
	defer span.End()
	defer metrics.ObserveQuery("author_detail", time.Now())

	return uc.engine.AuthorDetail(ctx, id)
}
