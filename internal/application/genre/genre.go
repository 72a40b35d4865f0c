package genre

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/application/event"
	"github.com/xiebiao/bookcatalog/internal/application/query"
	"github.com/xiebiao/bookcatalog/internal/domain/genre"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// ManageGenreUseCase 类型写操作用例
type ManageGenreUseCase struct {
	service genre.Service
	cache   query.DetailCache
	events  event.Publisher
}

// NewManageGenreUseCase 创建类型写操作用例
func NewManageGenreUseCase(service genre.Service, cache query.DetailCache, events event.Publisher) *ManageGenreUseCase {
	return &ManageGenreUseCase{service: service, cache: cache, events: events}
}

// Create 创建类型
func (uc *ManageGenreUseCase) Create(ctx context.Context, cmd genre.CreateCommand) (id uint, err error) {
	ctx, span := tracing.StartSpan(ctx, "genre.CreateGenre")
	start := time.Now()
	defer func() {
		metrics.ObserveCommand("create_genre", start, true, err)
		tracing.End(span, err)
	}()

	id, err = uc.service.CreateGenre(ctx, cmd)
	if err != nil {
		return 0, err
	}
	event.Emit(ctx, uc.events, event.GenreCreated, id)
	zap.L().Info("类型已创建", zap.Uint("genre_id", id), zap.String("name", cmd.Name))
	return id, nil
}

// Update 更新类型,不存在返回false
func (uc *ManageGenreUseCase) Update(ctx context.Context, cmd genre.UpdateCommand) (found bool, err error) {
	ctx, span := tracing.StartSpan(ctx, "genre.UpdateGenre", attribute.Int("genre.id", int(cmd.ID)))
	start := time.Now()
	defer func() {
		metrics.ObserveCommand("update_genre", start, found, err)
		tracing.End(span, err)
	}()

	found, err = uc.service.UpdateGenre(ctx, cmd)
	if err != nil || !found {
		return found, err
	}

	// 类型名出现在图书详情里
	if err := uc.cache.DeleteAll(ctx); err != nil {
		zap.L().Warn("清空图书详情缓存失败", zap.Uint("genre_id", cmd.ID), zap.Error(err))
	}
	event.Emit(ctx, uc.events, event.GenreUpdated, cmd.ID)
	zap.L().Info("类型已更新", zap.Uint("genre_id", cmd.ID))
	return true, nil
}

// Delete 删除类型,仍有图书关联时返回冲突错误
func (uc *ManageGenreUseCase) Delete(ctx context.Context, id uint) (found bool, err error) {
	ctx, span := tracing.StartSpan(ctx, "genre.DeleteGenre", attribute.Int("genre.id", int(id)))
	start := time.Now()
	defer func() {
		metrics.ObserveCommand("delete_genre", start, found, err)
		tracing.End(span, err)
	}()

	found, err = uc.service.DeleteGenre(ctx, id)
	if err != nil || !found {
		return found, err
	}
	event.Emit(ctx, uc.events, event.GenreDeleted, id)
	zap.L().Info("类型已删除", zap.Uint("genre_id", id))
	return true, nil
}

// QueryGenresUseCase 类型查询用例
type QueryGenresUseCase struct {
	engine *query.Engine
}

// NewQueryGenresUseCase 创建类型查询用例
func NewQueryGenresUseCase(engine *query.Engine) *QueryGenresUseCase {
	return &QueryGenresUseCase{engine: engine}
}

// List 类型分页
func (uc *QueryGenresUseCase) List(ctx context.Context, p query.Pagination) (*query.PagedResult[query.GenreDTO], error) {
	ctx, span := tracing.StartSpan(ctx, "genre.List")
	defer span.End()
	defer metrics.ObserveQuery("list_genres", time.Now())

	return uc.engine.ListGenres(ctx, p)
}

// Get 单个类型,不存在返回nil
func (uc *QueryGenresUseCase) Get(ctx context.Context, id uint) (*query.GenreDTO, error) {
	ctx, span := tracing.StartSpan(ctx, "genre.Get", attribute.Int("genre.id", int(id)))
	defer span.End()
	defer metrics.ObserveQuery("get_genre", time.Now())

	return uc.engine.GenreByID(ctx, id)
}

// Detail 类型详情(含图书),不存在返回nil
func (uc *QueryGenresUseCase) Detail(ctx context.Context, id uint) (*query.GenreDetailDTO, error) {
	ctx, span := tracing.StartSpan(ctx, "genre.Detail", attribute.Int("genre.id", int(id)))
	defer span.End()
	defer metrics.ObserveQuery("genre_detail", time.Now())

	return uc.engine.GenreDetail(ctx, id)
}
