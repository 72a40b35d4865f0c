package book

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/application/query"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// QueryBooksUseCase 图书查询用例
// 列表类查询直接走查询引擎;详情走 cache-aside:
//
//	读缓存 → 命中直接返回
//	      → 未命中查库,存在则回填
//
// 缓存读写失败都降级为查库,不向调用方报错
type QueryBooksUseCase struct {
	engine *query.Engine
	cache  query.DetailCache
}

// NewQueryBooksUseCase 创建图书查询用例
func NewQueryBooksUseCase(engine *query.Engine, cache query.DetailCache) *QueryBooksUseCase {
	return &QueryBooksUseCase{engine: engine, cache: cache}
}

// List 全部图书分页
func (uc *QueryBooksUseCase) List(ctx context.Context, p query.Pagination) (*query.PagedResult[query.BookDTO], error) {
	ctx, span := tracing.StartSpan(ctx, "book.List", attribute.Int("page.number", p.PageNumber))
	defer span.End()
	defer metrics.ObserveQuery("list_books", time.Now())

	return uc.engine.ListBooks(ctx, p)
}

// ByAuthor 某作者的图书分页,作者不存在时返回空页
func (uc *QueryBooksUseCase) ByAuthor(ctx context.Context, authorID uint, p query.Pagination) (*query.PagedResult[query.BookDTO], error) {
	ctx, span := tracing.StartSpan(ctx, "book.ByAuthor", attribute.Int("author.id", int(authorID)))
	defer span.End()
	defer metrics.ObserveQuery("books_by_author", time.Now())

	return uc.engine.BooksByAuthor(ctx, authorID, p)
}

// ByGenre 某类型的图书分页
func (uc *QueryBooksUseCase) ByGenre(ctx context.Context, genreID uint, p query.Pagination) (*query.PagedResult[query.BookDTO], error) {
	ctx, span := tracing.StartSpan(ctx, "book.ByGenre", attribute.Int("genre.id", int(genreID)))
	defer span.End()
	defer metrics.ObserveQuery("books_by_genre", time.Now())

	return uc.engine.BooksByGenre(ctx, genreID, p)
}

// Search 按书名、作者名、类型名搜索
func (uc *QueryBooksUseCase) Search(ctx context.Context, term string, p query.Pagination) (*query.PagedResult[query.BookDTO], error) {
	ctx, span := tracing.StartSpan(ctx, "book.Search", attribute.String("search.term", term))
	defer span.End()
	defer metrics.ObserveQuery("search_books", time.Now())

	return uc.engine.SearchBooks(ctx, term, p)
}

// Get 单本图书,不存在返回nil
func (uc *QueryBooksUseCase) Get(ctx context.Context, id uint) (*query.BookDTO, error) {
	ctx, span := tracing.StartSpan(ctx, "book.Get", attribute.Int("book.id", int(id)))
	defer span.End()
	defer metrics.ObserveQuery("get_book", time.Now())

	return uc.engine.BookByID(ctx, id)
}

// Detail 图书详情,不存在返回nil
func (uc *QueryBooksUseCase) Detail(ctx context.Context, id uint) (*query.BookDTO, error) {
	ctx, span := tracing.StartSpan(ctx, "book.Detail", attribute.Int("book.id", int(id)))
	defer span.End()
	defer metrics.ObserveQuery("book_detail", time.Now())

	cached, ok, err := uc.cache.Get(ctx, id)
	switch {
	case err != nil:
		metrics.ObserveCache(metrics.CacheError)
		zap.L().Warn("读取图书详情缓存失败", zap.Uint("book_id", id), zap.Error(err))
	case ok:
		metrics.ObserveCache(metrics.CacheHit)
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	default:
		metrics.ObserveCache(metrics.CacheMiss)
	}

	detail, err := uc.engine.BookDetail(ctx, id)
	if err != nil || detail == nil {
		return detail, err
	}

	if err := uc.cache.Set(ctx, detail); err != nil {
		zap.L().Warn("写入图书详情缓存失败", zap.Uint("book_id", id), zap.Error(err))
	}
	return detail, nil
}
