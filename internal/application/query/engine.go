// Package query 分页查询引擎
//
// 从规范化的关系行重建嵌套视图:
//  1. 规范化分页参数
//  2. 用同一筛选条件COUNT总数
//  3. 按id升序取当前页
//  4. 逐行补充作者与类型(顺序执行)
//  5. 组装分页结果
//
// 详情查询走另一条路径:一次联表查询得到扁平行,再按父ID归并。
package query

import (
	"context"
	"strings"

	"github.com/samber/lo"
)

// Engine 查询引擎
type Engine struct {
	store ReadStore
}

// NewEngine 创建查询引擎
func NewEngine(store ReadStore) *Engine {
	return &Engine{store: store}
}

// =========================================
// 图书
// =========================================

// ListBooks 全部图书
func (e *Engine) ListBooks(ctx context.Context, p Pagination) (*PagedResult[BookDTO], error) {
	return e.pageBooks(ctx, BookFilter{}, p, nil)
}

// BooksByAuthor 某作者的图书,作者只查询一次
func (e *Engine) BooksByAuthor(ctx context.Context, authorID uint, p Pagination) (*PagedResult[BookDTO], error) {
	a, err := e.store.FindAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return NewPagedResult[BookDTO](nil, 0, p), nil
	}
	return e.pageBooks(ctx, BookFilter{AuthorID: authorID}, p, map[uint]*AuthorDTO{a.ID: toAuthorDTO(a)})
}

// BooksByGenre 关联某类型的图书
func (e *Engine) BooksByGenre(ctx context.Context, genreID uint, p Pagination) (*PagedResult[BookDTO], error) {
	return e.pageBooks(ctx, BookFilter{GenreID: genreID}, p, nil)
}

// SearchBooks 按书名、作者名、类型名模糊搜索(不区分大小写,按图书去重)
func (e *Engine) SearchBooks(ctx context.Context, term string, p Pagination) (*PagedResult[BookDTO], error) {
	return e.pageBooks(ctx, BookFilter{Term: strings.TrimSpace(term)}, p, nil)
}

// BookByID 单本图书(逐项补充),不存在返回nil
func (e *Engine) BookByID(ctx context.Context, id uint) (*BookDTO, error) {
	row, err := e.store.FindBook(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}
	dto, err := e.enrich(ctx, *row, map[uint]*AuthorDTO{})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// BookDetail 图书详情:一次联表查询后按图书ID归并
func (e *Engine) BookDetail(ctx context.Context, id uint) (*BookDTO, error) {
	rows, err := e.store.BookDetailRows(ctx, id)
	if err != nil {
		return nil, err
	}

	books := groupByParent(rows,
		func(r BookDetailRow) uint { return r.BookID },
		func(r BookDetailRow) BookDTO {
			return BookDTO{
				ID:    r.BookID,
				Title: r.Title,
				Year:  r.Year,
				Author: &AuthorDTO{
					ID:        r.AuthorID,
					Name:      r.AuthorName,
					Biography: r.AuthorBiography,
					BirthDate: r.AuthorBirthDate,
				},
				Genres: []GenreDTO{},
			}
		},
		func(b *BookDTO, r BookDetailRow) {
			if r.GenreID == nil {
				return
			}
			b.Genres = append(b.Genres, GenreDTO{
				ID:          *r.GenreID,
				Name:        lo.FromPtr(r.GenreName),
				Description: lo.FromPtr(r.GenreDesc),
			})
		},
	)
	if len(books) == 0 {
		return nil, nil
	}
	return &books[0], nil
}

// pageBooks 图书分页的公共流程
// authors 是本页内的作者缓存,同一作者只查询一次
func (e *Engine) pageBooks(ctx context.Context, f BookFilter, p Pagination, authors map[uint]*AuthorDTO) (*PagedResult[BookDTO], error) {
	total, err := e.store.CountBooks(ctx, f)
	if err != nil {
		return nil, err
	}

	rows, err := e.store.ListBooks(ctx, f, p.Offset(), p.PageSize)
	if err != nil {
		return nil, err
	}

	if authors == nil {
		authors = make(map[uint]*AuthorDTO)
	}
	items := make([]BookDTO, 0, len(rows))
	for _, row := range rows {
		dto, err := e.enrich(ctx, row, authors)
		if err != nil {
			return nil, err
		}
		items = append(items, dto)
	}

	return NewPagedResult(items, total, p), nil
}

// enrich 为一行图书补充作者和类型摘要
func (e *Engine) enrich(ctx context.Context, row BookRow, authors map[uint]*AuthorDTO) (BookDTO, error) {
	a, ok := authors[row.AuthorID]
	if !ok {
		found, err := e.store.FindAuthor(ctx, row.AuthorID)
		if err != nil {
			return BookDTO{}, err
		}
		if found != nil {
			a = toAuthorDTO(found)
		}
		authors[row.AuthorID] = a
	}

	genres, err := e.store.GenresOfBook(ctx, row.ID)
	if err != nil {
		return BookDTO{}, err
	}

	return BookDTO{
		ID:     row.ID,
		Title:  row.Title,
		Year:   row.Year,
		Author: a,
		Genres: lo.Map(genres, func(g GenreRow, _ int) GenreDTO { return toGenreDTO(g) }),
	}, nil
}

// =========================================
// 作者
// =========================================

// ListAuthors 作者分页
func (e *Engine) ListAuthors(ctx context.Context, p Pagination) (*PagedResult[AuthorDTO], error) {
	total, err := e.store.CountAuthors(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := e.store.ListAuthors(ctx, p.Offset(), p.PageSize)
	if err != nil {
		return nil, err
	}
	items := lo.Map(rows, func(r AuthorRow, _ int) AuthorDTO { return *toAuthorDTO(&r) })
	return NewPagedResult(items, total, p), nil
}

// AuthorByID 单个作者,不存在返回nil
func (e *Engine) AuthorByID(ctx context.Context, id uint) (*AuthorDTO, error) {
	row, err := e.store.FindAuthor(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}
	return toAuthorDTO(row), nil
}

// AuthorDetail 作者详情:作者 LEFT JOIN 图书归并后,再为每本书加载类型
func (e *Engine) AuthorDetail(ctx context.Context, id uint) (*AuthorDetailDTO, error) {
	rows, err := e.store.AuthorDetailRows(ctx, id)
	if err != nil {
		return nil, err
	}

	authors := groupByParent(rows,
		func(r AuthorDetailRow) uint { return r.AuthorID },
		func(r AuthorDetailRow) AuthorDetailDTO {
			return AuthorDetailDTO{
				AuthorDTO: AuthorDTO{ID: r.AuthorID, Name: r.Name, Biography: r.Biography, BirthDate: r.BirthDate},
				Books:     []BookDTO{},
			}
		},
		func(a *AuthorDetailDTO, r AuthorDetailRow) {
			if r.BookID == nil {
				return
			}
			a.Books = append(a.Books, BookDTO{
				ID:    *r.BookID,
				Title: lo.FromPtr(r.BookTitle),
				Year:  lo.FromPtr(r.BookYear),
			})
		},
	)
	if len(authors) == 0 {
		return nil, nil
	}

	detail := &authors[0]
	if err := e.attachGenres(ctx, detail.Books); err != nil {
		return nil, err
	}
	return detail, nil
}

// =========================================
// 类型
// =========================================

// ListGenres 类型分页
func (e *Engine) ListGenres(ctx context.Context, p Pagination) (*PagedResult[GenreDTO], error) {
	total, err := e.store.CountGenres(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := e.store.ListGenres(ctx, p.Offset(), p.PageSize)
	if err != nil {
		return nil, err
	}
	items := lo.Map(rows, func(g GenreRow, _ int) GenreDTO { return toGenreDTO(g) })
	return NewPagedResult(items, total, p), nil
}

// GenreByID 单个类型,不存在返回nil
func (e *Engine) GenreByID(ctx context.Context, id uint) (*GenreDTO, error) {
	row, err := e.store.FindGenre(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}
	dto := toGenreDTO(*row)
	return &dto, nil
}

// GenreDetail 类型详情:类型 LEFT JOIN 图书归并后,再为每本书加载类型
func (e *Engine) GenreDetail(ctx context.Context, id uint) (*GenreDetailDTO, error) {
	rows, err := e.store.GenreDetailRows(ctx, id)
	if err != nil {
		return nil, err
	}

	genres := groupByParent(rows,
		func(r GenreDetailRow) uint { return r.GenreID },
		func(r GenreDetailRow) GenreDetailDTO {
			return GenreDetailDTO{
				GenreDTO: GenreDTO{ID: r.GenreID, Name: r.Name, Description: r.Description},
				Books:    []BookDTO{},
			}
		},
		func(g *GenreDetailDTO, r GenreDetailRow) {
			if r.BookID == nil {
				return
			}
			b := BookDTO{
				ID:    *r.BookID,
				Title: lo.FromPtr(r.BookTitle),
				Year:  lo.FromPtr(r.BookYear),
			}
			if r.AuthorID != nil {
				b.Author = &AuthorDTO{ID: *r.AuthorID, Name: lo.FromPtr(r.AuthorName)}
			}
			g.Books = append(g.Books, b)
		},
	)
	if len(genres) == 0 {
		return nil, nil
	}

	detail := &genres[0]
	if err := e.attachGenres(ctx, detail.Books); err != nil {
		return nil, err
	}
	return detail, nil
}

// attachGenres 逐本加载类型摘要
func (e *Engine) attachGenres(ctx context.Context, books []BookDTO) error {
	for i := range books {
		genres, err := e.store.GenresOfBook(ctx, books[i].ID)
		if err != nil {
			return err
		}
		books[i].Genres = lo.Map(genres, func(g GenreRow, _ int) GenreDTO { return toGenreDTO(g) })
	}
	return nil
}

func toAuthorDTO(r *AuthorRow) *AuthorDTO {
	return &AuthorDTO{
		ID:        r.ID,
		Name:      r.Name,
		Biography: r.Biography,
		BirthDate: r.BirthDate,
	}
}

func toGenreDTO(g GenreRow) GenreDTO {
	return GenreDTO{ID: g.ID, Name: g.Name, Description: g.Description}
}
