package query

import (
	"context"
	"time"
)

// BookFilter 图书列表筛选条件,零值表示不筛选
// COUNT和分页查询使用同一个筛选条件,保证总数与分页一致
type BookFilter struct {
	AuthorID uint
	GenreID  uint
	Term     string // 书名/作者名/类型名包含该词(不区分大小写)
}

// =========================================
// 读模型行(类型化投影)
// =========================================

// BookRow 图书头信息
type BookRow struct {
	ID       uint
	Title    string
	Year     int
	AuthorID uint
}

// AuthorRow 作者
type AuthorRow struct {
	ID        uint
	Name      string
	Biography string
	BirthDate *time.Time
}

// GenreRow 类型
type GenreRow struct {
	ID          uint
	Name        string
	Description string
}

// BookDetailRow 图书 JOIN 作者 LEFT JOIN 类型,每个(图书,类型)一行
// 图书没有类型时只有一行,GenreID为NULL
type BookDetailRow struct {
	BookID          uint
	Title           string
	Year            int
	AuthorID        uint
	AuthorName      string
	AuthorBiography string
	AuthorBirthDate *time.Time
	GenreID         *uint
	GenreName       *string
	GenreDesc       *string
}

// AuthorDetailRow 作者 LEFT JOIN 图书,每个(作者,图书)一行
type AuthorDetailRow struct {
	AuthorID  uint
	Name      string
	Biography string
	BirthDate *time.Time
	BookID    *uint
	BookTitle *string
	BookYear  *int
}

// GenreDetailRow 类型 LEFT JOIN 关联表 LEFT JOIN 图书 LEFT JOIN 作者
type GenreDetailRow struct {
	GenreID     uint
	Name        string
	Description string
	BookID      *uint
	BookTitle   *string
	BookYear    *int
	AuthorID    *uint
	AuthorName  *string
}

// ReadStore 读模型查询接口
// 实现方不做任何组装,只返回扁平行;不存在时返回nil或空切片,不返回错误
type ReadStore interface {
	CountBooks(ctx context.Context, f BookFilter) (int64, error)
	ListBooks(ctx context.Context, f BookFilter, offset, limit int) ([]BookRow, error)
	FindBook(ctx context.Context, id uint) (*BookRow, error)
	BookDetailRows(ctx context.Context, id uint) ([]BookDetailRow, error)
	GenresOfBook(ctx context.Context, bookID uint) ([]GenreRow, error)

	CountAuthors(ctx context.Context) (int64, error)
	ListAuthors(ctx context.Context, offset, limit int) ([]AuthorRow, error)
	FindAuthor(ctx context.Context, id uint) (*AuthorRow, error)
	AuthorDetailRows(ctx context.Context, id uint) ([]AuthorDetailRow, error)

	CountGenres(ctx context.Context) (int64, error)
	ListGenres(ctx context.Context, offset, limit int) ([]GenreRow, error)
	FindGenre(ctx context.Context, id uint) (*GenreRow, error)
	GenreDetailRows(ctx context.Context, id uint) ([]GenreDetailRow, error)
}
