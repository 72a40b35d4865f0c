package mysql

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/application/query"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// ReadStore 读模型查询(squirrel拼SQL + GORM Raw执行)
// 设计说明:
// 1. 只返回扁平行,组装交给query.Engine
// 2. 列别名与行结构体字段的蛇形命名一一对应,Scan按名字映射
// 3. 所有查询走conn(ctx),在事务内调用时能读到未提交的数据
type ReadStore struct {
	db *gorm.DB
}

var _ query.ReadStore = (*ReadStore)(nil)

// NewReadStore 创建读模型查询
func NewReadStore(db *gorm.DB) *ReadStore {
	return &ReadStore{db: db}
}

// =========================================
// 图书
// =========================================

// filterBooks 图书筛选条件,COUNT和分页共用
func filterBooks(b sq.SelectBuilder, f query.BookFilter) sq.SelectBuilder {
	if f.AuthorID != 0 {
		b = b.Where(sq.Eq{"b.author_id": f.AuthorID})
	}
	if f.GenreID != 0 {
		b = b.Join("book_genres fg ON fg.book_id = b.id AND fg.genre_id = ?", f.GenreID)
	}
	if f.Term != "" {
		// 类型是一对多,用子查询匹配避免主查询行数放大
		like := "%" + strings.ToLower(f.Term) + "%"
		sub, args, _ := sq.Select("sb.id").
			From("books sb").
			Join("authors sa ON sa.id = sb.author_id").
			LeftJoin("book_genres sbg ON sbg.book_id = sb.id").
			LeftJoin("genres sg ON sg.id = sbg.genre_id").
			Where(sq.Or{
				sq.Like{"LOWER(sb.title)": like},
				sq.Like{"LOWER(sa.name)": like},
				sq.Like{"LOWER(sg.name)": like},
			}).
			ToSql()
		b = b.Where("b.id IN ("+sub+")", args...)
	}
	return b
}

// CountBooks 统计符合条件的图书数量
func (s *ReadStore) CountBooks(ctx context.Context, f query.BookFilter) (int64, error) {
	var total int64
	err := s.raw(ctx, filterBooks(sq.Select("COUNT(*)").From("books b"), f), &total)
	if err != nil {
		return 0, apperrors.Wrap(err, "统计图书失败")
	}
	return total, nil
}

// ListBooks 按id升序分页
func (s *ReadStore) ListBooks(ctx context.Context, f query.BookFilter, offset, limit int) ([]query.BookRow, error) {
	builder := filterBooks(sq.Select("b.id", "b.title", "b.year", "b.author_id").From("books b"), f).
		OrderBy("b.id").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	var rows []query.BookRow
	if err := s.raw(ctx, builder, &rows); err != nil {
		return nil, apperrors.Wrap(err, "查询图书列表失败")
	}
	return rows, nil
}

// FindBook 图书头信息,不存在返回nil
func (s *ReadStore) FindBook(ctx context.Context, id uint) (*query.BookRow, error) {
	var rows []query.BookRow
	builder := sq.Select("b.id", "b.title", "b.year", "b.author_id").From("books b").Where(sq.Eq{"b.id": id})
	if err := s.raw(ctx, builder, &rows); err != nil {
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return first(rows), nil
}

// BookDetailRows 图书 JOIN 作者 LEFT JOIN 类型
func (s *ReadStore) BookDetailRows(ctx context.Context, id uint) ([]query.BookDetailRow, error) {
	builder := sq.Select(
		"b.id AS book_id",
		"b.title AS title",
		"b.year AS year",
		"a.id AS author_id",
		"a.name AS author_name",
		"a.biography AS author_biography",
		"a.birth_date AS author_birth_date",
		"g.id AS genre_id",
		"g.name AS genre_name",
		"g.description AS genre_desc",
	).
		From("books b").
		Join("authors a ON a.id = b.author_id").
		LeftJoin("book_genres bg ON bg.book_id = b.id").
		LeftJoin("genres g ON g.id = bg.genre_id").
		Where(sq.Eq{"b.id": id}).
		OrderBy("g.id")

	var rows []query.BookDetailRow
	if err := s.raw(ctx, builder, &rows); err != nil {
		return nil, apperrors.Wrap(err, "查询图书详情失败")
	}
	return rows, nil
}

// GenresOfBook 图书关联的类型,按类型id升序
func (s *ReadStore) GenresOfBook(ctx context.Context, bookID uint) ([]query.GenreRow, error) {
	builder := sq.Select("g.id", "g.name", "g.description").
		From("genres g").
		Join("book_genres bg ON bg.genre_id = g.id").
		Where(sq.Eq{"bg.book_id": bookID}).
		OrderBy("g.id")

	var rows []query.GenreRow
	if err := s.raw(ctx, builder, &rows); err != nil {
		return nil, apperrors.Wrap(err, "查询图书类型失败")
	}
	return rows, nil
}

// =========================================
// 作者
// =========================================

var authorColumns = []string{"a.id", "a.name", "a.biography", "a.birth_date"}

// CountAuthors 作者总数
func (s *ReadStore) CountAuthors(ctx context.Context) (int64, error) {
	var total int64
	if err := s.raw(ctx, sq.Select("COUNT(*)").From("authors"), &total); err != nil {
		return 0, apperrors.Wrap(err, "统计作者失败")
	}
	return total, nil
}

// ListAuthors 作者分页
func (s *ReadStore) ListAuthors(ctx context.Context, offset, limit int) ([]query.AuthorRow, error) {
	builder := sq.Select(authorColumns...).From("authors a").
		OrderBy("a.id").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	var rows []query.AuthorRow
	if err := s.raw(ctx, builder, &rows); err != nil {
		return nil, apperrors.Wrap(err, "查询作者列表失败")
	}
	return rows, nil
}

// FindAuthor 单个作者,不存在返回nil
func (s *ReadStore) FindAuthor(ctx context.Context, id uint) (*query.AuthorRow, error) {
	var rows []query.AuthorRow
	if err := s.raw(ctx, sq.Select(authorColumns...).From("authors a").Where(sq.Eq{"a.id": id}), &rows); err != nil {
		return nil, apperrors.Wrap(err, "查询作者失败")
	}
	return first(rows), nil
}

// AuthorDetailRows 作者 LEFT JOIN 图书
func (s *ReadStore) AuthorDetailRows(ctx context.Context, id uint) ([]query.AuthorDetailRow, error) {
	builder := sq.Select(
		"a.id AS author_id",
		"a.name AS name",
		"a.biography AS biography",
		"a.birth_date AS birth_date",
		"b.id AS book_id",
		"b.title AS book_title",
		"b.year AS book_year",
	).
		From("authors a").
		LeftJoin("books b ON b.author_id = a.id").
		Where(sq.Eq{"a.id": id}).
		OrderBy("b.id")

	var rows []query.AuthorDetailRow
	if err := s.raw(ctx, builder, &rows); err != nil {
		return nil, apperrors.Wrap(err, "查询作者详情失败")
	}
	return rows, nil
}

// =========================================
// 类型
// =========================================

var genreColumns = []string{"g.id", "g.name", "g.description"}

// CountGenres 类型总数
func (s *ReadStore) CountGenres(ctx context.Context) (int64, error) {
	var total int64
	if err := s.raw(ctx, sq.Select("COUNT(*)").From("genres"), &total); err != nil {
		return 0, apperrors.Wrap(err, "统计类型失败")
	}
	return total, nil
}

// ListGenres 类型分页
func (s *ReadStore) ListGenres(ctx context.Context, offset, limit int) ([]query.GenreRow, error) {
	builder := sq.Select(genreColumns...).From("genres g").
		OrderBy("g.id").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	var rows []query.GenreRow
	if err := s.raw(ctx, builder, &rows); err != nil {
		return nil, apperrors.Wrap(err, "查询类型列表失败")
	}
	return rows, nil
}

// FindGenre 单个类型,不存在返回nil
func (s *ReadStore) FindGenre(ctx context.Context, id uint) (*query.GenreRow, error) {
	var rows []query.GenreRow
	if err := s.raw(ctx, sq.Select(genreColumns...).From("genres g").Where(sq.Eq{"g.id": id}), &rows); err != nil {
		return nil, apperrors.Wrap(err, "查询类型失败")
	}
	return first(rows), nil
}

// GenreDetailRows 类型 LEFT JOIN 关联表 LEFT JOIN 图书 LEFT JOIN 作者
func (s *ReadStore) GenreDetailRows(ctx context.Context, id uint) ([]query.GenreDetailRow, error) {
	builder := sq.Select(
		"g.id AS genre_id",
		"g.name AS name",
		"g.description AS description",
		"b.id AS book_id",
		"b.title AS book_title",
		"b.year AS book_year",
		"a.id AS author_id",
		"a.name AS author_name",
	).
		From("genres g").
		LeftJoin("book_genres bg ON bg.genre_id = g.id").
		LeftJoin("books b ON b.id = bg.book_id").
		LeftJoin("authors a ON a.id = b.author_id").
		Where(sq.Eq{"g.id": id}).
		OrderBy("b.id")

	var rows []query.GenreDetailRow
	if err := s.raw(ctx, builder, &rows); err != nil {
		return nil, apperrors.Wrap(err, "查询类型详情失败")
	}
	return rows, nil
}

// raw 生成SQL并扫描到dest
func (s *ReadStore) raw(ctx context.Context, builder sq.Sqlizer, dest interface{}) error {
	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	return conn(ctx, s.db).Raw(sql, args...).Scan(dest).Error
}

func first[T any](rows []T) *T {
	if len(rows) == 0 {
		return nil
	}
	return &rows[0]
}
