package mysql

import (
	"context"
	"errors"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// BookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 同时实现author.BookCounter和genre.BookCounter(删除作者/类型前的引用计数)
// 3. 所有方法通过conn(ctx)取连接,可参与调用方的事务
type BookRepository struct {
	db *gorm.DB
}

var _ book.Repository = (*BookRepository)(nil)

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

// Create 插入图书头信息
func (r *BookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		Title:    b.Title,
		Year:     b.Year,
		AuthorID: b.AuthorID,
	}
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书(含类型关联)
func (r *BookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	db := conn(ctx, r.db)

	var model BookModel
	if err := db.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	var links []BookGenreModel
	if err := db.Where("book_id = ?", id).Order("genre_id").Find(&links).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书类型失败")
	}

	b := toBookEntity(&model)
	b.Genres = lo.Map(links, func(l BookGenreModel, _ int) book.BookGenre {
		return book.BookGenre{BookID: l.BookID, GenreID: l.GenreID}
	})
	return b, nil
}

// Update 更新图书头信息
func (r *BookRepository) Update(ctx context.Context, b *book.Book) error {
	result := conn(ctx, r.db).Model(&BookModel{ID: b.ID}).Updates(map[string]interface{}{
		"title":     b.Title,
		"year":      b.Year,
		"author_id": b.AuthorID,
	})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新图书失败")
	}
	return nil
}

// SaveGenres 同步类型关联
// 比较存储中的关联与聚合中的关联,只删除被移除的、插入新增的
func (r *BookRepository) SaveGenres(ctx context.Context, b *book.Book) error {
	if !b.IsPersisted() {
		return book.ErrBookNotPersisted
	}
	db := conn(ctx, r.db)

	var stored []uint
	if err := db.Model(&BookGenreModel{}).Where("book_id = ?", b.ID).Pluck("genre_id", &stored).Error; err != nil {
		return apperrors.Wrap(err, "查询图书类型失败")
	}

	toAdd, toRemove := lo.Difference(b.GenreIDs(), stored)

	if len(toRemove) > 0 {
		err := db.Where("book_id = ? AND genre_id IN ?", b.ID, toRemove).Delete(&BookGenreModel{}).Error
		if err != nil {
			return apperrors.Wrap(err, "移除图书类型失败")
		}
	}

	if len(toAdd) > 0 {
		links := lo.Map(toAdd, func(genreID uint, _ int) BookGenreModel {
			return BookGenreModel{BookID: b.ID, GenreID: genreID}
		})
		// 已存在的关联直接跳过
		err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
		if err != nil && !isDuplicateError(err) {
			return apperrors.Wrap(err, "添加图书类型失败")
		}
	}

	return nil
}

// Delete 删除图书及其类型关联
func (r *BookRepository) Delete(ctx context.Context, id uint) error {
	db := conn(ctx, r.db)

	if err := db.Where("book_id = ?", id).Delete(&BookGenreModel{}).Error; err != nil {
		return apperrors.Wrap(err, "删除图书类型失败")
	}

	result := db.Delete(&BookModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// CountByAuthorID 统计作者的图书数量
func (r *BookRepository) CountByAuthorID(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&BookModel{}).Where("author_id = ?", authorID).Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计作者图书失败")
	}
	return count, nil
}

// CountByGenreID 通过关联表统计类型下的图书数量
func (r *BookRepository) CountByGenreID(ctx context.Context, genreID uint) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&BookGenreModel{}).
		Where("genre_id = ?", genreID).
		Distinct("book_id").
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计类型图书失败")
	}
	return count, nil
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:        model.ID,
		Title:     model.Title,
		Year:      model.Year,
		AuthorID:  model.AuthorID,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
