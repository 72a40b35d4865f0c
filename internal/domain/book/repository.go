package book

import (
	"context"
)

// Repository 图书仓储接口
// 设计说明:
// 1. 定义在domain层,由infrastructure层实现(依赖倒置原则)
// 2. 图书头信息与类型关联分开持久化,调用方用TxManager把两步放进同一事务
type Repository interface {
	// Create 只插入图书头信息,回填ID
	Create(ctx context.Context, b *Book) error

	// FindByID 加载图书及其类型关联,不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 更新图书头信息
	Update(ctx context.Context, b *Book) error

	// SaveGenres 把关联集合同步到存储(只删除移除的、插入新增的)
	SaveGenres(ctx context.Context, b *Book) error

	// Delete 删除图书及其类型关联,不存在返回ErrBookNotFound
	Delete(ctx context.Context, id uint) error

	// CountByAuthorID 某作者的图书数量
	CountByAuthorID(ctx context.Context, authorID uint) (int64, error)

	// CountByGenreID 关联某类型的图书数量(按图书去重)
	CountByGenreID(ctx context.Context, genreID uint) (int64, error)
}

// TxManager 事务管理
// fn内通过ctx传递事务,仓储方法使用该ctx即参与同一事务
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
