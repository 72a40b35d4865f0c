package genre

import "context"

// Repository 类型仓储接口
type Repository interface {
	Create(ctx context.Context, g *Genre) error
	FindByID(ctx context.Context, id uint) (*Genre, error) // 未找到返回ErrGenreNotFound
	Update(ctx context.Context, g *Genre) error
	Delete(ctx context.Context, id uint) error
}

// BookCounter 通过关联表统计某类型下的图书数量(去重)
type BookCounter interface {
	CountByGenreID(ctx context.Context, genreID uint) (int64, error)
}
