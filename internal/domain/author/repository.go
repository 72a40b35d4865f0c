package author

import "context"

// Repository 作者仓储接口
// FindByID 未找到时返回 ErrAuthorNotFound
type Repository interface {
	Create(ctx context.Context, a *Author) error
	FindByID(ctx context.Context, id uint) (*Author, error)
	Update(ctx context.Context, a *Author) error
	Delete(ctx context.Context, id uint) error
}

// BookCounter 统计引用某作者的图书数量(由图书仓储实现)
type BookCounter interface {
	CountByAuthorID(ctx context.Context, authorID uint) (int64, error)
}
