package query

import "context"

// DetailCache 图书详情缓存
// 实现方出错时返回error,由调用方决定降级(读缓存失败就查库,写失败只记日志)
type DetailCache interface {
	Get(ctx context.Context, id uint) (*BookDTO, bool, error)
	Set(ctx context.Context, dto *BookDTO) error
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) error
}

// NoopCache 关闭缓存时使用,永远未命中
type NoopCache struct{}

func (NoopCache) Get(context.Context, uint) (*BookDTO, bool, error) { return nil, false, nil }
func (NoopCache) Set(context.Context, *BookDTO) error               { return nil }
func (NoopCache) Delete(context.Context, uint) error                { return nil }
func (NoopCache) DeleteAll(context.Context) error                   { return nil }
