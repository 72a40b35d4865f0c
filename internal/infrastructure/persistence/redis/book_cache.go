package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"

	"github.com/xiebiao/bookcatalog/internal/application/query"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

const (
	bookDetailPrefix = "catalog:book:detail:"
	scanBatch        = 100
)

// BookDetailCache 图书详情缓存
// 设计说明:
// 1. Key设计:catalog:book:detail:{book_id},值为JSON
// 2. 只缓存存在的图书,不缓存"不存在"
// 3. 作者/类型变更会影响多本书的详情,用DeleteAll整体失效
type BookDetailCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookDetailCache 创建图书详情缓存
func NewBookDetailCache(client *redis.Client, ttl time.Duration) *BookDetailCache {
	return &BookDetailCache{client: client, ttl: ttl}
}

func bookDetailKey(id uint) string {
	return fmt.Sprintf("%s%d", bookDetailPrefix, id)
}

// Get 读取缓存,未命中返回(nil, false, nil)
func (c *BookDetailCache) Get(ctx context.Context, id uint) (*query.BookDTO, bool, error) {
	data, err := c.client.Get(ctx, bookDetailKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperrors.Wrap(err, "读取图书缓存失败")
	}

	var dto query.BookDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		// 格式不对当作未命中,顺手删掉
		_ = c.client.Del(ctx, bookDetailKey(id)).Err()
		return nil, false, nil
	}
	return &dto, true, nil
}

// Set 写入缓存
func (c *BookDetailCache) Set(ctx context.Context, dto *query.BookDTO) error {
	data, err := json.Marshal(dto)
	if err != nil {
		return apperrors.Wrap(err, "序列化图书详情失败")
	}
	if err := c.client.Set(ctx, bookDetailKey(dto.ID), data, c.ttl).Err(); err != nil {
		return apperrors.Wrap(err, "写入图书缓存失败")
	}
	return nil
}

// Delete 删除单本图书的缓存
func (c *BookDetailCache) Delete(ctx context.Context, id uint) error {
	if err := c.client.Del(ctx, bookDetailKey(id)).Err(); err != nil {
		return apperrors.Wrap(err, "删除图书缓存失败")
	}
	return nil
}

// DeleteAll 删除全部图书详情缓存
// 用SCAN分批遍历,不用KEYS阻塞Redis
// 先扫完再删:边扫边删会让游标跳过一部分key
func (c *BookDetailCache) DeleteAll(ctx context.Context) error {
	var keys []string
	iter := c.client.Scan(ctx, 0, bookDetailPrefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return apperrors.Wrap(err, "遍历图书缓存失败")
	}

	for _, batch := range lo.Chunk(lo.Uniq(keys), scanBatch) {
		if err := c.client.Unlink(ctx, batch...).Err(); err != nil {
			return apperrors.Wrap(err, "清空图书缓存失败")
		}
	}
	return nil
}
