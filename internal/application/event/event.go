// Package event 目录变更事件
// 写操作提交成功后发布,下游(搜索索引、推荐等)按routing key订阅
package event

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// Type 事件类型,同时作为routing key的后缀
type Type string

const (
	BookCreated   Type = "book.created"
	BookUpdated   Type = "book.updated"
	BookDeleted   Type = "book.deleted"
	AuthorCreated Type = "author.created"
	AuthorUpdated Type = "author.updated"
	AuthorDeleted Type = "author.deleted"
	GenreCreated  Type = "genre.created"
	GenreUpdated  Type = "genre.updated"
	GenreDeleted  Type = "genre.deleted"
)

// Event 变更事件,只带ID,消费方需要详情时回查
type Event struct {
	Type       Type      `json:"type"`
	EntityID   uint      `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
	TraceID    string    `json:"trace_id,omitempty"`
}

// New 创建事件,带上当前链路的trace id
func New(ctx context.Context, t Type, id uint) Event {
	return Event{
		Type:       t,
		EntityID:   id,
		OccurredAt: time.Now().UTC(),
		TraceID:    tracing.ExtractTraceID(ctx),
	}
}

// Publisher 事件发布
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Emit 发布事件,失败只记日志,不影响已经提交的写操作
func Emit(ctx context.Context, p Publisher, t Type, id uint) {
	e := New(ctx, t, id)
	if err := p.Publish(ctx, e); err != nil {
		zap.L().Warn("发布目录事件失败",
			zap.String("type", string(t)),
			zap.Uint("entity_id", id),
			zap.Error(err),
		)
	}
}

// NoopPublisher 未开启事件时使用
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
