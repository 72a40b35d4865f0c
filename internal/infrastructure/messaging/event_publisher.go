// Package messaging 把目录事件投递到消息队列
package messaging

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/application/event"
)

// RoutingKeyPrefix routing key前缀,完整形如 catalog.book.created
const RoutingKeyPrefix = "catalog."

// broker 底层消息发布,由*mq.Publisher实现
type broker interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// EventPublisher 目录事件发布到RabbitMQ
type EventPublisher struct {
	broker broker
}

var _ event.Publisher = (*EventPublisher)(nil)

// NewEventPublisher 创建事件发布者
func NewEventPublisher(b broker) *EventPublisher {
	return &EventPublisher{broker: b}
}

// Publish 按事件类型生成routing key并发布
func (p *EventPublisher) Publish(ctx context.Context, e event.Event) error {
	return p.broker.Publish(ctx, RoutingKey(e.Type), e)
}

// RoutingKey 事件类型对应的routing key
func RoutingKey(t event.Type) string {
	return RoutingKeyPrefix + string(t)
}
