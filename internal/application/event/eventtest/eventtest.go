// Package eventtest 测试用的事件发布器
package eventtest

import (
	"context"
	"sync"

	"github.com/xiebiao/bookcatalog/internal/application/event"
)

// Recorder 按顺序记录发布过的事件
// Err 非空时每次发布都返回该错误,不记录
type Recorder struct {
	mu     sync.Mutex
	events []event.Event
	Err    error
}

func (r *Recorder) Publish(_ context.Context, e event.Event) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

// Types 按发布顺序返回事件类型
func (r *Recorder) Types() []event.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Type, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

// Events 已发布事件的副本
func (r *Recorder) Events() []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event.Event(nil), r.events...)
}
