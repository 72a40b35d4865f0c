package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPublisher struct {
	events []Event
	err    error
}

func (p *stubPublisher) Publish(_ context.Context, e Event) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func TestEmit(t *testing.T) {
	ctx := context.Background()

	t.Run("发布带ID和时间的事件", func(t *testing.T) {
		p := &stubPublisher{}
		before := time.Now().UTC()
		Emit(ctx, p, BookCreated, 42)

		require.Len(t, p.events, 1)
		assert.Equal(t, BookCreated, p.events[0].Type)
		assert.Equal(t, uint(42), p.events[0].EntityID)
		assert.False(t, p.events[0].OccurredAt.Before(before))
		assert.Empty(t, p.events[0].TraceID)
	})

	t.Run("发布失败不panic也不返回错误", func(t *testing.T) {
		p := &stubPublisher{err: errors.New("broker down")}
		assert.NotPanics(t, func() { Emit(ctx, p, GenreDeleted, 1) })
		assert.Empty(t, p.events)
	})

	t.Run("未开启事件时丢弃", func(t *testing.T) {
		assert.NoError(t, NoopPublisher{}.Publish(ctx, New(ctx, BookDeleted, 1)))
	})
}
