package author

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// memRepo 内存版作者仓储
type memRepo struct {
	nextID  uint
	authors map[uint]*Author
}

func newMemRepo() *memRepo {
	return &memRepo{authors: map[uint]*Author{}}
}

func (r *memRepo) Create(_ context.Context, a *Author) error {
	r.nextID++
	a.ID = r.nextID
	cp := *a
	r.authors[a.ID] = &cp
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id uint) (*Author, error) {
	a, ok := r.authors[id]
	if !ok {
		return nil, ErrAuthorNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memRepo) Update(_ context.Context, a *Author) error {
	cp := *a
	r.authors[a.ID] = &cp
	return nil
}

func (r *memRepo) Delete(_ context.Context, id uint) error {
	delete(r.authors, id)
	return nil
}

// fixedCounter 固定返回某作者的图书数量
type fixedCounter map[uint]int64

func (c fixedCounter) CountByAuthorID(_ context.Context, id uint) (int64, error) {
	return c[id], nil
}

func TestService_CreateAuthor(t *testing.T) {
	ctx := context.Background()

	t.Run("创建成功返回ID", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewService(repo, fixedCounter{})

		born := time.Date(1965, 7, 31, 0, 0, 0, 0, time.UTC)
		id, err := svc.CreateAuthor(ctx, CreateCommand{Name: "J.K. Rowling", BirthDate: &born})

		require.NoError(t, err)
		assert.Equal(t, uint(1), id)
		assert.Equal(t, "J.K. Rowling", repo.authors[id].Name)
	})

	t.Run("名称为空时校验失败", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewService(repo, fixedCounter{})

		_, err := svc.CreateAuthor(ctx, CreateCommand{Name: ""})

		assert.True(t, errors.Is(err, apperrors.ErrValidation))
		assert.Empty(t, repo.authors)
	})
}

func TestService_UpdateAuthor(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := NewService(repo, fixedCounter{})
	id, err := svc.CreateAuthor(ctx, CreateCommand{Name: "Machado"})
	require.NoError(t, err)

	t.Run("存在则更新", func(t *testing.T) {
		ok, err := svc.UpdateAuthor(ctx, UpdateCommand{ID: id, Name: "Machado de Assis", Biography: "Escritor"})

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Machado de Assis", repo.authors[id].Name)
	})

	t.Run("不存在返回false而不是错误", func(t *testing.T) {
		ok, err := svc.UpdateAuthor(ctx, UpdateCommand{ID: 99, Name: "Ninguém"})

		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestService_DeleteAuthor(t *testing.T) {
	ctx := context.Background()

	t.Run("存在关联图书时拒绝并带上数量", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewService(repo, fixedCounter{1: 2})
		id, _ := svc.CreateAuthor(ctx, CreateCommand{Name: "George R.R. Martin"})

		ok, err := svc.DeleteAuthor(ctx, id)

		assert.False(t, ok)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrAuthorHasBooks))
		assert.Contains(t, err.Error(), "2本图书")
		assert.Contains(t, repo.authors, id)
	})

	t.Run("没有关联图书则删除", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewService(repo, fixedCounter{})
		id, _ := svc.CreateAuthor(ctx, CreateCommand{Name: "Clarice Lispector"})

		ok, err := svc.DeleteAuthor(ctx, id)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.NotContains(t, repo.authors, id)
	})

	t.Run("不存在返回false", func(t *testing.T) {
		svc := NewService(newMemRepo(), fixedCounter{})

		ok, err := svc.DeleteAuthor(ctx, 42)

		require.NoError(t, err)
		assert.False(t, ok)
	})
}
