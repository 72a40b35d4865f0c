package mysql

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/application/query"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

func bookIDs(items []query.BookDTO) []uint {
	return lo.Map(items, func(b query.BookDTO, _ int) uint { return b.ID })
}

func TestReadStore_Paging(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	engine := query.NewEngine(NewReadStore(f.db))

	a := f.author(t, "Autor")
	g := f.genre(t, "Romance")
	b1 := f.book(t, "b1", 2001, a, g)
	b2 := f.book(t, "b2", 2002, a, g)
	b3 := f.book(t, "b3", 2003, a, g)

	t.Run("三本书每页两本", func(t *testing.T) {
		page1, err := engine.ListBooks(ctx, query.NewPagination(1, 2))
		require.NoError(t, err)
		assert.Equal(t, []uint{b1, b2}, bookIDs(page1.Items))
		assert.Equal(t, int64(3), page1.TotalCount)
		assert.Equal(t, 2, page1.TotalPages)

		page2, err := engine.ListBooks(ctx, query.NewPagination(2, 2))
		require.NoError(t, err)
		assert.Equal(t, []uint{b3}, bookIDs(page2.Items))
	})

	t.Run("页大小超过上限按50处理", func(t *testing.T) {
		page, err := engine.ListBooks(ctx, query.NewPagination(1, 1000))
		require.NoError(t, err)
		assert.Equal(t, 50, page.PageSize)
		assert.Len(t, page.Items, 3)
	})

	t.Run("页码小于1按第1页处理", func(t *testing.T) {
		page, err := engine.ListBooks(ctx, query.NewPagination(0, 2))
		require.NoError(t, err)
		assert.Equal(t, 1, page.PageNumber)
		assert.Equal(t, []uint{b1, b2}, bookIDs(page.Items))
	})

	t.Run("超出总页数的超大页码返回空页", func(t *testing.T) {
		page, err := engine.ListBooks(ctx, query.NewPagination(368934881474191034, 50))
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, int64(3), page.TotalCount)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("每行带上作者和类型", func(t *testing.T) {
		page, err := engine.ListBooks(ctx, query.NewPagination(1, 1))
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Autor", page.Items[0].Author.Name)
		require.Len(t, page.Items[0].Genres, 1)
		assert.Equal(t, "Romance", page.Items[0].Genres[0].Name)
	})
}

func TestReadStore_Filters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	engine := query.NewEngine(NewReadStore(f.db))

	marquez := f.author(t, "Gabriel García Márquez")
	herbert := f.author(t, "Frank Herbert")
	magico := f.genre(t, "Realismo Mágico")
	romance := f.genre(t, "Romance")
	scifi := f.genre(t, "Ficção Científica")

	cem := f.book(t, "Cem Anos de Solidão", 1967, marquez, magico, romance)
	amor := f.book(t, "O Amor nos Tempos do Cólera", 1985, marquez, romance)
	dune := f.book(t, "Dune", 1965, herbert, scifi)

	t.Run("按作者", func(t *testing.T) {
		page, err := engine.BooksByAuthor(ctx, marquez, query.NewPagination(1, 10))
		require.NoError(t, err)
		assert.Equal(t, []uint{cem, amor}, bookIDs(page.Items))
		assert.Equal(t, int64(2), page.TotalCount)
	})

	t.Run("按类型", func(t *testing.T) {
		page, err := engine.BooksByGenre(ctx, romance, query.NewPagination(1, 10))
		require.NoError(t, err)
		assert.Equal(t, []uint{cem, amor}, bookIDs(page.Items))
	})

	t.Run("搜索命中多个类型时按图书去重", func(t *testing.T) {
		// "Cem Anos" 同时有两个类型,联表会产生两行
		page, err := engine.SearchBooks(ctx, "o", query.NewPagination(1, 10))
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.TotalCount)
		assert.Equal(t, []uint{cem, amor, dune}, bookIDs(page.Items))
	})

	t.Run("按类型名搜索,不区分大小写", func(t *testing.T) {
		page, err := engine.SearchBooks(ctx, "REALISMO mágico", query.NewPagination(1, 10))
		require.NoError(t, err)
		assert.Equal(t, []uint{cem}, bookIDs(page.Items))
	})

	t.Run("搜索词的非ASCII大写在Go里转小写", func(t *testing.T) {
		// 列这一侧靠数据库LOWER;SQLite只折叠ASCII,列里的非ASCII大写要MySQL的排序规则才能匹配
		page, err := engine.SearchBooks(ctx, "REALISMO MÁGICO", query.NewPagination(1, 10))
		require.NoError(t, err)
		assert.Equal(t, []uint{cem}, bookIDs(page.Items))
	})

	t.Run("按作者名搜索", func(t *testing.T) {
		page, err := engine.SearchBooks(ctx, "HERBERT", query.NewPagination(1, 10))
		require.NoError(t, err)
		assert.Equal(t, []uint{dune}, bookIDs(page.Items))
	})

	t.Run("没有匹配", func(t *testing.T) {
		page, err := engine.SearchBooks(ctx, "tolkien", query.NewPagination(1, 10))
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Zero(t, page.TotalPages)
	})
}

func TestReadStore_Details(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	engine := query.NewEngine(NewReadStore(f.db))

	herbert := f.author(t, "Frank Herbert")
	scifi := f.genre(t, "Ficção Científica")
	aventura := f.genre(t, "Aventura")
	vazio := f.genre(t, "Vazio")
	dune := f.book(t, "Dune", 1965, herbert, scifi, aventura)

	t.Run("图书详情归并所有类型", func(t *testing.T) {
		d, err := engine.BookDetail(ctx, dune)
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, "Dune", d.Title)
		assert.Equal(t, 1965, d.Year)
		assert.Equal(t, "Frank Herbert", d.Author.Name)
		assert.Equal(t, []uint{scifi, aventura}, lo.Map(d.Genres, func(g query.GenreDTO, _ int) uint { return g.ID }))
	})

	t.Run("没有类型的图书不出现空类型", func(t *testing.T) {
		bare := book.NewBook("Sem Gênero", 2000, herbert)
		require.NoError(t, f.books.Create(ctx, bare))

		d, err := engine.BookDetail(ctx, bare.ID)
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Empty(t, d.Genres)
	})

	t.Run("不存在返回nil", func(t *testing.T) {
		d, err := engine.BookDetail(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, d)

		b, err := engine.BookByID(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, b)
	})

	t.Run("作者详情", func(t *testing.T) {
		d, err := engine.AuthorDetail(ctx, herbert)
		require.NoError(t, err)
		require.NotNil(t, d)
		require.GreaterOrEqual(t, len(d.Books), 1)
		assert.Equal(t, dune, d.Books[0].ID)
		assert.Len(t, d.Books[0].Genres, 2)
	})

	t.Run("类型详情", func(t *testing.T) {
		d, err := engine.GenreDetail(ctx, aventura)
		require.NoError(t, err)
		require.Len(t, d.Books, 1)
		assert.Equal(t, "Frank Herbert", d.Books[0].Author.Name)
	})

	t.Run("没有图书的类型详情", func(t *testing.T) {
		d, err := engine.GenreDetail(ctx, vazio)
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Empty(t, d.Books)
	})

	t.Run("作者与类型分页", func(t *testing.T) {
		authors, err := engine.ListAuthors(ctx, query.NewPagination(1, 10))
		require.NoError(t, err)
		assert.Equal(t, int64(1), authors.TotalCount)

		genres, err := engine.ListGenres(ctx, query.NewPagination(2, 2))
		require.NoError(t, err)
		assert.Equal(t, int64(3), genres.TotalCount)
		require.Len(t, genres.Items, 1)
		assert.Equal(t, "Vazio", genres.Items[0].Name)
	})
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	require.NoError(t, Seed(ctx, db))
	require.NoError(t, Seed(ctx, db), "重复执行不报错")

	var genres, authors int64
	require.NoError(t, db.Model(&GenreModel{}).Count(&genres).Error)
	require.NoError(t, db.Model(&AuthorModel{}).Count(&authors).Error)
	assert.Equal(t, int64(5), genres)
	assert.Equal(t, int64(5), authors)
}
