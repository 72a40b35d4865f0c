package mysql

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/genre"
)

// newTestDB 每个测试一个独立的内存SQLite库
// 单连接:事务内外都走同一个连接,避免内存库跨连接不可见
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))
	return db
}

// fixture 组装好的仓储和领域服务
type fixture struct {
	db      *gorm.DB
	books   *BookRepository
	authors author.Repository
	genres  genre.Repository
	tx      *TxManager

	bookSvc   book.Service
	authorSvc author.Service
	genreSvc  genre.Service
}

func newFixture(t *testing.T) *fixture {
	db := newTestDB(t)
	f := &fixture{
		db:      db,
		books:   NewBookRepository(db),
		authors: NewAuthorRepository(db),
		genres:  NewGenreRepository(db),
		tx:      NewTxManager(db),
	}
	f.bookSvc = book.NewService(f.books, f.authors, f.genres, f.tx)
	f.authorSvc = author.NewService(f.authors, f.books)
	f.genreSvc = genre.NewService(f.genres, f.books)
	return f
}

func (f *fixture) author(t *testing.T, name string) uint {
	t.Helper()
	id, err := f.authorSvc.CreateAuthor(context.Background(), author.CreateCommand{Name: name})
	require.NoError(t, err)
	return id
}

func (f *fixture) genre(t *testing.T, name string) uint {
	t.Helper()
	id, err := f.genreSvc.CreateGenre(context.Background(), genre.CreateCommand{Name: name})
	require.NoError(t, err)
	return id
}

func (f *fixture) book(t *testing.T, title string, year int, authorID uint, genreIDs ...uint) uint {
	t.Helper()
	id, err := f.bookSvc.CreateBook(context.Background(), book.CreateCommand{
		Title:    title,
		Year:     year,
		AuthorID: authorID,
		GenreIDs: genreIDs,
	})
	require.NoError(t, err)
	return id
}
