package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	appauthor "github.com/xiebiao/bookcatalog/internal/application/author"
	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/application/event"
	"github.com/xiebiao/bookcatalog/internal/application/event/eventtest"
	appgenre "github.com/xiebiao/bookcatalog/internal/application/genre"
	"github.com/xiebiao/bookcatalog/internal/application/query"
	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/genre"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// envelope 响应信封,Data延迟解析
type envelope struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Data    json.RawMessage        `json:"data"`
	Fields  []apperrors.FieldError `json:"fields"`
}

type api struct {
	t      *testing.T
	r      *gin.Engine
	events *eventtest.Recorder
}

// newAPI 在内存SQLite上组装完整的路由,缓存关闭
func newAPI(t *testing.T) *api {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, mysql.Migrate(db))

	books := mysql.NewBookRepository(db)
	authors := mysql.NewAuthorRepository(db)
	genres := mysql.NewGenreRepository(db)
	engine := query.NewEngine(mysql.NewReadStore(db))
	cache := query.NoopCache{}
	events := &eventtest.Recorder{}

	bookH := handler.NewBookHandler(
		appbook.NewManageBookUseCase(book.NewService(books, authors, genres, mysql.NewTxManager(db)), cache, events),
		appbook.NewQueryBooksUseCase(engine, cache),
	)
	authorH := handler.NewAuthorHandler(
		appauthor.NewManageAuthorUseCase(author.NewService(authors, books), cache, events),
		appauthor.NewQueryAuthorsUseCase(engine),
	)
	genreH := handler.NewGenreHandler(
		appgenre.NewManageGenreUseCase(genre.NewService(genres, books), cache, events),
		appgenre.NewQueryGenresUseCase(engine),
	)

	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: gin.TestMode},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	return &api{t: t, r: NewRouter(cfg, bookH, authorH, genreH), events: events}
}

func (a *api) do(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)

	var env envelope
	if w.Code != http.StatusNoContent && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

// create POST并返回新ID
func (a *api) create(path string, body interface{}) uint {
	a.t.Helper()
	w, env := a.do(http.MethodPost, path, body)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var out struct {
		ID uint `json:"id"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &out))
	require.NotZero(a.t, out.ID)
	return out.ID
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestRouter_Ops(t *testing.T) {
	a := newAPI(t)

	t.Run("健康检查", func(t *testing.T) {
		w, env := a.do(http.MethodGet, "/ping", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Zero(t, env.Code)
	})

	t.Run("请求ID沿用或生成", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(middleware.RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		a.r.ServeHTTP(w, req)
		assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))

		w, _ = a.do(http.MethodGet, "/ping", nil)
		assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)
	})

	t.Run("指标端点按路由模板聚合", func(t *testing.T) {
		a.do(http.MethodGet, "/api/v1/books/12345", nil)

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()
		a.r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `path="/api/v1/books/:id"`)
		assert.NotContains(t, w.Body.String(), `path="/api/v1/books/12345"`)
	})
}

func TestRouter_Books(t *testing.T) {
	a := newAPI(t)

	herbert := a.create("/api/v1/authors", map[string]interface{}{"name": "Frank Herbert", "birth_date": "1920-10-08"})
	scifi := a.create("/api/v1/genres", map[string]interface{}{"name": "Ficção Científica"})
	aventura := a.create("/api/v1/genres", map[string]interface{}{"name": "Aventura"})

	var dune uint
	t.Run("创建图书返回201和ID", func(t *testing.T) {
		dune = a.create("/api/v1/books", map[string]interface{}{
			"title": "Dune", "year": 1965, "author_id": herbert, "genre_ids": []uint{scifi, aventura, scifi},
		})
	})

	t.Run("详情与创建时的作者和类型一致", func(t *testing.T) {
		w, env := a.do(http.MethodGet, fmt.Sprintf("/api/v1/books/%d/details", dune), nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[query.BookDTO](t, env)
		assert.Equal(t, "Dune", got.Title)
		require.NotNil(t, got.Author)
		assert.Equal(t, herbert, got.Author.ID)
		ids := make([]uint, 0, len(got.Genres))
		for _, g := range got.Genres {
			ids = append(ids, g.ID)
		}
		assert.ElementsMatch(t, []uint{scifi, aventura}, ids)
	})

	t.Run("空类型列表返回400和字段错误", func(t *testing.T) {
		w, env := a.do(http.MethodPost, "/api/v1/books", map[string]interface{}{
			"title": "Sem Gênero", "year": 1990, "author_id": herbert, "genre_ids": []uint{},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeValidation, env.Code)
		require.NotEmpty(t, env.Fields)
		assert.Equal(t, "genre_ids", env.Fields[0].Field)
	})

	t.Run("作者不存在返回400且不落库", func(t *testing.T) {
		w, env := a.do(http.MethodPost, "/api/v1/books", map[string]interface{}{
			"title": "Órfão", "year": 1990, "author_id": 999, "genre_ids": []uint{scifi},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeAuthorReference, env.Code)

		_, list := a.do(http.MethodGet, "/api/v1/books", nil)
		assert.EqualValues(t, 1, decode[query.PagedResult[query.BookDTO]](t, list).TotalCount)
	})

	t.Run("类型不存在时消息带ID", func(t *testing.T) {
		w, env := a.do(http.MethodPost, "/api/v1/books", map[string]interface{}{
			"title": "Meio", "year": 1990, "author_id": herbert, "genre_ids": []uint{scifi, 777},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeGenreReference, env.Code)
		assert.Contains(t, env.Message, "777")
	})

	t.Run("JSON格式错误", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/books", strings.NewReader("{"))
		w := httptest.NewRecorder()
		a.r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("非法路径ID", func(t *testing.T) {
		w, env := a.do(http.MethodGet, "/api/v1/books/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, env.Code)
	})

	t.Run("分页默认值", func(t *testing.T) {
		w, env := a.do(http.MethodGet, "/api/v1/books", nil)
		require.Equal(t, http.StatusOK, w.Code)
		page := decode[query.PagedResult[query.BookDTO]](t, env)
		assert.Equal(t, 1, page.PageNumber)
		assert.Equal(t, 10, page.PageSize)
		assert.Len(t, page.Items, 1)
	})

	t.Run("分页参数被钳制", func(t *testing.T) {
		_, env := a.do(http.MethodGet, "/api/v1/books?pageNumber=0&pageSize=1000", nil)
		page := decode[query.PagedResult[query.BookDTO]](t, env)
		assert.Equal(t, 1, page.PageNumber)
		assert.Equal(t, 50, page.PageSize)
	})

	t.Run("搜索与按作者和类型筛选", func(t *testing.T) {
		_, env := a.do(http.MethodGet, "/api/v1/books/search?term=HERBERT", nil)
		assert.EqualValues(t, 1, decode[query.PagedResult[query.BookDTO]](t, env).TotalCount)

		_, env = a.do(http.MethodGet, fmt.Sprintf("/api/v1/books/by-author/%d", herbert), nil)
		assert.EqualValues(t, 1, decode[query.PagedResult[query.BookDTO]](t, env).TotalCount)

		_, env = a.do(http.MethodGet, fmt.Sprintf("/api/v1/books/by-genre/%d", aventura), nil)
		assert.EqualValues(t, 1, decode[query.PagedResult[query.BookDTO]](t, env).TotalCount)

		_, env = a.do(http.MethodGet, "/api/v1/books/by-genre/999", nil)
		assert.EqualValues(t, 0, decode[query.PagedResult[query.BookDTO]](t, env).TotalCount)
	})

	t.Run("更新替换类型集合", func(t *testing.T) {
		w, _ := a.do(http.MethodPut, fmt.Sprintf("/api/v1/books/%d", dune), map[string]interface{}{
			"title": "Dune Messiah", "year": 1969, "author_id": herbert, "genre_ids": []uint{aventura},
		})
		require.Equal(t, http.StatusOK, w.Code)

		_, env := a.do(http.MethodGet, fmt.Sprintf("/api/v1/books/%d", dune), nil)
		got := decode[query.BookDTO](t, env)
		assert.Equal(t, "Dune Messiah", got.Title)
		require.Len(t, got.Genres, 1)
		assert.Equal(t, aventura, got.Genres[0].ID)
	})

	t.Run("更新不存在的图书返回404", func(t *testing.T) {
		w, env := a.do(http.MethodPut, "/api/v1/books/999", map[string]interface{}{
			"title": "X", "year": 1990, "author_id": herbert, "genre_ids": []uint{scifi},
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, apperrors.ErrCodeBookNotFound, env.Code)
	})

	t.Run("删除图书返回204后查询404", func(t *testing.T) {
		w, _ := a.do(http.MethodDelete, fmt.Sprintf("/api/v1/books/%d", dune), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w, _ = a.do(http.MethodGet, fmt.Sprintf("/api/v1/books/%d/details", dune), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w, _ = a.do(http.MethodDelete, fmt.Sprintf("/api/v1/books/%d", dune), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("每次成功写操作发布一个事件", func(t *testing.T) {
		assert.Equal(t, []event.Type{
			event.AuthorCreated,
			event.GenreCreated,
			event.GenreCreated,
			event.BookCreated,
			event.BookUpdated,
			event.BookDeleted,
		}, a.events.Types())
	})
}

func TestRouter_AuthorsAndGenres(t *testing.T) {
	a := newAPI(t)

	clarice := a.create("/api/v1/authors", map[string]interface{}{"name": "Clarice Lispector", "birth_date": "1920-12-10"})
	romance := a.create("/api/v1/genres", map[string]interface{}{"name": "Romance"})
	vazio := a.create("/api/v1/genres", map[string]interface{}{"name": "Vazio"})
	a.create("/api/v1/books", map[string]interface{}{
		"title": "A Hora da Estrela", "year": 1977, "author_id": clarice, "genre_ids": []uint{romance},
	})

	t.Run("作者详情带作品和类型", func(t *testing.T) {
		w, env := a.do(http.MethodGet, fmt.Sprintf("/api/v1/authors/%d/details", clarice), nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[query.AuthorDetailDTO](t, env)
		assert.Equal(t, "Clarice Lispector", got.Name)
		require.NotNil(t, got.BirthDate)
		assert.Equal(t, 1920, got.BirthDate.Year())
		require.Len(t, got.Books, 1)
		require.Len(t, got.Books[0].Genres, 1)
		assert.Equal(t, "Romance", got.Books[0].Genres[0].Name)
	})

	t.Run("删除有图书的作者返回409和数量", func(t *testing.T) {
		w, env := a.do(http.MethodDelete, fmt.Sprintf("/api/v1/authors/%d", clarice), nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, apperrors.ErrCodeHasDependents, env.Code)
		assert.Contains(t, env.Message, "1")

		w, _ = a.do(http.MethodGet, fmt.Sprintf("/api/v1/authors/%d", clarice), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("删除有图书的类型返回409", func(t *testing.T) {
		w, _ := a.do(http.MethodDelete, fmt.Sprintf("/api/v1/genres/%d", romance), nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("空类型详情与删除", func(t *testing.T) {
		w, env := a.do(http.MethodGet, fmt.Sprintf("/api/v1/genres/%d/details", vazio), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decode[query.GenreDetailDTO](t, env).Books)

		w, _ = a.do(http.MethodDelete, fmt.Sprintf("/api/v1/genres/%d", vazio), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w, env = a.do(http.MethodGet, fmt.Sprintf("/api/v1/genres/%d", vazio), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, apperrors.ErrCodeGenreNotFound, env.Code)
	})

	t.Run("更新作者", func(t *testing.T) {
		w, _ := a.do(http.MethodPut, fmt.Sprintf("/api/v1/authors/%d", clarice), map[string]interface{}{
			"name": "Clarice Lispector", "biography": "Escritora", "birth_date": nil,
		})
		require.Equal(t, http.StatusOK, w.Code)

		_, env := a.do(http.MethodGet, fmt.Sprintf("/api/v1/authors/%d", clarice), nil)
		got := decode[query.AuthorDTO](t, env)
		assert.Equal(t, "Escritora", got.Biography)
		assert.Nil(t, got.BirthDate)
	})

	t.Run("出生日期在未来", func(t *testing.T) {
		w, env := a.do(http.MethodPost, "/api/v1/authors", map[string]interface{}{"name": "Futuro", "birth_date": "2999-01-01"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeValidation, env.Code)
	})

	t.Run("不存在的作者和类型", func(t *testing.T) {
		w, _ := a.do(http.MethodGet, "/api/v1/authors/999/details", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		w, _ = a.do(http.MethodDelete, "/api/v1/authors/999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		w, _ = a.do(http.MethodPut, "/api/v1/genres/999", map[string]interface{}{"name": "X"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("作者和类型列表", func(t *testing.T) {
		_, env := a.do(http.MethodGet, "/api/v1/authors?pageSize=1", nil)
		page := decode[query.PagedResult[query.AuthorDTO]](t, env)
		assert.EqualValues(t, 1, page.TotalCount)
		assert.Equal(t, 1, page.TotalPages)

		_, env = a.do(http.MethodGet, "/api/v1/genres", nil)
		assert.EqualValues(t, 1, decode[query.PagedResult[query.GenreDTO]](t, env).TotalCount)
	})
}
