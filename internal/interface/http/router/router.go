// Package router 组装Gin引擎:中间件、运维端点和业务路由
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// NewRouter 创建并配置Gin引擎
func NewRouter(
	cfg *config.Config,
	bookHandler *handler.BookHandler,
	authorHandler *handler.AuthorHandler,
	genreHandler *handler.GenreHandler,
) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(middleware.Logger())
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// 访问 /swagger/index.html 查看API文档
	if cfg.Server.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	{
		books := v1.Group("/books")
		{
			books.GET("", bookHandler.ListBooks)
			books.GET("/search", bookHandler.SearchBooks)
			books.GET("/by-author/:authorId", bookHandler.BooksByAuthor)
			books.GET("/by-genre/:genreId", bookHandler.BooksByGenre)
			books.GET("/:id", bookHandler.GetBook)
			books.GET("/:id/details", bookHandler.GetBookDetails)
			books.POST("", bookHandler.CreateBook)
			books.PUT("/:id", bookHandler.UpdateBook)
			books.DELETE("/:id", bookHandler.DeleteBook)
		}

		authors := v1.Group("/authors")
		{
			authors.GET("", authorHandler.ListAuthors)
			authors.GET("/:id", authorHandler.GetAuthor)
			authors.GET("/:id/details", authorHandler.GetAuthorDetails)
			authors.POST("", authorHandler.CreateAuthor)
			authors.PUT("/:id", authorHandler.UpdateAuthor)
			authors.DELETE("/:id", authorHandler.DeleteAuthor)
		}

		genres := v1.Group("/genres")
		{
			genres.GET("", genreHandler.ListGenres)
			genres.GET("/:id", genreHandler.GetGenre)
			genres.GET("/:id/details", genreHandler.GetGenreDetails)
			genres.POST("", genreHandler.CreateGenre)
			genres.PUT("/:id", genreHandler.UpdateGenre)
			genres.DELETE("/:id", genreHandler.DeleteGenre)
		}
	}

	return r
}
