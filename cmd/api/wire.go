//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 修改后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appauthor "github.com/xiebiao/bookcatalog/internal/application/author"
	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	appgenre "github.com/xiebiao/bookcatalog/internal/application/genre"
	"github.com/xiebiao/bookcatalog/internal/application/query"
	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/genre"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/router"
)

// infrastructureSet 数据库连接、详情缓存和事件发布
var infrastructureSet = wire.NewSet(
	provideDB,
	provideDetailCache,
	provideEventPublisher,
)

// repositorySet 仓储层,BookRepository同时充当作者/类型的图书计数器
var repositorySet = wire.NewSet(
	mysql.NewBookRepository,
	mysql.NewAuthorRepository,
	mysql.NewGenreRepository,
	mysql.NewTxManager,
	mysql.NewReadStore,
	wire.Bind(new(book.Repository), new(*mysql.BookRepository)),
	wire.Bind(new(author.BookCounter), new(*mysql.BookRepository)),
	wire.Bind(new(genre.BookCounter), new(*mysql.BookRepository)),
	wire.Bind(new(book.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(query.ReadStore), new(*mysql.ReadStore)),
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	book.NewService,
	author.NewService,
	genre.NewService,
)

// applicationSet 用例和查询引擎
var applicationSet = wire.NewSet(
	query.NewEngine,
	appbook.NewManageBookUseCase,
	appbook.NewQueryBooksUseCase,
	appauthor.NewManageAuthorUseCase,
	appauthor.NewQueryAuthorsUseCase,
	appgenre.NewManageGenreUseCase,
	appgenre.NewQueryGenresUseCase,
)

// handlerSet HTTP处理器和路由
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewAuthorHandler,
	handler.NewGenreHandler,
	router.NewRouter,
)

// InitializeApp 组装整个应用
// cleanup按创建的逆序关闭RabbitMQ、Redis和数据库连接
func InitializeApp(ctx context.Context, cfg *config.Config) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
	)
	return nil, nil, nil
}
