package book

import (
	"context"
	"errors"

	"github.com/samber/lo"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/genre"
	"github.com/xiebiao/bookcatalog/pkg/validator"
)

// CreateCommand 创建图书命令
type CreateCommand struct {
	Title    string `json:"title" validate:"required,max=200"`
	Year     int    `json:"year" validate:"gte=1000,maxyear"`
	AuthorID uint   `json:"author_id" validate:"required"`
	GenreIDs []uint `json:"genre_ids" validate:"min=1,dive,required"`
}

// UpdateCommand 更新图书命令(类型集合整体替换)
type UpdateCommand struct {
	ID       uint   `json:"id" validate:"required"`
	Title    string `json:"title" validate:"required,max=200"`
	Year     int    `json:"year" validate:"gte=1000,maxyear"`
	AuthorID uint   `json:"author_id" validate:"required"`
	GenreIDs []uint `json:"genre_ids" validate:"min=1,dive,required"`
}

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务负责跨聚合的引用校验(作者、类型必须存在)
// 2. 写操作统一放进事务,任何一步失败都不会留下半成品
type Service interface {
	// CreateBook 创建图书
	// 业务规则:
	// - 至少关联一个类型
	// - 作者必须存在
	// - 每个类型必须存在(去重后按请求顺序检查,报告第一个不存在的ID)
	CreateBook(ctx context.Context, cmd CreateCommand) (uint, error)

	// UpdateBook 更新图书并替换类型集合,图书不存在返回false
	UpdateBook(ctx context.Context, cmd UpdateCommand) (bool, error)

	// DeleteBook 删除图书,不存在返回false
	DeleteBook(ctx context.Context, id uint) (bool, error)
}

type service struct {
	repo    Repository
	authors author.Repository
	genres  genre.Repository
	tx      TxManager
}

// NewService 创建图书领域服务
func NewService(repo Repository, authors author.Repository, genres genre.Repository, tx TxManager) Service {
	return &service{
		repo:    repo,
		authors: authors,
		genres:  genres,
		tx:      tx,
	}
}

// CreateBook 创建图书
func (s *service) CreateBook(ctx context.Context, cmd CreateCommand) (uint, error) {
	// 1. 参数校验
	if err := validator.Struct(cmd); err != nil {
		return 0, err
	}

	// 2. 引用校验
	if err := s.checkAuthor(ctx, cmd.AuthorID); err != nil {
		return 0, err
	}
	genreIDs := lo.Uniq(cmd.GenreIDs)
	if err := s.checkGenres(ctx, genreIDs); err != nil {
		return 0, err
	}

	// 3. 先插入获得ID,再关联类型;两步在同一事务内
	b := NewBook(cmd.Title, cmd.Year, cmd.AuthorID)
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, b); err != nil {
			return err
		}
		for _, id := range genreIDs {
			if err := b.AddGenre(id); err != nil {
				return err
			}
		}
		return s.repo.SaveGenres(ctx, b)
	})
	if err != nil {
		return 0, err
	}

	return b.ID, nil
}

// UpdateBook 更新图书
func (s *service) UpdateBook(ctx context.Context, cmd UpdateCommand) (bool, error) {
	if err := validator.Struct(cmd); err != nil {
		return false, err
	}

	b, err := s.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := s.checkAuthor(ctx, cmd.AuthorID); err != nil {
		return false, err
	}
	genreIDs := lo.Uniq(cmd.GenreIDs)
	if err := s.checkGenres(ctx, genreIDs); err != nil {
		return false, err
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := b.ReplaceGenres(genreIDs); err != nil {
			return err
		}
		b.UpdateInfo(cmd.Title, cmd.Year, cmd.AuthorID)

		if err := s.repo.SaveGenres(ctx, b); err != nil {
			return err
		}
		return s.repo.Update(ctx, b)
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

// DeleteBook 删除图书
// 没有其他实体引用图书,无需检查依赖
func (s *service) DeleteBook(ctx context.Context, id uint) (bool, error) {
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
	if errors.Is(err, ErrBookNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// =========================================
// 辅助函数:引用校验
// =========================================

func (s *service) checkAuthor(ctx context.Context, authorID uint) error {
	if _, err := s.authors.FindByID(ctx, authorID); err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			return AuthorNotFound(authorID)
		}
		return err
	}
	return nil
}

func (s *service) checkGenres(ctx context.Context, genreIDs []uint) error {
	for _, id := range genreIDs {
		if _, err := s.genres.FindByID(ctx, id); err != nil {
			if errors.Is(err, genre.ErrGenreNotFound) {
				return GenreNotFound(id)
			}
			return err
		}
	}
	return nil
}
