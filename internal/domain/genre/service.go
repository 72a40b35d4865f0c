package genre

import (
	"context"
	"errors"

	"github.com/xiebiao/bookcatalog/pkg/validator"
)

// CreateCommand 创建类型命令
type CreateCommand struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// UpdateCommand 更新类型命令
type UpdateCommand struct {
	ID          uint   `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// Service 类型领域服务
type Service interface {
	CreateGenre(ctx context.Context, cmd CreateCommand) (uint, error)
	UpdateGenre(ctx context.Context, cmd UpdateCommand) (bool, error)
	DeleteGenre(ctx context.Context, id uint) (bool, error)
}

type service struct {
	repo  Repository
	books BookCounter
}

// NewService 创建类型领域服务
func NewService(repo Repository, books BookCounter) Service {
	return &service{repo: repo, books: books}
}

func (s *service) CreateGenre(ctx context.Context, cmd CreateCommand) (uint, error) {
	if err := validator.Struct(cmd); err != nil {
		return 0, err
	}

	g := NewGenre(cmd.Name, cmd.Description)
	if err := s.repo.Create(ctx, g); err != nil {
		return 0, err
	}
	return g.ID, nil
}

func (s *service) UpdateGenre(ctx context.Context, cmd UpdateCommand) (bool, error) {
	if err := validator.Struct(cmd); err != nil {
		return false, err
	}

	g, err := s.repo.FindByID(ctx, cmd.ID)
	if errors.Is(err, ErrGenreNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	g.UpdateInfo(cmd.Name, cmd.Description)
	if err := s.repo.Update(ctx, g); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteGenre 删除类型
// 业务规则:关联表中仍有图书引用该类型时拒绝删除
func (s *service) DeleteGenre(ctx context.Context, id uint) (bool, error) {
	count, err := s.books.CountByGenreID(ctx, id)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, HasBooksError(count)
	}

	_, err = s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrGenreNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}
