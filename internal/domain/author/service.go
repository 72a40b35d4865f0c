package author

import (
	"context"
	"errors"
	"time"

	"github.com/xiebiao/bookcatalog/pkg/validator"
)

// CreateCommand 创建作者命令
type CreateCommand struct {
	Name      string     `json:"name" validate:"required,max=100"`
	Biography string     `json:"biography" validate:"max=1000"`
	BirthDate *time.Time `json:"birth_date" validate:"omitempty,notfuture"`
}

// UpdateCommand 更新作者命令
type UpdateCommand struct {
	ID        uint       `json:"id" validate:"required"`
	Name      string     `json:"name" validate:"required,max=100"`
	Biography string     `json:"biography" validate:"max=1000"`
	BirthDate *time.Time `json:"birth_date" validate:"omitempty,notfuture"`
}

// Service 作者领域服务接口
// 约定:Update/Delete 的 bool 返回值表示目标是否存在,不存在不算错误
type Service interface {
	CreateAuthor(ctx context.Context, cmd CreateCommand) (uint, error)
	UpdateAuthor(ctx context.Context, cmd UpdateCommand) (bool, error)

	// DeleteAuthor 删除作者
	// 业务规则:仍被图书引用时拒绝删除,错误消息带上引用数量
	DeleteAuthor(ctx context.Context, id uint) (bool, error)
}

type service struct {
	repo  Repository
	books BookCounter
}

// NewService 创建作者领域服务
func NewService(repo Repository, books BookCounter) Service {
	return &service{repo: repo, books: books}
}

// CreateAuthor 创建作者
func (s *service) CreateAuthor(ctx context.Context, cmd CreateCommand) (uint, error) {
	if err := validator.Struct(cmd); err != nil {
		return 0, err
	}

	a := NewAuthor(cmd.Name, cmd.Biography, cmd.BirthDate)
	if err := s.repo.Create(ctx, a); err != nil {
		return 0, err
	}
	return a.ID, nil
}

// UpdateAuthor 更新作者
func (s *service) UpdateAuthor(ctx context.Context, cmd UpdateCommand) (bool, error) {
	if err := validator.Struct(cmd); err != nil {
		return false, err
	}

	a, err := s.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		if errors.Is(err, ErrAuthorNotFound) {
			return false, nil
		}
		return false, err
	}

	a.UpdateInfo(cmd.Name, cmd.Biography, cmd.BirthDate)
	if err := s.repo.Update(ctx, a); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteAuthor 删除作者
// 顺序:先统计引用数量(不存在的作者数量必然为0),再判断是否存在
func (s *service) DeleteAuthor(ctx context.Context, id uint) (bool, error) {
	count, err := s.books.CountByAuthorID(ctx, id)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, HasBooksError(count)
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, ErrAuthorNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}
