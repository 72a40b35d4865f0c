package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/genre"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

type genreRepository struct {
	db *gorm.DB
}

// NewGenreRepository 创建类型仓储
func NewGenreRepository(db *gorm.DB) genre.Repository {
	return &genreRepository{db: db}
}

func (r *genreRepository) Create(ctx context.Context, g *genre.Genre) error {
	model := &GenreModel{Name: g.Name, Description: g.Description}
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建类型失败")
	}
	g.ID = model.ID
	g.CreatedAt = model.CreatedAt
	g.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *genreRepository) FindByID(ctx context.Context, id uint) (*genre.Genre, error) {
	var model GenreModel
	if err := conn(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, genre.ErrGenreNotFound
		}
		return nil, apperrors.Wrap(err, "查询类型失败")
	}
	return &genre.Genre{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}, nil
}

func (r *genreRepository) Update(ctx context.Context, g *genre.Genre) error {
	result := conn(ctx, r.db).Model(&GenreModel{ID: g.ID}).Updates(map[string]interface{}{
		"name":        g.Name,
		"description": g.Description,
	})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新类型失败")
	}
	return nil
}

func (r *genreRepository) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Delete(&GenreModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除类型失败")
	}
	if result.RowsAffected == 0 {
		return genre.ErrGenreNotFound
	}
	return nil
}
