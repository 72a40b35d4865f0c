package mysql

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Seed 写入初始类型和作者
// 表非空时跳过,重复启动不会产生重复数据
func Seed(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var genres int64
		if err := tx.Model(&GenreModel{}).Count(&genres).Error; err != nil {
			return err
		}
		if genres == 0 {
			rows := seedGenres()
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
			zap.L().Info("写入初始类型", zap.Int("count", len(rows)))
		}

		var authors int64
		if err := tx.Model(&AuthorModel{}).Count(&authors).Error; err != nil {
			return err
		}
		if authors == 0 {
			rows := seedAuthors()
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
			zap.L().Info("写入初始作者", zap.Int("count", len(rows)))
		}
		return nil
	})
}

func seedGenres() []GenreModel {
	return []GenreModel{
		{Name: "Romance", Description: "Histórias de amor e relacionamentos"},
		{Name: "Ficção Científica", Description: "Ciência, tecnologia e futuros possíveis"},
		{Name: "Fantasia", Description: "Mundos imaginários e magia"},
		{Name: "Biografia", Description: "A vida de pessoas reais"},
		{Name: "História", Description: "Fatos e períodos históricos"},
	}
}

func seedAuthors() []AuthorModel {
	return []AuthorModel{
		{Name: "J.K. Rowling", Biography: "Autora britânica da série Harry Potter", BirthDate: date(1965, time.July, 31)},
		{Name: "George R.R. Martin", Biography: "Autor americano de As Crônicas de Gelo e Fogo", BirthDate: date(1948, time.September, 20)},
		{Name: "Agatha Christie", Biography: "Escritora britânica de romances policiais", BirthDate: date(1890, time.September, 15)},
		{Name: "Machado de Assis", Biography: "Escritor brasileiro, fundador da Academia Brasileira de Letras", BirthDate: date(1839, time.June, 21)},
		{Name: "Clarice Lispector", Biography: "Escritora brasileira nascida na Ucrânia", BirthDate: date(1920, time.December, 10)},
	}
}

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
