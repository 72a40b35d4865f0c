package author

import (
	"time"
)

// Author 作者实体
// 设计说明:
// 1. 作者不持有图书集合,"作者的图书"由读模型按author_id联表得到
// 2. BirthDate可空(部分作者生日未知)
type Author struct {
	ID        uint
	Name      string
	Biography string
	BirthDate *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAuthor 创建作者(工厂方法)
func NewAuthor(name, biography string, birthDate *time.Time) *Author {
	now := time.Now()
	return &Author{
		Name:      name,
		Biography: biography,
		BirthDate: birthDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateInfo 整体替换作者信息
func (a *Author) UpdateInfo(name, biography string, birthDate *time.Time) {
	a.Name = name
	a.Biography = biography
	a.BirthDate = birthDate
	a.UpdatedAt = time.Now()
}
