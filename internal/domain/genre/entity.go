package genre

import "time"

// Genre 图书类型
type Genre struct {
	ID          uint
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewGenre 创建类型
func NewGenre(name, description string) *Genre {
	now := time.Now()
	return &Genre{
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdateInfo 更新名称和描述
func (g *Genre) UpdateInfo(name, description string) {
	g.Name = name
	g.Description = description
	g.UpdatedAt = time.Now()
}
