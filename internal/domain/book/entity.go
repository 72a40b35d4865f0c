package book

import (
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book只通过AuthorID引用作者,不持有作者对象
// 2. 图书与类型是多对多关系,关联集合Genres归属于图书聚合
// 3. 关联集合只能通过AddGenre/RemoveGenre/ClearGenres修改
type Book struct {
	ID        uint
	Title     string
	Year      int  // 出版年份
	AuthorID  uint // 作者ID(必填)
	Genres    []BookGenre
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookGenre 图书-类型关联
type BookGenre struct {
	BookID  uint
	GenreID uint
}

// NewBook 创建新图书(工厂方法)
// 注意:新图书尚未持久化(ID=0),此时不能关联类型
func NewBook(title string, year int, authorID uint) *Book {
	now := time.Now()
	return &Book{
		Title:     title,
		Year:      year,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsPersisted 是否已分配ID
func (b *Book) IsPersisted() bool {
	return b.ID > 0
}

// UpdateInfo 更新图书基本信息
func (b *Book) UpdateInfo(title string, year int, authorID uint) {
	b.Title = title
	b.Year = year
	b.AuthorID = authorID
	b.UpdatedAt = time.Now()
}

// AddGenre 关联类型
// 业务规则:
// - 图书必须已持久化,否则返回ErrBookNotPersisted
// - 已关联的类型再次添加时静默忽略(集合语义)
func (b *Book) AddGenre(genreID uint) error {
	if !b.IsPersisted() {
		return ErrBookNotPersisted
	}
	if b.HasGenre(genreID) {
		return nil
	}
	b.Genres = append(b.Genres, BookGenre{BookID: b.ID, GenreID: genreID})
	return nil
}

// RemoveGenre 移除第一个匹配的关联,不存在时什么也不做
func (b *Book) RemoveGenre(genreID uint) {
	for i, g := range b.Genres {
		if g.GenreID == genreID {
			b.Genres = append(b.Genres[:i], b.Genres[i+1:]...)
			return
		}
	}
}

// ClearGenres 清空关联集合
func (b *Book) ClearGenres() {
	b.Genres = nil
}

// ReplaceGenres 用新的类型集合替换现有关联(先清空再逐个添加)
func (b *Book) ReplaceGenres(genreIDs []uint) error {
	if !b.IsPersisted() {
		return ErrBookNotPersisted
	}
	b.ClearGenres()
	for _, id := range genreIDs {
		if err := b.AddGenre(id); err != nil {
			return err
		}
	}
	return nil
}

// HasGenre 是否已关联某类型
func (b *Book) HasGenre(genreID uint) bool {
	for _, g := range b.Genres {
		if g.GenreID == genreID {
			return true
		}
	}
	return false
}

// GenreIDs 按添加顺序返回关联的类型ID
func (b *Book) GenreIDs() []uint {
	ids := make([]uint, 0, len(b.Genres))
	for _, g := range b.Genres {
		ids = append(ids, g.GenreID)
	}
	return ids
}
