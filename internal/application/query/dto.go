package query

import "time"

// AuthorDTO 作者
type AuthorDTO struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Biography string     `json:"biography,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
}

// GenreDTO 类型
type GenreDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// BookDTO 图书(带作者和类型摘要)
// 在作者详情中Author为空(作者就是外层对象)
type BookDTO struct {
	ID     uint       `json:"id"`
	Title  string     `json:"title"`
	Year   int        `json:"year"`
	Author *AuthorDTO `json:"author,omitempty"`
	Genres []GenreDTO `json:"genres"`
}

// AuthorDetailDTO 作者详情:作者信息 + 作品列表
type AuthorDetailDTO struct {
	AuthorDTO
	Books []BookDTO `json:"books"`
}

// GenreDetailDTO 类型详情:类型信息 + 该类型下的图书
type GenreDetailDTO struct {
	GenreDTO
	Books []BookDTO `json:"books"`
}
