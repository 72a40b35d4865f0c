package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xiebiao/bookcatalog/internal/application/query"
)

// 这里的结构体只负责JSON形状,字段规则统一由领域层的validator校验,
// HTTP层不重复声明binding规则

// AuthorRequest 创建/更新作者
type AuthorRequest struct {
	Name      string `json:"name" example:"Clarice Lispector"`
	Biography string `json:"biography" example:"Escritora brasileira"`
	BirthDate *Date  `json:"birth_date" swaggertype:"string" example:"1920-12-10"`
}

// GenreRequest 创建/更新类型
type GenreRequest struct {
	Name        string `json:"name" example:"Romance"`
	Description string `json:"description" example:"Histórias de amor"`
}

// BookRequest 创建/更新图书(更新时整体替换类型集合)
type BookRequest struct {
	Title    string `json:"title" example:"A Hora da Estrela"`
	Year     int    `json:"year" example:"1977"`
	AuthorID uint   `json:"author_id" example:"5"`
	GenreIDs []uint `json:"genre_ids" example:"1,2"`
}

// CreatedResponse 创建成功返回新ID
type CreatedResponse struct {
	ID uint `json:"id" example:"1"`
}

// PageQuery 分页查询参数,缺省第1页每页10条
// 超出范围的值由查询引擎归一化
type PageQuery struct {
	PageNumber int `form:"pageNumber,default=1" example:"1"`
	PageSize   int `form:"pageSize,default=10" example:"10"`
}

// Pagination 转成查询引擎的分页参数
func (q PageQuery) Pagination() query.Pagination {
	return query.NewPagination(q.PageNumber, q.PageSize)
}

// SearchQuery 搜索参数
type SearchQuery struct {
	PageQuery
	Term string `form:"term" example:"dune"`
}

// Date 日期,接受 "2006-01-02" 或 RFC3339
type Date struct {
	time.Time
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// UnmarshalJSON 解析日期字符串,null保持为空
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("日期必须是字符串: %w", err)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("无法解析日期 %q,格式应为YYYY-MM-DD", s)
}

// MarshalJSON 输出YYYY-MM-DD
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format("2006-01-02"))
}

// TimePtr 转成领域层使用的*time.Time
func (d *Date) TimePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
