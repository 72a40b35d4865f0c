package query

import "math"

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 50
	// MaxPageNumber 保证 (PageNumber-1)*PageSize 不溢出int
	MaxPageNumber = math.MaxInt / MaxPageSize
)

// Pagination 规范化后的分页参数
type Pagination struct {
	PageNumber int
	PageSize   int
}

// NewPagination 规范化分页参数
// - pageNumber < 1 按第1页处理,超过 MaxPageNumber 截断
// - pageSize 截断到 [1, MaxPageSize]
func NewPagination(pageNumber, pageSize int) Pagination {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageNumber > MaxPageNumber {
		pageNumber = MaxPageNumber
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Pagination{PageNumber: pageNumber, PageSize: pageSize}
}

// Offset 当前页之前需要跳过的行数
func (p Pagination) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

// PagedResult 分页结果
type PagedResult[T any] struct {
	Items      []T   `json:"items"`
	PageNumber int   `json:"page_number"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

// NewPagedResult 组装分页结果,TotalPages = ceil(total / pageSize)
func NewPagedResult[T any](items []T, total int64, p Pagination) *PagedResult[T] {
	if items == nil {
		items = []T{}
	}
	size := int64(p.PageSize)
	return &PagedResult[T]{
		Items:      items,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
		TotalCount: total,
		TotalPages: int((total + size - 1) / size),
	}
}
