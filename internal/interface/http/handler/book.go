package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// BookHandler 图书HTTP处理器
// 设计说明:
// 1. Handler只负责HTTP相关的事情:解析请求、调用应用层、返回响应
// 2. 字段校验在领域层完成,这里只做JSON/路径参数的格式解析
type BookHandler struct {
	manage *appbook.ManageBookUseCase
	query  *appbook.QueryBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(manage *appbook.ManageBookUseCase, query *appbook.QueryBooksUseCase) *BookHandler {
	return &BookHandler{manage: manage, query: query}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  按id升序分页,每本书带作者和类型摘要
// @Tags         图书
// @Produce      json
// @Param        pageNumber query int false "页码" default(1)
// @Param        pageSize   query int false "每页数量(最大50)" default(10)
// @Success      200 {object} response.Response{data=query.PagedResult[query.BookDTO]}
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var q dto.PageQuery
	if !bindQuery(c, &q) {
		return
	}

	result, err := h.query.List(c.Request.Context(), q.Pagination())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SearchBooks 搜索图书
// @Summary      搜索图书
// @Description  书名、作者名、类型名包含搜索词(不区分大小写)
// @Tags         图书
// @Produce      json
// @Param        term       query string false "搜索词"
// @Param        pageNumber query int    false "页码" default(1)
// @Param        pageSize   query int    false "每页数量(最大50)" default(10)
// @Success      200 {object} response.Response{data=query.PagedResult[query.BookDTO]}
// @Router       /api/v1/books/search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	var q dto.SearchQuery
	if !bindQuery(c, &q) {
		return
	}

	result, err := h.query.Search(c.Request.Context(), q.Term, q.Pagination())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// BooksByAuthor 某作者的图书
// @Summary      按作者查询图书
// @Tags         图书
// @Produce      json
// @Param        authorId   path  int true  "作者ID"
// @Param        pageNumber query int false "页码" default(1)
// @Param        pageSize   query int false "每页数量(最大50)" default(10)
// @Success      200 {object} response.Response{data=query.PagedResult[query.BookDTO]}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/books/by-author/{authorId} [get]
func (h *BookHandler) BooksByAuthor(c *gin.Context) {
	authorID, ok := parseID(c, "authorId")
	if !ok {
		return
	}
	var q dto.PageQuery
	if !bindQuery(c, &q) {
		return
	}

	result, err := h.query.ByAuthor(c.Request.Context(), authorID, q.Pagination())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// BooksByGenre 某类型的图书
// @Summary      按类型查询图书
// @Tags         图书
// @Produce      json
// @Param        genreId    path  int true  "类型ID"
// @Param        pageNumber query int false "页码" default(1)
// @Param        pageSize   query int false "每页数量(最大50)" default(10)
// @Success      200 {object} response.Response{data=query.PagedResult[query.BookDTO]}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/books/by-genre/{genreId} [get]
func (h *BookHandler) BooksByGenre(c *gin.Context) {
	genreID, ok := parseID(c, "genreId")
	if !ok {
		return
	}
	var q dto.PageQuery
	if !bindQuery(c, &q) {
		return
	}

	result, err := h.query.ByGenre(c.Request.Context(), genreID, q.Pagination())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetBook 单本图书
// @Summary      查询图书
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=query.BookDTO}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.query.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !found(c, result != nil, book.ErrBookNotFound) {
		return
	}
	response.Success(c, result)
}

// GetBookDetails 图书详情
// @Summary      图书详情
// @Description  单次联表查询,结果会缓存
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=query.BookDTO}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id}/details [get]
func (h *BookHandler) GetBookDetails(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.query.Detail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !found(c, result != nil, book.ErrBookNotFound) {
		return
	}
	response.Success(c, result)
}

// CreateBook 创建图书
// @Summary      创建图书
// @Description  作者和每个类型都必须存在,至少一个类型,重复的类型ID只关联一次
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.BookRequest true "图书信息"
// @Success      201 {object} response.Response{data=dto.CreatedResponse}
// @Failure      400 {object} response.Response "参数错误或引用不存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.BookRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.manage.Create(c.Request.Context(), book.CreateCommand{
		Title:    req.Title,
		Year:     req.Year,
		AuthorID: req.AuthorID,
		GenreIDs: req.GenreIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.CreatedResponse{ID: id})
}

// UpdateBook 更新图书
// @Summary      更新图书
// @Description  整体替换书名、年份、作者和类型集合
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        id      path int             true "图书ID"
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "参数错误或引用不存在"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.BookRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.manage.Update(c.Request.Context(), book.UpdateCommand{
		ID:       id,
		Title:    req.Title,
		Year:     req.Year,
		AuthorID: req.AuthorID,
		GenreIDs: req.GenreIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	if !found(c, updated, book.ErrBookNotFound) {
		return
	}
	response.Success(c, nil)
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书
// @Param        id path int true "图书ID"
// @Success      204
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.manage.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !found(c, deleted, book.ErrBookNotFound) {
		return
	}
	response.NoContent(c)
}
