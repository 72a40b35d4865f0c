package handler

import (
	"github.com/gin-gonic/gin"

	appauthor "github.com/xiebiao/bookcatalog/internal/application/author"
	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// AuthorHandler 作者HTTP处理器
type AuthorHandler struct {
	manage *appauthor.ManageAuthorUseCase
	query  *appauthor.QueryAuthorsUseCase
}

// NewAuthorHandler 创建作者处理器
func NewAuthorHandler(manage *appauthor.ManageAuthorUseCase, query *appauthor.QueryAuthorsUseCase) *AuthorHandler {
	return &AuthorHandler{manage: manage, query: query}
}

// ListAuthors 作者列表
// @Summary      作者列表
// @Tags         作者
// @Produce      json
// @Param        pageNumber query int false "页码" default(1)
// @Param        pageSize   query int false "每页数量(最大50)" default(10)
// @Success      200 {object} response.Response{data=query.PagedResult[query.AuthorDTO]}
// @Router       /api/v1/authors [get]
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
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

// GetAuthor 单个作者
// @Summary      查询作者
// @Tags         作者
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response{data=query.AuthorDTO}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id} [get]
func (h *AuthorHandler) GetAuthor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.query.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !found(c, result != nil, author.ErrAuthorNotFound) {
		return
	}
	response.Success(c, result)
}

// GetAuthorDetails 作者详情
// @Summary      作者详情
// @Description  作者信息及其全部作品(每本带类型)
// @Tags         作者
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response{data=query.AuthorDetailDTO}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id}/details [get]
func (h *AuthorHandler) GetAuthorDetails(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.query.Detail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !found(c, result != nil, author.ErrAuthorNotFound) {
		return
	}
	response.Success(c, result)
}

// CreateAuthor 创建作者
// @Summary      创建作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Param        request body dto.AuthorRequest true "作者信息"
// @Success      201 {object} response.Response{data=dto.CreatedResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/authors [post]
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var req dto.AuthorRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.manage.Create(c.Request.Context(), author.CreateCommand{
		Name:      req.Name,
		Biography: req.Biography,
		BirthDate: req.BirthDate.TimePtr(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.CreatedResponse{ID: id})
}

// UpdateAuthor 更新作者
// @Summary      更新作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Param        id      path int               true "作者ID"
// @Param        request body dto.AuthorRequest true "作者信息"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id} [put]
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AuthorRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.manage.Update(c.Request.Context(), author.UpdateCommand{
		ID:        id,
		Name:      req.Name,
		Biography: req.Biography,
		BirthDate: req.BirthDate.TimePtr(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	if !found(c, updated, author.ErrAuthorNotFound) {
		return
	}
	response.Success(c, nil)
}

// DeleteAuthor 删除作者
// @Summary      删除作者
// @Description  作者仍有图书时返回409,消息中带图书数量
// @Tags         作者
// @Param        id path int true "作者ID"
// @Success      204
// @Failure      404 {object} response.Response "作者不存在"
// @Failure      409 {object} response.Response "存在关联图书"
// @Router       /api/v1/authors/{id} [delete]
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.manage.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !found(c, deleted, author.ErrAuthorNotFound) {
		return
	}
	response.NoContent(c)
}
