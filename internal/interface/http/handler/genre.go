package handler

import (
	"github.com/gin-gonic/gin"

	appgenre "github.com/xiebiao/bookcatalog/internal/application/genre"
	"github.com/xiebiao/bookcatalog/internal/domain/genre"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// GenreHandler 类型HTTP处理器
type GenreHandler struct {
	manage *appgenre.ManageGenreUseCase
	query  *appgenre.QueryGenresUseCase
}

// NewGenreHandler 创建类型处理器
func NewGenreHandler(manage *appgenre.ManageGenreUseCase, query *appgenre.QueryGenresUseCase) *GenreHandler {
	return &GenreHandler{manage: manage, query: query}
}

// ListGenres 类型列表
// @Summary      类型列表
// @Tags         类型
// @Produce      json
// @Param        pageNumber query int false "页码" default(1)
// @Param        pageSize   query int false "每页数量(最大50)" default(10)
// @Success      200 {object} response.Response{data=query.PagedResult[query.GenreDTO]}
// @Router       /api/v1/genres [get]
func (h *GenreHandler) ListGenres(c *gin.Context) {
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

// GetGenre 单个类型
// @Summary      查询类型
// @Tags         类型
// @Produce      json
// @Param        id path int true "类型ID"
// @Success      200 {object} response.Response{data=query.GenreDTO}
// @Failure      404 {object} response.Response "类型不存在"
// @Router       /api/v1/genres/{id} [get]
func (h *GenreHandler) GetGenre(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.query.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !found(c, result != nil, genre.ErrGenreNotFound) {
		return
	}
	response.Success(c, result)
}

// GetGenreDetails 类型详情
// @Summary      类型详情
// @Description  类型信息及该类型下的全部图书
// @Tags         类型
// @Produce      json
// @Param        id path int true "类型ID"
// @Success      200 {object} response.Response{data=query.GenreDetailDTO}
// @Failure      404 {object} response.Response "类型不存在"
// @Router       /api/v1/genres/{id}/details [get]
func (h *GenreHandler) GetGenreDetails(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.query.Detail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !found(c, result != nil, genre.ErrGenreNotFound) {
		return
	}
	response.Success(c, result)
}

// CreateGenre 创建类型
// @Summary      创建类型
// @Tags         类型
// @Accept       json
// @Produce      json
// @Param        request body dto.GenreRequest true "类型信息"
// @Success      201 {object} response.Response{data=dto.CreatedResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/genres [post]
func (h *GenreHandler) CreateGenre(c *gin.Context) {
	var req dto.GenreRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.manage.Create(c.Request.Context(), genre.CreateCommand{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.CreatedResponse{ID: id})
}

// UpdateGenre 更新类型
// @Summary      更新类型
// @Tags         类型
// @Accept       json
// @Produce      json
// @Param        id      path int              true "类型ID"
// @Param        request body dto.GenreRequest true "类型信息"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "类型不存在"
// @Router       /api/v1/genres/{id} [put]
func (h *GenreHandler) UpdateGenre(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.GenreRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.manage.Update(c.Request.Context(), genre.UpdateCommand{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	if !found(c, updated, genre.ErrGenreNotFound) {
		return
	}
	response.Success(c, nil)
}

// DeleteGenre 删除类型
// @Summary      删除类型
// @Description  类型仍有图书时返回409,消息中带图书数量
// @Tags         类型
// @Param        id path int true "类型ID"
// @Success      204
// @Failure      404 {object} response.Response "类型不存在"
// @Failure      409 {object} response.Response "存在关联图书"
// @Router       /api/v1/genres/{id} [delete]
func (h *GenreHandler) DeleteGenre(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.manage.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !found(c, deleted, genre.ErrGenreNotFound) {
		return
	}
	response.NoContent(c)
}
