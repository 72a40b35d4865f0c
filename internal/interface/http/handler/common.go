package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// parseID 解析路径参数中的正整数ID,失败时直接写400响应
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的"+name+": "+c.Param(name))
		return 0, false
	}
	return uint(id), true
}

// bindJSON 绑定请求体,失败时直接写400响应
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数格式错误: "+err.Error())
		return false
	}
	return true
}

// bindQuery 绑定查询参数
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "查询参数错误: "+err.Error())
		return false
	}
	return true
}

// found 写操作目标不存在时返回404
func found(c *gin.Context, ok bool, notFound *apperrors.AppError) bool {
	if !ok {
		response.Error(c, notFound)
	}
	return ok
}
