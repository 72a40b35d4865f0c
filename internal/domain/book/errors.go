package book

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 图书领域错误定义
// 设计说明:
// 1. 引用的作者/类型不存在属于请求错误(400),与"图书本身不存在"(404)区分
// 2. 带ID的错误用工厂函数创建,errors.Is按错误码与下面的基准错误匹配
var (
	ErrBookNotFound     = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")
	ErrBookNotPersisted = apperrors.New(apperrors.ErrCodeInvalidState, "图书尚未保存，不能关联类型")

	ErrAuthorReference = apperrors.New(apperrors.ErrCodeAuthorReference, "作者不存在")
	ErrGenreReference  = apperrors.New(apperrors.ErrCodeGenreReference, "类型不存在")
)

// AuthorNotFound 引用的作者不存在
func AuthorNotFound(id uint) error {
	return apperrors.Newf(apperrors.ErrCodeAuthorReference, "作者不存在(id=%d)", id)
}

// GenreNotFound 引用的类型不存在
func GenreNotFound(id uint) error {
	return apperrors.Newf(apperrors.ErrCodeGenreReference, "类型不存在(id=%d)", id)
}
