package genre

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

var (
	ErrGenreNotFound = apperrors.New(apperrors.ErrCodeGenreNotFound, "类型不存在")
	ErrGenreHasBooks = apperrors.New(apperrors.ErrCodeHasDependents, "类型存在关联图书，无法删除")
)

// HasBooksError 删除被拒绝,消息中带上关联图书数量
func HasBooksError(count int64) error {
	return apperrors.Newf(apperrors.ErrCodeHasDependents, "类型下存在%d本图书，无法删除", count)
}
