package author

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

var (
	// ErrAuthorNotFound 作者不存在
	ErrAuthorNotFound = apperrors.New(apperrors.ErrCodeAuthorNotFound, "作者不存在")

	// ErrAuthorHasBooks 作者仍有关联图书
	ErrAuthorHasBooks = apperrors.New(apperrors.ErrCodeHasDependents, "作者存在关联图书，无法删除")
)

// HasBooksError 删除被拒绝,消息中带上关联图书数量
func HasBooksError(count int64) error {
	return apperrors.Newf(apperrors.ErrCodeHasDependents, "作者下存在%d本图书，无法删除", count)
}
