package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

func TestStatusOf(t *testing.T) {
	cases := map[int]int{
		0:                                 http.StatusOK,
		apperrors.ErrCodeBookNotFound:     http.StatusNotFound,
		apperrors.ErrCodeAuthorReference:  http.StatusBadRequest,
		apperrors.ErrCodeGenreReference:   http.StatusBadRequest,
		apperrors.ErrCodeHasDependents:    http.StatusConflict,
		apperrors.ErrCodeInvalidState:     http.StatusConflict,
		apperrors.ErrCodeValidation:       http.StatusBadRequest,
		apperrors.ErrCodeBindError:        http.StatusBadRequest,
		apperrors.ErrCodeDatabaseError:    http.StatusInternalServerError,
		apperrors.ErrCodeInternal:         http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, StatusOf(code), "code=%d", code)
	}
}

func TestError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("校验错误携带字段列表", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/books", nil)

		Error(c, apperrors.Validation([]apperrors.FieldError{{Field: "title", Message: "不能为空"}}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, apperrors.ErrCodeValidation, body.Code)
		require.Len(t, body.Fields, 1)
		assert.Equal(t, "title", body.Fields[0].Field)
	})

	t.Run("未知错误返回500且不暴露内部信息", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)

		Error(c, assert.AnError)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), assert.AnError.Error())
	})
}
