package errors

import (
	"errors"
	"fmt"
)

// FieldError 单个字段的校验失败信息
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型（不要直接暴露HTTP状态码）
// 2. Message是用户友好的提示信息
// 3. Fields仅在校验失败时携带，列出所有不合法的字段
// 4. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code    int          `json:"code"`             // 业务错误码
	Message string       `json:"message"`          // 用户友好的错误提示
	Fields  []FieldError `json:"fields,omitempty"` // 字段级错误
	Err     error        `json:"-"`                // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较
// 带参数的错误（如"作者不存在(id=7)"）每次都是新实例，
// 用错误码比较后 errors.Is(err, ErrXxx) 依然成立
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf 格式化创建AppError
func Newf(code int, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// Validation 创建字段校验错误，一次返回全部字段问题
func Validation(fields []FieldError) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: "参数校验失败",
		Fields:  fields,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误

	// 资源错误（40400-40499）：请求的主资源不存在
	ErrCodeNotFound       = 40400 // 资源不存在(通用)
	ErrCodeBookNotFound   = 40401 // 图书不存在
	ErrCodeAuthorNotFound = 40402 // 作者不存在
	ErrCodeGenreNotFound  = 40403 // 类型不存在

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError   = 40000 // 业务错误(通用)
	ErrCodeAuthorReference = 40001 // 引用的作者不存在
	ErrCodeGenreReference  = 40002 // 引用的类型不存在
	ErrCodeHasDependents   = 40003 // 存在关联图书，禁止删除
	ErrCodeInvalidState    = 40004 // 聚合状态不允许此操作
	ErrCodeDuplicateEntry  = 40009 // 重复记录(通用)

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
	ErrCodeValidation    = 40902 // 字段校验失败
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")
	ErrRedisError    = New(ErrCodeRedisError, "缓存服务错误")

	// 通用业务错误
	ErrNotFound      = New(ErrCodeNotFound, "资源不存在")
	ErrHasDependents = New(ErrCodeHasDependents, "存在关联记录，无法删除")
	ErrInvalidState  = New(ErrCodeInvalidState, "当前状态不允许此操作")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")
	ErrValidation    = New(ErrCodeValidation, "参数校验失败")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// CodeOf 返回错误码，非AppError视为内部错误
func CodeOf(err error) int {
	if err == nil {
		return 0
	}
	return GetAppError(err).Code
}

// IsNotFound 主资源不存在（404xx）
func IsNotFound(err error) bool {
	code := CodeOf(err)
	return code >= 40400 && code < 40500
}
