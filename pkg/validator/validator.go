// Package validator 命令校验管道
//
// 所有写命令在进入业务逻辑之前统一经过 Struct 校验，
// 校验规则写在命令结构体的 validate tag 上，字段名取 json tag。
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// instance 懒加载全局校验器（validator.Validate 内部有缓存，应复用）
func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// 错误里的字段名使用json名称，与HTTP请求保持一致
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		// 自定义规则
		_ = v.RegisterValidation("notfuture", notFuture)
		_ = v.RegisterValidation("maxyear", maxYear)

		validate = v
	})
	return validate
}

// Struct 校验命令结构体
// 返回nil表示通过；否则返回包含全部字段错误的ValidationError
func Struct(s interface{}) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError：传入了非结构体，属于编程错误
		return apperrors.Wrap(err, "参数校验异常")
	}

	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperrors.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return apperrors.Validation(fields)
}

// notFuture 时间不能晚于当前时间（用于出生日期）
func notFuture(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !t.After(time.Now())
}

// maxYear 年份不能晚于当前年份（用于出版年份）
func maxYear(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fl.Field().Int() <= int64(time.Now().Year())
	default:
		return false
	}
}

// message 把校验tag翻译成中文提示
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "不能为空"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("长度不能超过%s个字符", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("最多%s项", fe.Param())
		}
		return fmt.Sprintf("不能大于%s", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("至少需要%s项", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("长度不能少于%s个字符", fe.Param())
		}
		return fmt.Sprintf("不能小于%s", fe.Param())
	case "gte":
		return fmt.Sprintf("不能小于%s", fe.Param())
	case "lte":
		return fmt.Sprintf("不能大于%s", fe.Param())
	case "notfuture":
		return "不能晚于当前时间"
	case "maxyear":
		return "不能晚于当前年份"
	default:
		return "格式不正确"
	}
}
