package fastconfig

import (
	"errors"
	"fmt"
	"io/fs"
)

// 错误分类，均可通过 errors.Is 判断。
//
// 所有分类都包裹 [ErrConfig]，因此 errors.Is(err, ErrConfig) 可以识别全部配置错误。
var (
	ErrConfig                 = errors.New("fastconfig")
	ErrInvalidConfig          = fmt.Errorf("%w: invalid config", ErrConfig)
	ErrMissingRequiredElement = fmt.Errorf("%w: missing required element", ErrConfig)
	ErrUnexpectedValue        = fmt.Errorf("%w: unexpected value", ErrConfig)
	ErrUnsupportedType        = fmt.Errorf("%w: unsupported type", ErrConfig)
)

// Error 是带分类的配置错误。
//
// Error() 只返回 Msg，保持对外的错误文本稳定。
type Error struct {
	Kind error // 上面的分类之一
	Msg  string
	Err  error // 底层错误，可为空
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}

	return []error{e.Kind}
}

// TypeMismatchError 表示字段值与类型描述不匹配。
type TypeMismatchError struct {
	Field string
	Value any
	Type  *Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: %v is not valid type. must be of type %s", e.Field, e.Value, e.Type)
}

func (e *TypeMismatchError) Unwrap() error { return ErrUnexpectedValue }

// UnsupportedTypeError 表示 schema 声明了无法识别的类型，属于编程错误。
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%s is not supported", e.Type)
}

func (e *UnsupportedTypeError) Unwrap() error { return ErrUnsupportedType }

// NotFoundError 表示配置文件不存在，在解析之前返回。
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string { return e.Path + " is not found" }

func (e *NotFoundError) Unwrap() error { return fs.ErrNotExist }

func invalidConfig(msg string, cause error) error {
	return &Error{Kind: ErrInvalidConfig, Msg: msg, Err: cause}
}

func missingElement(name string) error {
	return &Error{Kind: ErrMissingRequiredElement, Msg: fmt.Sprintf("key: %s is not found", name)}
}

func unexpectedValue(msg string, cause error) error {
	return &Error{Kind: ErrUnexpectedValue, Msg: msg, Err: cause}
}
