package fastconfig

import (
	"reflect"
	"strings"
)

// DefaultSeparator 是 key 的默认分隔符。
const DefaultSeparator = "."

// DefaultKind 区分字段的默认值来源，每个字段恰好属于其中一种。
type DefaultKind uint8

const (
	NoDefault      DefaultKind = iota // 必填，文档中缺失时 Build 报错
	LiteralDefault                    // 固定的默认值
	FactoryDefault                    // 每次 Build 调用工厂函数生成
)

// Field 是 schema 中单个字段的元数据。
type Field struct {
	Name         string   // Go 字段名
	Type         *Type    // 期望的值形状
	Key          string   // 原始 key，按 Separator 拆分得到 Path；显式设置 KeyPath 时为空
	Path         []string // 生效的 key 路径
	Separator    string
	DefaultKind  DefaultKind
	DefaultValue any
	DefaultFunc  func() any
	Choices      []any
	Validator    func(any) error // 返回非 nil 表示值非法

	split  bool // Key 是否按 Separator 拆分
	index  []int
	goType reflect.Type
}

// HasDefault 报告字段是否声明了默认值（固定值或工厂）。
func (f *Field) HasDefault() bool { return f.DefaultKind != NoDefault }

// keyPath 计算生效的 key 路径。
//
// 显式设置的 Key 按分隔符拆分；未设置时使用字段 key 本身作为唯一一段，不做拆分。
func keyPath(key, separator string, split bool) []string {
	if !split {
		return []string{key}
	}
	if separator == "" {
		separator = DefaultSeparator
	}

	return strings.Split(key, separator)
}

// FieldOption 配置单个字段的元数据。
type FieldOption func(*Field)

// Key 设置字段在文档中的 key，按分隔符拆分为路径（默认 "."）。
//
// 示例：
//
//	fastconfig.WithField("Port", fastconfig.Key("server.port"))
func Key(key string) FieldOption {
	return func(f *Field) {
		f.Key = key
		f.Path = nil
		f.split = true
	}
}

// KeyPath 直接设置路径各段，不做拆分，适合 key 本身含有分隔符的场景。
func KeyPath(segments ...string) FieldOption {
	return func(f *Field) {
		f.Key = ""
		f.Path = append([]string(nil), segments...)
		f.split = false
	}
}

// Separator 设置 [Key] 的分隔符。
func Separator(sep string) FieldOption {
	return func(f *Field) {
		f.Separator = sep
	}
}

// Default 设置固定的默认值，必须可以赋值给字段。
func Default(value any) FieldOption {
	return func(f *Field) {
		f.DefaultKind = LiteralDefault
		f.DefaultValue = value
		f.DefaultFunc = nil
	}
}

// DefaultFunc 设置默认值工厂，每次 Build 都会重新调用。
func DefaultFunc(fn func() any) FieldOption {
	return func(f *Field) {
		f.DefaultKind = FactoryDefault
		f.DefaultValue = nil
		f.DefaultFunc = fn
	}
}

// Required 清除字段的默认值，文档缺失该字段时 Build 返回 [ErrMissingRequiredElement]。
func Required() FieldOption {
	return func(f *Field) {
		f.DefaultKind = NoDefault
		f.DefaultValue = nil
		f.DefaultFunc = nil
	}
}

// Choices 限定字段的取值范围，在类型校验之后检查。
func Choices(values ...any) FieldOption {
	return func(f *Field) {
		f.Choices = values
	}
}

// Validate 设置自定义校验，fn 返回非 nil error 表示值非法。
//
// 标量字段的值会先转换为字段的 Go 类型（指针字段为其元素类型），
// 例如 int 字段总是收到 int，而不论文档中是 int64 还是 int；容器字段收到校验后的原值。
func Validate(fn func(any) error) FieldOption {
	return func(f *Field) {
		f.Validator = fn
	}
}

// As 显式指定类型描述，覆盖根据 Go 类型推导的结果。
//
// Union 等无法用 Go 类型表达的形状需要通过 As 声明，对应字段通常为 any。
func As(t *Type) FieldOption {
	return func(f *Field) {
		f.Type = t
	}
}
