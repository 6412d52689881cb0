package fastconfig

import (
	"reflect"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// LocalDate 表示不带时区的日期，与 TOML 的 local date 相同。
type LocalDate = toml.LocalDate

// LocalTime 表示不带日期的时刻，与 TOML 的 local time 相同。
type LocalTime = toml.LocalTime

// Kind 是类型描述的种类。
type Kind uint8

const (
	KindInvalid  Kind = iota // 零值，不是合法的描述
	KindAny                  // 任意值
	KindNone                 // 只有 nil
	KindBool                 // 布尔值
	KindInt                  // 整数，不接受 bool
	KindFloat                // 浮点数，不接受整数
	KindString               // 字符串
	KindDate                 // 本地日期 LocalDate
	KindDateTime             // 完整时间 time.Time
	KindTime                 // 本地时间 LocalTime
	KindUnion                // 按顺序尝试的候选集合
	KindList                 // 元素类型相同的列表
	KindMap                  // key 为字符串的映射
)

var kindNames = map[Kind]string{
	KindAny:      "any",
	KindNone:     "none",
	KindBool:     "bool",
	KindInt:      "int",
	KindFloat:    "float",
	KindString:   "string",
	KindDate:     "date",
	KindDateTime: "datetime",
	KindTime:     "time",
}

// Type 描述字段期望的值形状，可以递归嵌套。
//
// 零值（或 nil）不是合法的描述，匹配时返回 [UnsupportedTypeError]。
type Type struct {
	kind Kind
	args []*Type
}

func primitive(k Kind) *Type { return &Type{kind: k} }

// Any 匹配任意值。
func Any() *Type { return primitive(KindAny) }

// None 只匹配 nil。
func None() *Type { return primitive(KindNone) }

// Bool 只匹配 bool。
func Bool() *Type { return primitive(KindBool) }

// Int 匹配任意整数类型，bool 不是整数。
func Int() *Type { return primitive(KindInt) }

// Float 只匹配 float32 / float64，整数不会被放宽为浮点数。
func Float() *Type { return primitive(KindFloat) }

// String 只匹配字符串。
func String() *Type { return primitive(KindString) }

// Date 匹配 [LocalDate]，time.Time 与 ISO 8601 字符串会收窄为日期。
func Date() *Type { return primitive(KindDate) }

// DateTime 匹配 time.Time 与 ISO 8601 字符串。
func DateTime() *Type { return primitive(KindDateTime) }

// Time 匹配 [LocalTime]，time.Time 会收窄为时刻，字符串不被接受。
func Time() *Type { return primitive(KindTime) }

// Union 按声明顺序尝试各个候选，首个成功者生效。
func Union(alts ...*Type) *Type { return &Type{kind: KindUnion, args: alts} }

// Optional 等价于 Union(t, None())。
func Optional(t *Type) *Type { return Union(t, None()) }

// ListOf 要求值为序列且每个元素匹配 elem。
func ListOf(elem *Type) *Type { return &Type{kind: KindList, args: []*Type{elem}} }

// MapOf 要求值为映射，key 与 value 分别匹配。
func MapOf(key, value *Type) *Type { return &Type{kind: KindMap, args: []*Type{key, value}} }

// Kind 返回描述的种类，nil 返回 KindInvalid。
func (t *Type) Kind() Kind {
	if t == nil {
		return KindInvalid
	}

	return t.kind
}

// Args 返回复合描述的参数（Union 的候选、List 的元素、Map 的 key/value）。
func (t *Type) Args() []*Type {
	if t == nil {
		return nil
	}

	return t.args
}

// optionalOf 在 t 形如 Union(x, None) 时返回 x。
func (t *Type) optionalOf() (*Type, bool) {
	if t.Kind() != KindUnion || len(t.args) != 2 || t.args[1].Kind() != KindNone {
		return nil, false
	}

	return t.args[0], true
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	if name, ok := kindNames[t.kind]; ok {
		return name
	}

	switch t.kind {
	case KindUnion:
		if inner, ok := t.optionalOf(); ok {
			return "optional[" + inner.String() + "]"
		}
		return "union[" + joinTypes(t.args) + "]"
	case KindList:
		return "list[" + joinTypes(t.args) + "]"
	case KindMap:
		return "map[" + joinTypes(t.args) + "]"
	}

	return "<invalid>"
}

func joinTypes(ts []*Type) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.String()
	}

	return strings.Join(names, ", ")
}

// validate 递归检查描述是否完整，在注册 schema 时调用。
func (t *Type) validate() error {
	switch t.Kind() {
	case KindInvalid:
		return &UnsupportedTypeError{Type: t.String()}
	case KindUnion:
		if len(t.args) == 0 {
			return &UnsupportedTypeError{Type: t.String()}
		}
	case KindList:
		if len(t.args) != 1 {
			return &UnsupportedTypeError{Type: t.String()}
		}
	case KindMap:
		if len(t.args) != 2 {
			return &UnsupportedTypeError{Type: t.String()}
		}
	}
	for _, arg := range t.args {
		if err := arg.validate(); err != nil {
			return err
		}
	}

	return nil
}

var (
	timeType      = reflect.TypeFor[time.Time]()
	dateType      = reflect.TypeFor[LocalDate]()
	timeOfDayType = reflect.TypeFor[LocalTime]()
)

// TypeOf 根据 Go 类型推导类型描述。
//
// 指针推导为 Optional，切片与数组推导为 ListOf，interface 推导为 Any。
// time.Time 推导为 DateTime，[LocalDate] 为 Date，[LocalTime] 为 Time。
// 函数、通道、复数以及普通结构体返回 [UnsupportedTypeError]。
func TypeOf(typ reflect.Type) (*Type, error) {
	switch typ {
	case timeType:
		return DateTime(), nil
	case dateType:
		return Date(), nil
	case timeOfDayType:
		return Time(), nil
	}

	switch typ.Kind() {
	case reflect.Bool:
		return Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int(), nil
	case reflect.Float32, reflect.Float64:
		return Float(), nil
	case reflect.String:
		return String(), nil
	case reflect.Interface:
		return Any(), nil
	case reflect.Pointer:
		inner, err := TypeOf(typ.Elem())
		if err != nil {
			return nil, err
		}
		return Optional(inner), nil
	case reflect.Slice, reflect.Array:
		elem, err := TypeOf(typ.Elem())
		if err != nil {
			return nil, err
		}
		return ListOf(elem), nil
	case reflect.Map:
		key, err := TypeOf(typ.Key())
		if err != nil {
			return nil, err
		}
		value, err := TypeOf(typ.Elem())
		if err != nil {
			return nil, err
		}
		return MapOf(key, value), nil
	default:
		return nil, &UnsupportedTypeError{Type: typ.String()}
	}
}
