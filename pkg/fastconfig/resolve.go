package fastconfig

import (
	"fmt"
	"math"
	"reflect"
)

// Document 是解析后的配置文档，key 为字符串的嵌套映射。
type Document = map[string]any

// Resolution 是字段解析的结果。
//
// UseDefault 为 true 表示文档中没有该字段，调用方应保留默认值或现有值；
// 否则 Value 为经过类型校验（可能已转换）的值，nil 也是合法的值。
type Resolution struct {
	Value      any
	UseDefault bool
}

// Resolve 从文档中解析单个字段。
//
// 处理顺序：
//  1. 沿 key 路径取值，中间节点不是映射或缺少该段视为缺失
//  2. 缺失时，requireDefault 为 true 且字段没有默认值则返回 [ErrMissingRequiredElement]，否则返回 UseDefault
//  3. 类型校验，失败返回 [TypeMismatchError]；数值超出字段 Go 类型的范围返回 [ErrUnexpectedValue]
//  4. 检查 Choices，再执行 Validator，失败返回 [ErrUnexpectedValue]
func Resolve(f *Field, doc Document, requireDefault bool) (Resolution, error) {
	value, found := Lookup(doc, f.Path)
	if !found {
		if requireDefault && !f.HasDefault() {
			return Resolution{}, missingElement(f.Name)
		}
		return Resolution{UseDefault: true}, nil
	}

	coerced, err := Check(f.Name, value, f.Type)
	if err != nil {
		return Resolution{}, err
	}

	if err := f.checkRange(coerced); err != nil {
		return Resolution{}, err
	}

	if len(f.Choices) > 0 && !containsValue(f.Choices, coerced) {
		return Resolution{}, unexpectedValue(
			fmt.Sprintf("%s: %v is not valid. must be selected in %v", f.Name, value, f.Choices), nil)
	}

	if f.Validator != nil {
		if verr := f.Validator(f.typed(coerced)); verr != nil {
			return Resolution{}, unexpectedValue(fmt.Sprintf("%s: %v is not valid. %v", f.Name, value, verr), verr)
		}
	}

	return Resolution{Value: coerced}, nil
}

// Lookup 沿 path 逐层取值。
//
// 支持 key 为字符串的任意映射类型，便于直接读取 [Schema.ToMap] 的结果。
func Lookup(doc any, path []string) (any, bool) {
	if len(path) == 0 {
		return nil, false
	}

	current := doc
	for _, segment := range path {
		if m, ok := current.(map[string]any); ok {
			next, exists := m[segment]
			if !exists {
				return nil, false
			}
			current = next

			continue
		}

		rv := reflect.ValueOf(current)
		if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		next := rv.MapIndex(reflect.ValueOf(segment).Convert(rv.Type().Key()))
		if !next.IsValid() {
			return nil, false
		}
		current = next.Interface()
	}

	return current, true
}

func containsValue(choices []any, value any) bool {
	for _, choice := range choices {
		if valuesEqual(choice, value) {
			return true
		}
	}

	return false
}

// valuesEqual 比较两个值，整数之间按数值比较，不区分具体的整数类型。
func valuesEqual(a, b any) bool {
	a, b = deref(a), deref(b)
	if x, ok := integerValue(a); ok {
		y, ok := integerValue(b)
		return ok && x == y
	}
	if x, ok := floatValue(a); ok {
		y, ok := floatValue(b)
		return ok && x == y
	}

	return reflect.DeepEqual(a, b)
}

func integerValue(v any) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if rv.Uint() > math.MaxInt64 {
			return 0, false
		}
		return int64(rv.Uint()), true //nolint:gosec // checked above
	default:
		return 0, false
	}
}

func floatValue(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Float32 || rv.Kind() == reflect.Float64 {
		return rv.Float(), true
	}

	return 0, false
}
