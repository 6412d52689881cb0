package fastconfig

import "reflect"

// Check 校验字段值并返回（可能经过转换的）结果。
//
// 不匹配时返回 [TypeMismatchError]，描述本身不受支持时返回 [UnsupportedTypeError]。
// 调用方必须使用返回值而不是原始值，例如字符串 "2020-10-01" 对 Date 描述会返回 [LocalDate]。
func Check(field string, value any, t *Type) (any, error) {
	coerced, ok, err := Match(value, t)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &TypeMismatchError{Field: field, Value: value, Type: t}
	}

	return coerced, nil
}

// Match 递归判断 value 是否符合 t。
//
// 返回值依次为转换后的值、是否匹配以及 [UnsupportedTypeError]。
// 匹配失败不是错误；只有无法识别的描述才会返回 error。
//
// 匹配规则：
//   - Any 总是匹配，值保持不变
//   - 基本类型要求种类完全一致，int 与 float 互不兼容，bool 不是 int
//   - Union 从左到右尝试，首个成功的候选生效
//   - ListOf 要求每个元素都匹配，空序列总是匹配
//   - MapOf 先校验全部 key，再校验全部 value
func Match(value any, t *Type) (any, bool, error) {
	value = deref(value)

	switch t.Kind() {
	case KindAny:
		return value, true, nil
	case KindNone:
		return nil, value == nil, nil
	case KindBool, KindInt, KindFloat, KindString:
		return value, matchPrimitive(value, t.kind), nil
	case KindDate, KindDateTime, KindTime:
		coerced, ok := matchTemporal(value, t.kind)
		return coerced, ok, nil
	case KindUnion:
		return matchUnion(value, t)
	case KindList:
		return matchList(value, t)
	case KindMap:
		return matchMap(value, t)
	}

	return nil, false, &UnsupportedTypeError{Type: t.String()}
}

// deref 展开非空指针，空指针视为 nil。
func deref(value any) any {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}

	return rv.Interface()
}

func matchPrimitive(value any, kind Kind) bool {
	if value == nil {
		return false
	}

	switch reflect.TypeOf(value).Kind() {
	case reflect.Bool:
		return kind == KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return kind == KindInt
	case reflect.Float32, reflect.Float64:
		return kind == KindFloat
	case reflect.String:
		return kind == KindString
	default:
		return false
	}
}

func matchUnion(value any, t *Type) (any, bool, error) {
	if len(t.args) == 0 {
		return nil, false, &UnsupportedTypeError{Type: t.String()}
	}
	for _, alt := range t.args {
		coerced, ok, err := Match(value, alt)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return coerced, true, nil
		}
	}

	return nil, false, nil
}

func matchList(value any, t *Type) (any, bool, error) {
	if len(t.args) != 1 {
		return nil, false, &UnsupportedTypeError{Type: t.String()}
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false, nil
	}

	out := make([]any, rv.Len())
	for i := range rv.Len() {
		coerced, ok, err := Match(rv.Index(i).Interface(), t.args[0])
		if err != nil || !ok {
			return nil, false, err
		}
		out[i] = coerced
	}

	return out, true, nil
}

func matchMap(value any, t *Type) (any, bool, error) {
	if len(t.args) != 2 {
		return nil, false, &UnsupportedTypeError{Type: t.String()}
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map {
		return nil, false, nil
	}

	keyType, valueType := t.args[0], t.args[1]
	keys := rv.MapKeys()
	coercedKeys := make([]any, len(keys))
	allStrings := true
	for i, k := range keys {
		coerced, ok, err := Match(k.Interface(), keyType)
		if err != nil || !ok {
			return nil, false, err
		}
		if ct := reflect.TypeOf(coerced); ct != nil && !ct.Comparable() {
			coerced = k.Interface()
		}
		if _, isString := coerced.(string); !isString {
			allStrings = false
		}
		coercedKeys[i] = coerced
	}

	coercedValues := make([]any, len(keys))
	for i, k := range keys {
		coerced, ok, err := Match(rv.MapIndex(k).Interface(), valueType)
		if err != nil || !ok {
			return nil, false, err
		}
		coercedValues[i] = coerced
	}

	if allStrings {
		out := make(map[string]any, len(keys))
		for i, k := range coercedKeys {
			out[k.(string)] = coercedValues[i]
		}
		return out, true, nil
	}

	out := make(map[any]any, len(keys))
	for i, k := range coercedKeys {
		out[k] = coercedValues[i]
	}

	return out, true, nil
}
