package fastconfig

import "reflect"

// ToMap 把记录实例还原为按 key 路径嵌套的文档，是 [Schema.Build] 的逆操作。
//
// 共享路径前缀的字段写入同一个子映射；指针字段写入其指向的值，nil 保持为 nil。
// 两个字段的 key 路径互为前缀（如 "a" 与 "a.b"）属于声明错误，此时后写入者覆盖先写入者。
//
// 示例：
//
//	type Config struct {
//	    Port int    `fc:"server.port"`
//	    Host string `fc:"server.host"`
//	}
//	// → {"server": {"port": 8080, "host": "localhost"}}
func (s *Schema[T]) ToMap(v *T) Document {
	doc := Document{}
	if v == nil {
		return doc
	}

	record := reflect.ValueOf(v).Elem()
	for _, f := range s.fields {
		setPath(doc, f.Path, deref(record.FieldByIndex(f.index).Interface()))
	}

	return doc
}

// FieldMap 返回以 Go 字段名为 key 的扁平映射。
func (s *Schema[T]) FieldMap(v *T) map[string]any {
	out := make(map[string]any, len(s.fields))
	if v == nil {
		return out
	}

	record := reflect.ValueOf(v).Elem()
	for _, f := range s.fields {
		out[f.Name] = record.FieldByIndex(f.index).Interface()
	}

	return out
}

// MarshalJSON 生成缩进的 JSON 文档。
func (s *Schema[T]) MarshalJSON(v *T) ([]byte, error) {
	return Encode(s.ToMap(v), FormatJSON)
}

// MarshalTOML 生成 TOML 文档，nil 字段被省略。
func (s *Schema[T]) MarshalTOML(v *T) ([]byte, error) {
	return Encode(s.ToMap(v), FormatTOML)
}

// MarshalYAML 生成 YAML 文档。
func (s *Schema[T]) MarshalYAML(v *T) ([]byte, error) {
	return Encode(s.ToMap(v), FormatYAML)
}
