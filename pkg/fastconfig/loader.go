package fastconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251214-go-pkg-fastconfig/pkg/templexp"
)

// Format 是文档格式。
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml" // 仅用于输出
)

// FormatOf 根据文件后缀判断格式，只接受 .json 与 .toml。
func FormatOf(path string) (Format, error) {
	switch {
	case strings.HasSuffix(path, ".json"):
		return FormatJSON, nil
	case strings.HasSuffix(path, ".toml"):
		return FormatTOML, nil
	}

	return "", invalidConfig("FastConfig only supports json and toml formats now", nil)
}

// LoadDocument 读取并解析配置文件。
//
// 文件不存在时返回 [NotFoundError]（在判断格式之前）；
// 不支持的后缀与解析失败返回 [ErrInvalidConfig]，错误文本保留解析器的原始信息。
func LoadDocument(path string, opts ...Option) (Document, error) {
	o := newOptions(opts)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("stat config file %s: %w", path, err)
	}

	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path) //nolint:gosec // path is provided by the caller
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	if o.templateExpansion {
		expanded, expandErr := templexp.New(o.lookupEnv).Expand(string(content))
		if expandErr != nil {
			return nil, fmt.Errorf("expand template in %s: %w", path, expandErr)
		}
		content = []byte(expanded)
	}

	doc, err := ParseDocument(format, content)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded config document", "path", path, "format", format, "templateExpansion", o.templateExpansion)

	return doc, nil
}

// ParseDocument 解析文档内容。
//
// JSON 根节点不是对象时包装为 {"content": root}。
// JSON 整数字面量解析为 int64，其余数字为 float64；
// TOML 的 local datetime 转换为 UTC 的 time.Time，local date / local time 保持为 [LocalDate] / [LocalTime]。
func ParseDocument(format Format, content []byte) (Document, error) {
	switch format {
	case FormatJSON:
		return parseJSON(content)
	case FormatTOML:
		return parseTOML(content)
	}

	return nil, invalidConfig("FastConfig only supports json and toml formats now", nil)
}

func parseJSON(content []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, invalidConfig(err.Error(), err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, invalidConfig("invalid character after top-level value", nil)
		}
		return nil, invalidConfig(err.Error(), err)
	}

	normalized := normalize(raw)
	if doc, ok := normalized.(map[string]any); ok {
		return doc, nil
	}

	return Document{"content": normalized}, nil
}

func parseTOML(content []byte) (Document, error) {
	var raw map[string]any
	if err := toml.Unmarshal(content, &raw); err != nil {
		return nil, invalidConfig(err.Error(), err)
	}
	if raw == nil {
		return Document{}, nil
	}

	return normalize(raw).(map[string]any), nil
}

// normalize 把解析器产生的值统一为 [Document] 约定的类型。
func normalize(val any) any {
	switch typed := val.(type) {
	case map[string]any:
		for key, value := range typed {
			typed[key] = normalize(value)
		}
		return typed
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[fmt.Sprintf("%v", key)] = normalize(value)
		}
		return out
	case []any:
		for i := range typed {
			typed[i] = normalize(typed[i])
		}
		return typed
	case json.Number:
		if !strings.ContainsAny(typed.String(), ".eE") {
			if n, err := typed.Int64(); err == nil {
				return n
			}
		}
		f, _ := typed.Float64()
		return f
	case toml.LocalDateTime:
		return typed.AsTime(time.UTC)
	default:
		return val
	}
}

// Encode 把文档序列化为指定格式。
//
// JSON 中整数值的浮点数写为 2.0 的形式，重新加载时仍解析为浮点数。
// TOML 没有 null，值为 nil 的 key 会被省略。
func Encode(doc Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(jsonFloats(doc), "", "  ")
	case FormatTOML:
		return toml.Marshal(dropNil(doc))
	case FormatYAML:
		return yamlv3.Marshal(doc)
	}

	return nil, invalidConfig(fmt.Sprintf("unsupported output format %q", format), nil)
}

// jsonFloats 把整数值的有限浮点数替换为带小数点的 json.Number。
func jsonFloats(val any) any {
	switch typed := val.(type) {
	case nil:
		return nil
	case float64:
		return floatNumber(typed)
	case float32:
		return floatNumber(float64(typed))
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[key] = jsonFloats(value)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, value := range typed {
			out[i] = jsonFloats(value)
		}
		return out
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return val
		}
		return jsonFloats(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		// []byte 保持 base64 编码
		if rv.Type().Elem().Kind() == reflect.Uint8 || (rv.Kind() == reflect.Slice && rv.IsNil()) {
			return val
		}
		out := make([]any, rv.Len())
		for i := range rv.Len() {
			out[i] = jsonFloats(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
			return val
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = jsonFloats(iter.Value().Interface())
		}
		return out
	case reflect.Float32, reflect.Float64:
		return floatNumber(rv.Float())
	default:
		return val
	}
}

func floatNumber(f float64) any {
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return f
	}

	return json.Number(strconv.FormatFloat(f, 'f', -1, 64) + ".0")
}

func dropNil(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for key, value := range doc {
		switch typed := value.(type) {
		case nil:
			continue
		case map[string]any:
			out[key] = dropNil(typed)
		default:
			out[key] = value
		}
	}

	return out
}
