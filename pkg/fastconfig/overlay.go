package fastconfig

import (
	"log/slog"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// parseScalar 按 TOML 值语法解析字符串，失败时返回原字符串。
//
// 示例：
//   - "42" → int64(42)
//   - "true" → true
//   - "[1, 2]" → []any{int64(1), int64(2)}
//   - "1979-05-27" → LocalDate
//   - "hello" → "hello"
func parseScalar(raw string) any {
	var holder map[string]any
	if err := toml.Unmarshal([]byte("v = "+raw), &holder); err != nil {
		return raw
	}
	value, ok := holder["v"]
	if !ok || len(holder) != 1 {
		return raw
	}

	return normalize(value)
}

// envName 生成字段对应的环境变量名。
//
// 示例 (前缀 "APP_")：
//   - [section int] → APP_SECTION_INT
//   - [client rev-auth-user] → APP_CLIENT_REV_AUTH_USER
func envName(prefix string, path []string) string {
	key := strings.ReplaceAll(strings.Join(path, "_"), "-", "_")

	return prefix + strings.ToUpper(key)
}

// flagName 生成字段对应的 CLI flag 名称，路径各段以 "-" 连接。
func flagName(path []string) string {
	return strings.Join(path, "-")
}

// applyOverlays 按优先级把环境变量与 CLI flags 写入文档 (环境变量 < flags)。
func applyOverlays(doc Document, fields []*Field, o *options) {
	if o.envPrefix != "" {
		for _, f := range fields {
			name := envName(o.envPrefix, f.Path)
			if val, ok := o.lookupEnv(name); ok && val != "" {
				setPath(doc, f.Path, parseScalar(val))
				slog.Debug("Loaded env binding", "env", name, "path", strings.Join(f.Path, "."))
			}
		}
	}

	if o.cmd != nil {
		for _, f := range fields {
			name := flagName(f.Path)
			if !o.cmd.IsSet(name) {
				continue
			}
			setPath(doc, f.Path, o.cmd.Value(name))
			slog.Debug("Loaded CLI flag", "flag", name, "path", strings.Join(f.Path, "."))
		}
	}
}

// setPath 沿 path 写入值，中间节点不存在或不是映射时新建。
func setPath(dst map[string]any, path []string, value any) {
	current := dst
	for i, part := range path {
		if i == len(path)-1 {
			current[part] = value

			return
		}

		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
}
