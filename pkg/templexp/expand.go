package templexp

import (
	"fmt"
	"os"
	"strings"
)

// Lookup 返回变量值以及变量是否已设置，签名与 os.LookupEnv 一致。
type Lookup func(name string) (string, bool)

// Expander 执行 ${...} 展开。
//
// ":=" 与 "=" 的赋值只保存在 Expander 内部，不会写回环境变量。
// Expander 不是并发安全的，每次展开可以新建一个。
type Expander struct {
	lookup   Lookup
	assigned map[string]string
}

// New 创建使用 lookup 读取变量的 Expander，lookup 为 nil 时使用 os.LookupEnv。
func New(lookup Lookup) *Expander {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	return &Expander{lookup: lookup, assigned: make(map[string]string)}
}

// ExpandTemplate 使用当前环境变量对 text 执行 Shell 参数展开。
//
// 支持语法：
//   - ${VAR} - 变量替换
//   - ${VAR:-default} / ${VAR-default} - fallback
//   - ${VAR:+alt} / ${VAR+alt} - 替代值
//   - ${VAR:?msg} / ${VAR?msg} - 必填校验
//   - ${VAR:=default} / ${VAR=default} - 赋值（仅作用于当前展开）
//
// 仅在必填校验失败时返回 error。
func ExpandTemplate(text string) (string, error) {
	return New(os.LookupEnv).Expand(text)
}

// Expand 展开 text 中的全部表达式，无法识别的表达式保持原样。
func (e *Expander) Expand(text string) (string, error) {
	var buf strings.Builder
	buf.Grow(len(text))

	rest := text
	for {
		i := strings.IndexByte(rest, '$')
		if i < 0 || i+1 >= len(rest) {
			buf.WriteString(rest)
			return buf.String(), nil
		}
		buf.WriteString(rest[:i])
		rest = rest[i:]

		switch rest[1] {
		case '$':
			buf.WriteByte('$')
			rest = rest[2:]
			continue
		case '{':
		default:
			buf.WriteByte('$')
			rest = rest[1:]
			continue
		}

		end := closingBrace(rest, 2)
		if end < 0 {
			buf.WriteByte('$')
			rest = rest[1:]
			continue
		}

		out, ok, err := e.expression(rest[2:end])
		if err != nil {
			return "", err
		}
		if ok {
			buf.WriteString(out)
		} else {
			buf.WriteString(rest[:end+1])
		}
		rest = rest[end+1:]
	}
}

// closingBrace 返回与 start 之前的 "${" 配对的 '}' 下标，支持嵌套。
func closingBrace(text string, start int) int {
	depth := 0
	for i := start; i < len(text); i++ {
		switch {
		case text[i] == '$' && i+1 < len(text) && text[i+1] == '{':
			depth++
			i++
		case text[i] == '}' && depth == 0:
			return i
		case text[i] == '}':
			depth--
		}
	}

	return -1
}

// parameter 是一个已解析的 ${...} 表达式。
type parameter struct {
	name  string
	op    byte // 0 表示纯变量替换，否则为 '-' '+' '?' '='
	colon bool // 带冒号时空值视为未设置
	word  string
}

func parseParameter(expr string) (parameter, bool) {
	n := 0
	for n < len(expr) && isNameChar(expr[n], n == 0) {
		n++
	}
	if n == 0 {
		return parameter{}, false
	}

	p := parameter{name: expr[:n]}
	rest := expr[n:]
	if rest == "" {
		return p, true
	}
	if rest[0] == ':' {
		p.colon = true
		rest = rest[1:]
	}
	if rest == "" || !strings.ContainsRune("-+?=", rune(rest[0])) {
		return parameter{}, false
	}
	p.op = rest[0]
	p.word = rest[1:]

	return p, true
}

func isNameChar(ch byte, first bool) bool {
	switch {
	case ch == '_', ch >= 'A' && ch <= 'Z', ch >= 'a' && ch <= 'z':
		return true
	case ch >= '0' && ch <= '9':
		return !first
	}

	return false
}

func (e *Expander) get(name string) (string, bool) {
	if val, ok := e.assigned[name]; ok {
		return val, true
	}

	return e.lookup(name)
}

// expression 展开单个表达式，第二个返回值为 false 表示无法识别。
func (e *Expander) expression(expr string) (string, bool, error) {
	p, ok := parseParameter(expr)
	if !ok {
		return "", false, nil
	}

	val, isSet := e.get(p.name)
	set := isSet && (!p.colon || val != "")

	switch p.op {
	case 0:
		return val, true, nil
	case '-':
		if set {
			return val, true, nil
		}
		return e.word(p.word)
	case '+':
		if !set {
			return "", true, nil
		}
		return e.word(p.word)
	case '?':
		if set {
			return val, true, nil
		}
		if p.word == "" {
			return "", false, fmt.Errorf("templexp: %s: parameter null or not set", p.name)
		}
		return "", false, fmt.Errorf("templexp: %s: %s", p.name, p.word)
	case '=':
		if set {
			return val, true, nil
		}
		out, _, err := e.word(p.word)
		if err != nil {
			return "", false, err
		}
		e.assigned[p.name] = out
		return out, true, nil
	}

	return "", false, nil
}

// word 展开操作符右侧的内容，允许嵌套表达式。
func (e *Expander) word(word string) (string, bool, error) {
	if !strings.Contains(word, "${") {
		return word, true, nil
	}
	out, err := e.Expand(word)
	if err != nil {
		return "", false, err
	}

	return out, true, nil
}
