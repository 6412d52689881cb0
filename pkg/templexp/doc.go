// Package templexp 提供配置文本的 Shell 参数展开。
//
// 该包仅处理 ${...} 语法，用于在 JSON/TOML 配置文件解析之前做轻量替换。
// 不执行命令、不引入模板引擎，展开结果可预测。
//
// # 设计参考
//
//   - Bash 参数展开: https://www.gnu.org/software/bash/manual/bash.html#Shell-Parameter-Expansion
//
// # 语义说明
//
//  1. 仅做字符串层面的替换（不解析 $VAR）
//  2. 支持嵌套展开与 "$$" 字面量
//  3. ":=" 赋值仅作用于当前 [Expander]
//  4. 无法识别的表达式保持原样
//
// # 快速开始
//
// 使用环境变量展开：
//
//	expanded, err := templexp.ExpandTemplate(`api_key = "${OPENAI_API_KEY}"`)
//
// 使用自定义变量来源：
//
//	vars := map[string]string{"MODEL": "gpt-4"}
//	exp := templexp.New(func(name string) (string, bool) {
//	    v, ok := vars[name]
//	    return v, ok
//	})
//	expanded, err := exp.Expand(`model = "${MODEL:-gpt-3.5-turbo}"`)
package templexp
