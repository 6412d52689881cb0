package fastconfig

import (
	"os"

	"github.com/urfave/cli/v3"
)

// options 文档加载选项。
type options struct {
	cmd               *cli.Command
	envPrefix         string
	lookupEnv         func(string) (string, bool)
	templateExpansion bool // 是否在解析前展开 ${...}（默认关闭）
}

// Option 文档加载选项函数。
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{lookupEnv: os.LookupEnv}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// WithCommand 绑定 CLI 命令，显式设置的 flags 覆盖文档中的值（最高优先级）。
//
// flag 名称为 key 路径各段以 "-" 连接：
//   - server.addr → --server-addr
//   - log.level → --log-level
func WithCommand(cmd *cli.Command) Option {
	return func(o *options) {
		o.cmd = cmd
	}
}

// WithEnvPrefix 启用环境变量覆盖，优先级高于文档、低于 CLI flags。
//
// 环境变量命名规则：
//   - 前缀 + 大写的 key 路径
//   - 路径各段以 "_" 连接，连字符 (-) 转为下划线 (_)
//
// 示例 (前缀为 "MYAPP_")：
//   - MYAPP_SERVER_ADDR → server.addr
//   - MYAPP_LOG_LEVEL → log.level
//
// 环境变量的值按 TOML 标量解析（42、true、[1, 2]、1979-05-27），无法解析时作为字符串。
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithEnvLookup 替换环境变量的读取函数，默认为 os.LookupEnv。
func WithEnvLookup(lookup func(string) (string, bool)) Option {
	return func(o *options) {
		o.lookupEnv = lookup
	}
}

// WithTemplateExpansion 在解析前对文件内容执行 Shell 参数展开（见 templexp 包）。
//
// 支持 ${VAR} / ${VAR:-default} / ${VAR?msg} / ${VAR:=default} 等写法。
func WithTemplateExpansion() Option {
	return func(o *options) {
		o.templateExpansion = true
	}
}
