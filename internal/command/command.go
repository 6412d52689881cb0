// Package command 提供命令行子命令的公共部分。
package command

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251214-go-pkg-fastconfig/internal/config"
	"github.com/lwmacct/251214-go-pkg-fastconfig/internal/version"
	"github.com/lwmacct/251214-go-pkg-fastconfig/pkg/fastconfig"
)

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// ConfigPath 返回配置文件路径。
//
// 查找顺序：
//  1. --config 指定的路径
//  2. 从当前目录向上查找 [config.FileName]
//  3. [fastconfig.DefaultPaths] 中第一个存在的文件
func ConfigPath(cmd *cli.Command) (string, bool) {
	if path := cmd.String("config"); path != "" {
		return path, true
	}
	if path, ok := fastconfig.Search(config.FileName); ok {
		return path, true
	}

	return fastconfig.FirstExisting(fastconfig.DefaultPaths(version.AppRawName)...)
}

// LoadOptions 返回加载应用配置时使用的选项：环境变量前缀与 CLI flags。
func LoadOptions(cmd *cli.Command) []fastconfig.Option {
	return []fastconfig.Option{
		fastconfig.WithEnvPrefix(config.EnvPrefix),
		fastconfig.WithCommand(cmd),
		fastconfig.WithTemplateExpansion(),
	}
}
