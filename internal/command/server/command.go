// Package server 提供 HTTP 服务器命令。
package server

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251214-go-pkg-fastconfig/internal/command"
	"github.com/lwmacct/251214-go-pkg-fastconfig/internal/version"
)

// Command 服务器命令
var Command = &cli.Command{
	Name:     "server",
	Usage:    "启动 HTTP 服务器",
	Action:   action,
	Commands: []*cli.Command{version.Command},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "配置文件路径，未指定时向上查找 fastconfig.toml",
		},
		&cli.StringFlag{
			Name:    "server-addr",
			Aliases: []string{"a"},
			Value:   command.Defaults.ServerAddr,
			Usage:   "服务器监听地址",
		},
		&cli.StringFlag{
			Name:  "server-docs",
			Value: command.Defaults.ServerDocs,
			Usage: "VitePress 文档目录路径",
		},
		&cli.IntFlag{
			Name:  "server-timeout",
			Value: command.Defaults.ServerTimeout,
			Usage: "HTTP 读写超时 (秒)",
		},
		&cli.IntFlag{
			Name:  "server-idletime",
			Value: command.Defaults.ServerIdletime,
			Usage: "HTTP 空闲超时 (秒)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Value: command.Defaults.LogLevel,
			Usage: "日志级别 (debug, info, warn, error)",
		},
	},
}
