// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - 通过 --config 指定，或向上查找 fastconfig.toml
//  3. 环境变量 - 前缀 FASTCONFIG_
//  4. CLI flags - 通过 fastconfig.WithCommand 选项设置
package config

import (
	"errors"
	"log/slog"
	"time"

	"github.com/lwmacct/251214-go-pkg-fastconfig/pkg/fastconfig"
)

// FileName 是向上查找的默认配置文件名。
const FileName = "fastconfig.toml"

// EnvPrefix 是环境变量覆盖的前缀。
const EnvPrefix = "FASTCONFIG_"

// Config 应用配置。
type Config struct {
	ServerAddr     string                `fc:"server.addr" desc:"服务器监听地址"`
	ServerDocs     string                `fc:"server.docs" desc:"VitePress 文档目录路径"`
	ServerTimeout  int                   `fc:"server.timeout" desc:"HTTP 读写超时 (秒)"`
	ServerIdletime int                   `fc:"server.idletime" desc:"HTTP 空闲超时 (秒)"`
	LogLevel       string                `fc:"log.level" desc:"日志级别"`
	Release        *fastconfig.LocalDate `fc:"app.release" desc:"发布日期"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		ServerAddr:     ":40117",
		ServerDocs:     "docs/.vitepress/dist",
		ServerTimeout:  15,
		ServerIdletime: 60,
		LogLevel:       "info",
	}
}

var errNotPositive = errors.New("must be greater than 0")

var schema = fastconfig.MustSchema[Config](
	fastconfig.WithDefaults(DefaultConfig()),
	fastconfig.WithField("ServerTimeout", fastconfig.Validate(positive)),
	fastconfig.WithField("ServerIdletime", fastconfig.Validate(positive)),
	fastconfig.WithField("LogLevel", fastconfig.Choices("debug", "info", "warn", "error")),
)

// Schema 返回 Config 的 schema。
func Schema() *fastconfig.Schema[Config] { return schema }

func positive(v any) error {
	if n, _ := v.(int); n <= 0 {
		return errNotPositive
	}

	return nil
}

// ReadTimeout 返回 HTTP 读写超时。
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.ServerTimeout) * time.Second
}

// IdleTimeout 返回 HTTP 空闲超时。
func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.ServerIdletime) * time.Second
}

// SlogLevel 把 LogLevel 转换为 slog.Level，未知值按 info 处理。
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}

	return level
}
