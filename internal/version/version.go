// Package version 提供构建时注入的版本信息与 version 子命令。
package version

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/urfave/cli/v3"
)

// 通过 ldflags 在构建时注入，例如：
//
//	go build -ldflags "-X github.com/lwmacct/251214-go-pkg-fastconfig/internal/version.Version=v1.0.0"
var (
	AppRawName = "fastconfig"
	Version    = ""
	Commit     = "none"
	BuildDate  = "unknown"
)

// GetVersion 返回版本号，未注入时回退到模块构建信息。
func GetVersion() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}

	return "dev"
}

// Command 打印版本信息
var Command = &cli.Command{
	Name:  "version",
	Usage: "显示版本信息",
	Action: func(_ context.Context, cmd *cli.Command) error {
		w := cmd.Root().Writer
		_, _ = fmt.Fprintf(w, "%s %s\n", AppRawName, GetVersion())
		_, _ = fmt.Fprintf(w, "  commit:  %s\n", Commit)
		_, _ = fmt.Fprintf(w, "  built:   %s\n", BuildDate)

		return nil
	},
}
