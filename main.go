package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251214-go-pkg-fastconfig/internal/command/inspect"
	"github.com/lwmacct/251214-go-pkg-fastconfig/internal/command/search"
	"github.com/lwmacct/251214-go-pkg-fastconfig/internal/command/server"
	"github.com/lwmacct/251214-go-pkg-fastconfig/internal/version"
)

func main() {
	app := &cli.Command{
		Name:    version.AppRawName,
		Usage:   "声明式配置绑定工具",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			version.Command,
			inspect.Command,
			search.Command,
			server.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
