// Package search 提供配置文件查找命令。
package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251214-go-pkg-fastconfig/pkg/fastconfig"
)

// Command 查找命令
var Command = newCommand()

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "从当前目录向上查找文件，以 / 结尾时只匹配目录",
		ArgsUsage: "TARGET",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "from",
				Usage: "起始目录，默认为当前目录",
			},
			&cli.IntFlag{
				Name:  "depth",
				Value: fastconfig.DefaultSearchDepth,
				Usage: "最多向上查找的层数",
			},
			&cli.BoolFlag{
				Name:  "no-root-stop",
				Usage: "经过项目根目录 (.git / .hg) 后继续查找",
			},
		},
		Action: action,
	}
}

func action(_ context.Context, cmd *cli.Command) error {
	target := cmd.Args().First()
	if target == "" {
		return errors.New("missing TARGET argument")
	}

	opts := []fastconfig.SearchOption{fastconfig.SearchDepth(cmd.Int("depth"))}
	if from := cmd.String("from"); from != "" {
		opts = append(opts, fastconfig.SearchFrom(from))
	}
	if cmd.Bool("no-root-stop") {
		opts = append(opts, fastconfig.WithoutRootStop())
	}

	path, ok := fastconfig.Search(target, opts...)
	if !ok {
		return fmt.Errorf("%s is not found", target)
	}
	_, _ = fmt.Fprintln(cmd.Root().Writer, path)

	return nil
}
