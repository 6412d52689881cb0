// Package inspect 提供配置文档查看命令。
package inspect

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251214-go-pkg-fastconfig/pkg/fastconfig"
)

// Command 查看命令
var Command = newCommand()

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "解析配置文件并输出文档",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   string(fastconfig.FormatJSON),
				Usage:   "输出格式 (json, toml, yaml)",
			},
			&cli.StringFlag{
				Name:    "key",
				Aliases: []string{"k"},
				Usage:   "只输出该 key 路径下的值，以 . 分隔",
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "输出带 Go 类型的原始值",
			},
			&cli.BoolFlag{
				Name:  "expand",
				Usage: "解析前展开 ${VAR} 模板",
			},
		},
		Action: action,
	}
}

func action(_ context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return errors.New("missing FILE argument")
	}

	var opts []fastconfig.Option
	if cmd.Bool("expand") {
		opts = append(opts, fastconfig.WithTemplateExpansion())
	}
	doc, err := fastconfig.LoadDocument(path, opts...)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	var value any = doc
	if key := cmd.String("key"); key != "" {
		found, ok := fastconfig.Lookup(doc, strings.Split(key, fastconfig.DefaultSeparator))
		if !ok {
			return fmt.Errorf("key %s is not found in %s", key, path)
		}
		value = found
	}

	w := cmd.Root().Writer
	if cmd.Bool("raw") {
		cfg := spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}
		cfg.Fdump(w, value)

		return nil
	}

	data, err := render(value, fastconfig.Format(cmd.String("format")))
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, strings.TrimRight(string(data), "\n"))

	return nil
}

// render 输出文档，非映射的值包装为 {"value": v}，因为 TOML 根节点必须是表。
func render(value any, format fastconfig.Format) ([]byte, error) {
	doc, ok := value.(map[string]any)
	if !ok {
		doc = fastconfig.Document{"value": value}
	}

	return fastconfig.Encode(doc, format)
}
