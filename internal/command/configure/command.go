// Package configure 提供配置相关的辅助命令。
package configure

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-safetpl/internal/command"
	"github.com/lwmacct/251207-go-pkg-safetpl/internal/config"
	"github.com/lwmacct/251207-go-pkg-safetpl/pkg/jsonesc"
)

// Command 配置命令
var Command = &cli.Command{
	Name:  "config",
	Usage: "配置文件辅助命令",
	Commands: []*cli.Command{
		{
			Name:   "example",
			Usage:  "输出带注释的 YAML 配置示例",
			Action: exampleAction,
		},
		{
			Name:   "show",
			Usage:  "输出合并后的有效配置 (JSON)",
			Action: showAction,
			Flags:  command.ConfigFlags(),
		},
	},
}

func exampleAction(_ context.Context, cmd *cli.Command) error {
	out, err := config.ExampleYAML(command.Defaults)
	if err != nil {
		return err
	}
	_, err = command.Writer(cmd).Write(out)

	return err
}

func showAction(_ context.Context, cmd *cli.Command) error {
	cfg, err := command.LoadConfig(cmd)
	if err != nil {
		return err
	}

	out, err := jsonesc.Serialize(Effective(cfg), jsonesc.WithPretty(true))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(command.Writer(cmd), out)

	return err
}

// Effective 将配置转为按字段顺序排列的 [jsonesc.Object]。
func Effective(cfg *config.Config) jsonesc.Object {
	return jsonesc.Object{
		{Key: "render", Value: jsonesc.Object{
			{Key: "pretty", Value: cfg.Render.Pretty},
			{Key: "indent", Value: cfg.Render.Indent},
			{Key: "max-depth", Value: cfg.Render.MaxDepth},
		}},
		{Key: "cache", Value: jsonesc.Object{
			{Key: "size", Value: cfg.Cache.Size},
		}},
		{Key: "log", Value: jsonesc.Object{
			{Key: "level", Value: cfg.Log.Level},
		}},
	}
}
