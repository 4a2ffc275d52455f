// Package render 提供模板渲染命令。
package render

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-safetpl/internal/command"
)

// Command 渲染命令
var Command = &cli.Command{
	Name:      "render",
	Usage:     "以数据文档渲染模板",
	UsageText: "render --template FILE [--data FILE] [--output FILE]",
	Action:    action,
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:     "template",
			Aliases:  []string{"t"},
			Required: true,
			Usage:    "模板文件路径, - 表示标准输入",
		},
		&cli.StringFlag{
			Name:    "data",
			Aliases: []string{"d"},
			Usage:   "YAML / JSON 数据文件路径, - 表示标准输入",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "输出文件路径 (默认标准输出)",
		},
	}, command.ConfigFlags()...),
}
