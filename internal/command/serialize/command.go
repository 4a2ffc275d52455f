// Package serialize 提供数据文档的转义序列化命令。
package serialize

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-safetpl/internal/command"
)

// Command 序列化命令
var Command = &cli.Command{
	Name:   "serialize",
	Usage:  "将 YAML / JSON 数据文档输出为转义后的 JSON 文本",
	Action: action,
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:    "data",
			Aliases: []string{"d"},
			Value:   "-",
			Usage:   "数据文件路径, - 表示标准输入",
		},
	}, command.ConfigFlags()...),
}
