package serialize

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-safetpl/internal/command"
	"github.com/lwmacct/251207-go-pkg-safetpl/internal/config"
	"github.com/lwmacct/251207-go-pkg-safetpl/pkg/dataload"
	"github.com/lwmacct/251207-go-pkg-safetpl/pkg/safetpl"
)

func action(_ context.Context, cmd *cli.Command) error {
	cfg, err := command.LoadConfig(cmd)
	if err != nil {
		return err
	}
	if _, err := command.SetupLogger(cfg, command.ErrWriter(cmd)); err != nil {
		return err
	}

	content, err := command.ReadInput(cmd, cmd.String("data"))
	if err != nil {
		return err
	}

	return Run(command.Writer(cmd), cfg, content)
}

// Run 解析数据文档并按 cfg 的序列化选项写出，末尾追加换行。
func Run(w io.Writer, cfg *config.Config, content []byte) error {
	data, err := dataload.Parse(content)
	if err != nil {
		return err
	}

	out, err := safetpl.New(cfg.EngineOptions()...).Serialize(data)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	_, err = fmt.Fprintln(w, out)

	return err
}
