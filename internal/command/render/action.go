package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-safetpl/internal/command"
	"github.com/lwmacct/251207-go-pkg-safetpl/internal/config"
	"github.com/lwmacct/251207-go-pkg-safetpl/pkg/dataload"
	"github.com/lwmacct/251207-go-pkg-safetpl/pkg/safetpl"
)

func action(_ context.Context, cmd *cli.Command) error {
	// 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags
	cfg, err := command.LoadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := command.SetupLogger(cfg, command.ErrWriter(cmd))
	if err != nil {
		return err
	}

	templatePath, dataPath := cmd.String("template"), cmd.String("data")
	if templatePath == "-" && dataPath == "-" {
		return errors.New("template and data cannot both read from stdin")
	}

	tpl, err := command.ReadInput(cmd, templatePath)
	if err != nil {
		return err
	}

	var data any
	if dataPath != "" {
		content, err := command.ReadInput(cmd, dataPath)
		if err != nil {
			return err
		}
		if data, err = dataload.Parse(content); err != nil {
			return fmt.Errorf("load data %s: %w", dataPath, err)
		}
	}

	render := func(w io.Writer) error {
		return Run(w, cfg, logger, string(tpl), data)
	}

	path := cmd.String("output")
	if path == "" {
		return render(command.Writer(cmd))
	}
	f, err := os.Create(path) //nolint:gosec // path is provided by the user
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	return renderTo(f, render)
}

// renderTo 将渲染结果写入 wc 并关闭；渲染成功时返回关闭错误。
func renderTo(wc io.WriteCloser, render func(io.Writer) error) (err error) {
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	return render(wc)
}

// Run 以 cfg 构造 Engine，渲染 tpl 并写入 w。
func Run(w io.Writer, cfg *config.Config, logger *slog.Logger, tpl string, data any) error {
	eng := safetpl.New(append(cfg.EngineOptions(), safetpl.WithLogger(logger))...)

	result, err := eng.Render(tpl, data)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	logger.Debug("Rendered template", "bytes", len(result))

	if _, err := io.WriteString(w, result); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
