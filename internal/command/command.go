// Package command 提供 safetpl 命令行的公共部分。
package command

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/lwmacct/251207-go-pkg-safetpl/internal/config"
	"github.com/lwmacct/251207-go-pkg-safetpl/internal/version"
)

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// ConfigFlags 返回与配置 key 对应的 flags，名称规则见 [config.Load]。
//
// 每次调用返回新的 flag 实例，便于多个命令各自持有。
func ConfigFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "配置文件路径 (默认搜索 ." + version.AppRawName + ".yaml 等)",
		},
		&cli.BoolFlag{
			Name:  "render-pretty",
			Value: Defaults.Render.Pretty,
			Usage: "转义插值输出缩进格式的 JSON",
		},
		&cli.StringFlag{
			Name:  "render-indent",
			Value: Defaults.Render.Indent,
			Usage: "缩进字符串",
		},
		&cli.IntFlag{
			Name:  "render-max-depth",
			Value: Defaults.Render.MaxDepth,
			Usage: "序列化最大嵌套深度",
		},
		&cli.IntFlag{
			Name:  "cache-size",
			Value: Defaults.Cache.Size,
			Usage: "编译缓存容量, 0 表示禁用",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Value: Defaults.Log.Level,
			Usage: "日志级别 debug|info|warn|error",
		},
	}
}

// LoadConfig 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags。
//
// 指定 --config 时文件必须存在，否则按 [config.DefaultPaths] 搜索。
func LoadConfig(cmd *cli.Command) (*config.Config, error) {
	opts := []config.Option{
		config.WithCommand(cmd),
		config.WithEnvPrefix(config.EnvPrefix),
	}
	if path := cmd.String("config"); path != "" {
		opts = append(opts, config.WithConfigFile(path))
	} else {
		opts = append(opts, config.WithConfigPaths(config.DefaultPaths(version.AppRawName)...))
	}

	return config.Load(opts...)
}

// SetupLogger 按配置的级别安装默认 logger，日志写入 w。
func SetupLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	return logger, nil
}

// ErrTerminalInput 表示要求从标准输入读取，但标准输入是交互终端。
var ErrTerminalInput = errors.New("stdin is a terminal, pipe the input or pass a file path")

// ReadInput 读取文件内容，"-" 表示标准输入。
//
// 标准输入为终端时返回 [ErrTerminalInput]，避免进程阻塞等待输入。
func ReadInput(cmd *cli.Command, path string) ([]byte, error) {
	if path == "-" {
		r := cmd.Root().Reader
		if r == nil {
			r = os.Stdin
		}
		if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return nil, ErrTerminalInput
		}
		return io.ReadAll(r)
	}

	content, err := os.ReadFile(path) //nolint:gosec // path is provided by the user
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return content, nil
}

// Writer 返回命令的输出目标。
func Writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}

	return os.Stdout
}

// ErrWriter 返回命令的错误与日志输出目标。
func ErrWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}

	return os.Stderr
}
