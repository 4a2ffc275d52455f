// Package version 提供构建版本信息与 version 子命令。
//
// 发布构建通过 -ldflags 注入：
//
//	go build -ldflags "-X github.com/lwmacct/251207-go-pkg-safetpl/internal/version.Version=v1.2.3"
package version

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/urfave/cli/v3"
)

// AppRawName 应用名称，用于命令名与默认配置路径。
const AppRawName = "safetpl"

// 构建时注入的版本信息。
var (
	Version   = ""
	Commit    = ""
	BuildTime = ""
)

// GetVersion 返回版本号，未注入时取模块版本，都没有时为 "dev"。
func GetVersion() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return "dev"
}

// Print 输出完整版本信息。
func Print(w io.Writer) {
	_, _ = fmt.Fprintf(w, "%s %s\n", AppRawName, GetVersion())
	if Commit != "" {
		_, _ = fmt.Fprintf(w, "commit:  %s\n", Commit)
	}
	if BuildTime != "" {
		_, _ = fmt.Fprintf(w, "built:   %s\n", BuildTime)
	}
	_, _ = fmt.Fprintf(w, "go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Command version 子命令。
var Command = &cli.Command{
	Name:  "version",
	Usage: "显示版本信息",
	Action: func(_ context.Context, cmd *cli.Command) error {
		w := cmd.Root().Writer
		if w == nil {
			w = os.Stdout
		}
		Print(w)

		return nil
	},
}
