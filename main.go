package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-safetpl/internal/command/configure"
	"github.com/lwmacct/251207-go-pkg-safetpl/internal/command/render"
	"github.com/lwmacct/251207-go-pkg-safetpl/internal/command/serialize"
	"github.com/lwmacct/251207-go-pkg-safetpl/internal/version"
)

func main() {
	app := &cli.Command{
		Name:    version.AppRawName,
		Usage:   "面向脚本与 JSON 的安全模板渲染工具",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			version.Command,
			render.Command,
			serialize.Command,
			configure.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
