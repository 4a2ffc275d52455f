package config

import "github.com/urfave/cli/v3"

// EnvPrefix 是应用环境变量的默认前缀。
const EnvPrefix = "SAFETPL_"

// options 配置加载选项。
type options struct {
	cmd         *cli.Command
	configPaths []string
	configFile  string // 显式指定的配置文件，必须存在
	envPrefix   string

	noEnvExpansion bool
}

// Option 配置加载选项函数。
type Option func(*options)

// WithCommand 绑定 CLI 命令，读取显式设置的 flags 以覆盖配置（最高优先级）。
func WithCommand(cmd *cli.Command) Option {
	return func(o *options) {
		o.cmd = cmd
	}
}

// WithConfigPaths 设置配置文件搜索路径。
//
// 按顺序查找，命中首个文件即停止，全部不存在时使用默认值。
func WithConfigPaths(paths ...string) Option {
	return func(o *options) {
		o.configPaths = paths
	}
}

// WithConfigFile 指定配置文件，文件不存在或无法解析时 [Load] 返回错误。
//
// 设置后不再搜索 [WithConfigPaths] 中的路径。
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.configFile = path
	}
}

// WithEnvPrefix 启用环境变量前缀解析。
//
// 环境变量命名规则：
//   - 前缀 + 大写的配置 key
//   - 点号 (.) 和连字符 (-) 转为下划线 (_)
//
// 示例 (前缀为 "SAFETPL_")：
//   - SAFETPL_RENDER_PRETTY → render.pretty
//   - SAFETPL_RENDER_MAX_DEPTH → render.max-depth
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithoutEnvExpansion 禁用配置文件中的环境变量展开，保留 ${...} 原文。
//
// 默认在解析前展开 ${VAR}、${VAR:-default} 与 ${VAR:?msg}。
func WithoutEnvExpansion() Option {
	return func(o *options) {
		o.noEnvExpansion = true
	}
}
