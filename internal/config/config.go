// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - 通过 WithConfigPaths / WithConfigFile 选项设置
//  3. 环境变量 - 通过 WithEnvPrefix 选项启用
//  4. CLI flags - 通过 WithCommand 选项设置
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/lwmacct/251207-go-pkg-safetpl/pkg/jsonesc"
	"github.com/lwmacct/251207-go-pkg-safetpl/pkg/safetpl"
)

// Config 应用配置。
type Config struct {
	Render RenderConfig `json:"render" desc:"渲染配置"`
	Cache  CacheConfig  `json:"cache" desc:"编译缓存配置"`
	Log    LogConfig    `json:"log" desc:"日志配置"`
}

// RenderConfig 渲染配置。
//
// 这些值在启动时确定，之后作为显式选项传给序列化器。
//
//nolint:tagliatelle
type RenderConfig struct {
	Pretty   bool   `json:"pretty" desc:"转义插值输出缩进格式的 JSON"`
	Indent   string `json:"indent" desc:"缩进字符串"`
	MaxDepth int    `json:"max-depth" desc:"序列化最大嵌套深度"`
}

// CacheConfig 编译缓存配置。
type CacheConfig struct {
	Size int `json:"size" desc:"编译缓存容量, 0 表示禁用"`
}

// LogConfig 日志配置。
type LogConfig struct {
	Level string `json:"level" desc:"日志级别 debug|info|warn|error"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Render: RenderConfig{
			Pretty:   false,
			Indent:   "  ",
			MaxDepth: jsonesc.DefaultMaxDepth,
		},
		Cache: CacheConfig{
			Size: safetpl.DefaultCacheSize,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate 检查配置取值范围。
func (c *Config) Validate() error {
	if c.Render.MaxDepth < 0 {
		return fmt.Errorf("render.max-depth must be >= 0, got %d", c.Render.MaxDepth)
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("cache.size must be >= 0, got %d", c.Cache.Size)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}

	return nil
}

// EngineOptions 将配置转换为 [safetpl.Engine] 选项。
func (c *Config) EngineOptions() []safetpl.Option {
	return []safetpl.Option{
		safetpl.WithPretty(c.Render.Pretty),
		safetpl.WithIndent(c.Render.Indent),
		safetpl.WithMaxDepth(c.Render.MaxDepth),
		safetpl.WithCacheSize(c.Cache.Size),
	}
}

// SlogLevel 解析日志级别，大小写不敏感。
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Level))); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}

	return level, nil
}
