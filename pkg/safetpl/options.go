package safetpl

import (
	"log/slog"
	"maps"

	"github.com/lwmacct/251207-go-pkg-safetpl/pkg/expr"
	"github.com/lwmacct/251207-go-pkg-safetpl/pkg/jsonesc"
)

// DefaultCacheSize 是默认的编译缓存容量。
const DefaultCacheSize = 128

type options struct {
	pretty    bool
	indent    string
	maxDepth  int
	funcs     map[string]expr.Func
	cacheSize int
	logger    *slog.Logger
}

func defaultOptions() options {
	return options{
		indent:    "  ",
		maxDepth:  jsonesc.DefaultMaxDepth,
		cacheSize: DefaultCacheSize,
	}
}

// Option Engine 配置选项函数。
type Option func(*options)

// WithPretty 设置转义插值是否输出缩进格式的 JSON。
func WithPretty(pretty bool) Option {
	return func(o *options) {
		o.pretty = pretty
	}
}

// WithIndent 设置缩进字符串，仅在 [WithPretty] 开启时生效。
func WithIndent(indent string) Option {
	return func(o *options) {
		o.indent = indent
	}
}

// WithMaxDepth 设置序列化的最大嵌套深度，n <= 0 时使用默认值。
func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

// WithFuncs 注册表达式函数，同名函数覆盖内置函数。
//
// 多次调用会合并。
func WithFuncs(funcs map[string]expr.Func) Option {
	return func(o *options) {
		if o.funcs == nil {
			o.funcs = make(map[string]expr.Func, len(funcs))
		}
		maps.Copy(o.funcs, funcs)
	}
}

// WithCacheSize 设置编译缓存容量，0 表示禁用缓存。
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// WithLogger 设置日志输出，默认使用 slog.Default()。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
