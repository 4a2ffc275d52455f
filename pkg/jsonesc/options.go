package jsonesc

// DefaultMaxDepth 是默认的最大嵌套深度。
const DefaultMaxDepth = 512

// options 序列化选项。
type options struct {
	pretty   bool
	indent   string
	maxDepth int
}

// Option 序列化选项函数。
type Option func(*options)

func newOptions(opts []Option) options {
	o := options{
		indent:   "  ",
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithPretty 启用换行与缩进。
//
// 通常来自启动时加载的配置（render.pretty），不应在并发序列化过程中切换。
func WithPretty(pretty bool) Option {
	return func(o *options) {
		o.pretty = pretty
	}
}

// WithIndent 设置美化输出的缩进字符串，默认两个空格。
func WithIndent(indent string) Option {
	return func(o *options) {
		o.indent = indent
	}
}

// WithMaxDepth 设置最大嵌套深度，超出时返回 [ErrUnsupportedValue]。
//
// 循环引用的结构会在此处被截断；n <= 0 表示使用 [DefaultMaxDepth]。
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = DefaultMaxDepth
		}
		o.maxDepth = n
	}
}
