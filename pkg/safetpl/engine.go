package safetpl

import (
	"fmt"
	"log/slog"

	"github.com/lwmacct/251207-go-pkg-safetpl/pkg/expr"
	"github.com/lwmacct/251207-go-pkg-safetpl/pkg/interp"
	"github.com/lwmacct/251207-go-pkg-safetpl/pkg/jsonesc"
)

// Engine 编译并渲染模板。
//
// Engine 创建后不可修改，可被多个 goroutine 并发使用。
type Engine struct {
	reader  expr.Reader
	funcs   map[string]expr.Func
	serOpts []jsonesc.Option
	cache   *planCache
	logger  *slog.Logger
}

// New 创建 Engine。
func New(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Engine{
		funcs: o.funcs,
		serOpts: []jsonesc.Option{
			jsonesc.WithPretty(o.pretty),
			jsonesc.WithIndent(o.indent),
			jsonesc.WithMaxDepth(o.maxDepth),
		},
		cache:  newPlanCache(o.cacheSize),
		logger: o.logger,
	}
}

// Compile 编译模板，结果按模板文本缓存。
//
// 编译失败不会被缓存。
func (e *Engine) Compile(text string) (*interp.Plan, error) {
	if plan, ok := e.cache.get(text); ok {
		e.log().Debug("Template plan cache hit", "size", len(text))
		return plan, nil
	}

	plan, err := interp.Compile(text, e.reader)
	if err != nil {
		return nil, err
	}
	e.cache.put(text, plan)
	e.log().Debug("Compiled template", "size", len(text), "segments", plan.Len())

	return plan, nil
}

// Render 以 data 为数据根渲染模板。
//
// data 通常是 map[string]any、[jsonesc.Object] 或结构体指针。
func (e *Engine) Render(text string, data any) (string, error) {
	plan, err := e.Compile(text)
	if err != nil {
		return "", err
	}

	return e.Execute(plan, data)
}

// Execute 以 data 为数据根求值已编译的模板。
func (e *Engine) Execute(plan *interp.Plan, data any) (string, error) {
	return plan.Render(expr.NewEnv(data, e.funcs), e.serOpts...)
}

// Serialize 使用 Engine 的序列化选项输出 v 的 JSON 文本。
func (e *Engine) Serialize(v any) (string, error) {
	return jsonesc.Serialize(v, e.serOpts...)
}

// CacheLen 返回当前缓存的编译结果数量。
func (e *Engine) CacheLen() int {
	return e.cache.len()
}

// ResetCache 清空编译缓存。
func (e *Engine) ResetCache() {
	e.cache.clear()
}

// log 在未设置 logger 时跟随 slog.SetDefault 的变化。
func (e *Engine) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}

	return slog.Default()
}

var defaultEngine = New()

// Render 使用默认 Engine 渲染模板。
func Render(text string, data any) (string, error) {
	return defaultEngine.Render(text, data)
}

// MustRender 调用 [Render] 并在失败时 panic，适合静态模板。
func MustRender(text string, data any) string {
	out, err := Render(text, data)
	if err != nil {
		panic(fmt.Sprintf("safetpl: %v", err))
	}

	return out
}
