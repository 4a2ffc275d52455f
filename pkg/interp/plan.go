package interp

import (
	"reflect"
	"strings"

	"github.com/lwmacct/251207-go-pkg-safetpl/pkg/jsonesc"
)

// Plan 是编译后的拼接计划，创建后不可变。
type Plan struct {
	segments []Segment
}

// CompileSegments 合并相邻字面量段并剔除空字面量，表达式段保持原样。
func CompileSegments(segments []Segment) *Plan {
	out := make([]Segment, 0, len(segments))

	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			out = append(out, Literal(lit.String()))
			lit.Reset()
		}
	}
	for _, s := range segments {
		if s.Kind == KindLiteral {
			lit.WriteString(s.Text)
			continue
		}
		flush()
		out = append(out, s)
	}
	flush()

	return &Plan{segments: out}
}

// Compile 扫描并编译模板文本。
func Compile(text string, p Parser) (*Plan, error) {
	segments, err := Extract(text, p)
	if err != nil {
		return nil, err
	}

	return CompileSegments(segments), nil
}

// Segments 返回计划中段的副本。
func (p *Plan) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)

	return out
}

// Len 返回计划中的段数。
func (p *Plan) Len() int {
	return len(p.segments)
}

// Render 逐段求值并拼接。
//
//   - 字面量段原样输出
//   - 转义段的结果经过 [jsonesc.Serialize]
//   - 原样段输出字符串或 [jsonesc.Raw] 的载荷，其他值按序列化文本输出
//   - 结果为 nil 时输出空串
//
// opts 透传给序列化器。
func (p *Plan) Render(ev Evaluator, opts ...jsonesc.Option) (string, error) {
	switch len(p.segments) {
	case 0:
		return "", nil
	case 1:
		return renderSegment(p.segments[0], ev, opts)
	}

	var sb strings.Builder
	for _, s := range p.segments {
		text, err := renderSegment(s, ev, opts)
		if err != nil {
			return "", err
		}
		sb.WriteString(text)
	}

	return sb.String(), nil
}

// Render 编译并立即求值模板，适合一次性渲染。
func Render(text string, p Parser, ev Evaluator, opts ...jsonesc.Option) (string, error) {
	plan, err := Compile(text, p)
	if err != nil {
		return "", err
	}

	return plan.Render(ev, opts...)
}

func renderSegment(s Segment, ev Evaluator, opts []jsonesc.Option) (string, error) {
	if s.Kind == KindLiteral {
		return s.Text, nil
	}

	v, err := ev.Eval(s.Expr)
	if err != nil {
		return "", &EvalError{Expr: s.Expr.String(), Cause: err}
	}
	if isAbsent(v) {
		return "", nil
	}

	if !s.Escape {
		if text, ok := rawText(v); ok {
			return text, nil
		}
	}

	out, err := jsonesc.Serialize(v, opts...)
	if err != nil {
		return "", &EvalError{Expr: s.Expr.String(), Cause: err}
	}

	return out, nil
}

// rawText 取出字符串或字节切片的原文，包括以它们为底层类型的命名类型。
// 其余类型（包括 jsonesc.Raw）交给序列化器。
func rawText(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	}

	rv := reflect.ValueOf(v)
	switch {
	case rv.Kind() == reflect.String:
		return rv.String(), true
	case rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8:
		return string(rv.Bytes()), true
	}

	return "", false
}

func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)

	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
