package interp

// Expr 是解析器产出的不透明表达式。
type Expr interface {
	String() string
}

// Parser 从文本头部读取一个完整的表达式。
//
// 成功时返回表达式与未消费的剩余文本（必须是输入的后缀）；
// 文本头部不是合法表达式时返回 ok=false，而不是 panic。
type Parser interface {
	Read(text string) (expr Expr, rest string, ok bool)
}

// GroupParser 是可选能力：只读取一个括号平衡的分组。
//
// 调用标记 #( / #!( 优先使用 ReadGroup，
// 避免把分组后面的普通文本当作表达式的一部分。
type GroupParser interface {
	Parser
	ReadGroup(text string) (expr Expr, rest string, ok bool)
}

// Evaluator 在运行时将表达式求值为任意值。
type Evaluator interface {
	Eval(expr Expr) (any, error)
}

// EvaluatorFunc 是函数形式的 [Evaluator]。
type EvaluatorFunc func(expr Expr) (any, error)

// Eval 调用 f(expr)。
func (f EvaluatorFunc) Eval(expr Expr) (any, error) {
	return f(expr)
}
