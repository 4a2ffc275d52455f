package interp

import (
	"errors"
	"fmt"
)

// ErrMalformedTemplate 表示原子标记的表达式后缺少 "}"。
var ErrMalformedTemplate = errors.New("interp: malformed template")

// MalformedTemplateError 描述未闭合的原子标记。
type MalformedTemplateError struct {
	// Offset 是标记在模板中的字节偏移。
	Offset int
	Marker string
	Expr   string
}

func (e *MalformedTemplateError) Error() string {
	return fmt.Sprintf("interp: malformed template at offset %d: %s%s not followed by '}'", e.Offset, e.Marker, e.Expr)
}

// Is 使 errors.Is(err, ErrMalformedTemplate) 成立。
func (e *MalformedTemplateError) Is(target error) bool {
	return target == ErrMalformedTemplate
}

// EvalError 包装表达式求值或序列化失败。
type EvalError struct {
	Expr  string
	Cause error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("interp: evaluate %s: %v", e.Expr, e.Cause)
}

func (e *EvalError) Unwrap() error {
	return e.Cause
}
