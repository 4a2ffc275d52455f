package interp

import (
	"fmt"
	"strconv"
)

// SegmentKind 区分字面量段与表达式段。
type SegmentKind uint8

const (
	KindLiteral SegmentKind = iota
	KindExpr
)

// Segment 是模板切分后的一段。
type Segment struct {
	Kind SegmentKind
	// Text 是字面量段的文本。
	Text string
	// Expr 与 Escape 仅对表达式段有效。
	Expr   Expr
	Escape bool
}

// Literal 创建字面量段。
func Literal(text string) Segment {
	return Segment{Kind: KindLiteral, Text: text}
}

// Expression 创建表达式段。
func Expression(expr Expr, escape bool) Segment {
	return Segment{Kind: KindExpr, Expr: expr, Escape: escape}
}

func (s Segment) String() string {
	if s.Kind == KindLiteral {
		return "Literal(" + strconv.Quote(s.Text) + ")"
	}
	if s.Escape {
		return fmt.Sprintf("Escape(%s)", s.Expr)
	}

	return fmt.Sprintf("Raw(%s)", s.Expr)
}
