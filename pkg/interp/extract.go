package interp

import (
	"strings"
	"unicode"
)

// Extract 将模板切分为有序的段序列。
//
// 字面量段可能为空，由 [CompileSegments] 负责合并与剔除。
// 解析失败的标记作为字面量保留，扫描从标记之后继续。
// 每一轮游标至少前进一个标记长度，保证有限输入必然终止。
func Extract(text string, p Parser) ([]Segment, error) {
	var segments []Segment

	pos := 0
	for {
		idx, m, ok := FindEarliestMarker(text, pos)
		if !ok {
			segments = append(segments, Literal(text[pos:]))
			return segments, nil
		}
		segments = append(segments, Literal(text[pos:idx]))

		input := text[idx+m.exprOffset():]
		expr, rest, ok := read(p, m, input)
		if !ok || len(rest) > len(input) {
			segments = append(segments, Literal(m.Token))
			pos = idx + len(m.Token)

			continue
		}

		next := len(text) - len(rest)
		if m.Atomic {
			trimmed := strings.TrimLeftFunc(rest, unicode.IsSpace)
			if !strings.HasPrefix(trimmed, "}") {
				return nil, &MalformedTemplateError{Offset: idx, Marker: m.Token, Expr: expr.String()}
			}
			next = len(text) - len(trimmed) + 1
		}

		segments = append(segments, Expression(expr, m.Escape))
		pos = next
	}
}

func read(p Parser, m Marker, input string) (Expr, string, bool) {
	if !m.Atomic {
		if gp, ok := p.(GroupParser); ok {
			return gp.ReadGroup(input)
		}
	}

	return p.Read(input)
}
