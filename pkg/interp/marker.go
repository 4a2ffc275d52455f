package interp

import "strings"

// Marker 描述一种插值标记。
type Marker struct {
	// Token 是标记的字面量，如 "#{"。
	Token string
	// Atomic 为 true 时表达式需要显式的 "}" 闭合。
	Atomic bool
	// Escape 为 true 时结果经过转义序列化。
	Escape bool
}

// 四种标记，顺序即同位置时的优先顺序。
var (
	MarkerEscape       = Marker{Token: "#{", Atomic: true, Escape: true}
	MarkerInvokeEscape = Marker{Token: "#(", Atomic: false, Escape: true}
	MarkerRaw          = Marker{Token: "#!{", Atomic: true, Escape: false}
	MarkerInvokeRaw    = Marker{Token: "#!(", Atomic: false, Escape: false}
)

var markers = [...]Marker{MarkerEscape, MarkerInvokeEscape, MarkerRaw, MarkerInvokeRaw}

// Markers 按固定顺序返回全部标记。
func Markers() []Marker {
	return markers[:]
}

// exprOffset 返回表达式相对标记起点的偏移。
// 调用标记保留左括号，交给解析器作为表达式的一部分。
func (m Marker) exprOffset() int {
	if m.Atomic {
		return len(m.Token)
	}

	return len(m.Token) - 1
}

// FindEarliestMarker 返回 text 中 from 之后最早出现的标记。
//
// 四种标记在第二个字符处互不重叠，同一位置至多匹配一种；
// 按 [Markers] 的顺序比较保证结果确定。
func FindEarliestMarker(text string, from int) (int, Marker, bool) {
	if from < 0 {
		from = 0
	}

	for i := from; i < len(text); {
		j := strings.IndexByte(text[i:], '#')
		if j < 0 {
			break
		}
		i += j
		for _, m := range markers {
			if strings.HasPrefix(text[i:], m.Token) {
				return i, m, true
			}
		}
		i++
	}

	return -1, Marker{}, false
}
