package config

import (
	"fmt"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// 环境变量展开
// ═══════════════════════════════════════════════════════════════════════════

// expandEnv 在解析前展开配置文件中的环境变量引用。
//
// 支持的写法：
//   - ${VAR}：未设置时为空串
//   - ${VAR:-word} / ${VAR-word}：VAR 未设置时取 word，带冒号时空值也取 word
//   - ${VAR:?msg} / ${VAR?msg}：VAR 未设置时返回错误，带冒号时空值也报错
//   - $$：输出单个 $
//
// word 内可以再嵌套 ${...}；无法识别的 ${...} 原样保留。
func expandEnv(text string, lookup func(string) (string, bool)) (string, error) {
	var sb strings.Builder
	sb.Grow(len(text))

	for {
		i := strings.IndexByte(text, '$')
		if i < 0 || i+1 >= len(text) {
			sb.WriteString(text)
			return sb.String(), nil
		}
		sb.WriteString(text[:i])

		switch text[i+1] {
		case '$':
			sb.WriteByte('$')
			text = text[i+2:]
			continue
		case '{':
		default:
			sb.WriteByte('$')
			text = text[i+1:]
			continue
		}

		end := closingBrace(text, i+2)
		if end < 0 {
			sb.WriteString(text[i:])
			return sb.String(), nil
		}

		out, ok, err := expandParam(text[i+2:end], lookup)
		if err != nil {
			return "", err
		}
		if ok {
			sb.WriteString(out)
		} else {
			sb.WriteString(text[i : end+1])
		}
		text = text[end+1:]
	}
}

// expandParam 展开单个 ${...} 的内部表达式，ok 为 false 表示无法识别。
func expandParam(expr string, lookup func(string) (string, bool)) (string, bool, error) {
	n := 0
	for n < len(expr) && isEnvNameByte(expr[n], n == 0) {
		n++
	}
	if n == 0 {
		return "", false, nil
	}

	name, rest := expr[:n], expr[n:]
	val, set := lookup(name)
	if rest == "" {
		return val, true, nil
	}

	op, colon := strings.CutPrefix(rest, ":")
	if op == "" {
		return "", false, nil
	}
	missing := !set || colon && val == ""

	switch op[0] {
	case '-':
		if !missing {
			return val, true, nil
		}
		word, err := expandEnv(op[1:], lookup)
		if err != nil {
			return "", false, err
		}
		return word, true, nil
	case '?':
		if !missing {
			return val, true, nil
		}
		msg := op[1:]
		if msg == "" {
			msg = "parameter null or not set"
		}
		return "", false, fmt.Errorf("%s: %s", name, msg)
	default:
		return "", false, nil
	}
}

func isEnvNameByte(c byte, first bool) bool {
	switch {
	case c == '_', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
		return true
	default:
		return !first && c >= '0' && c <= '9'
	}
}

// closingBrace 返回与 start 之前的 "${" 配对的 "}" 位置，找不到时返回 -1。
func closingBrace(text string, start int) int {
	depth := 0
	for i := start; i < len(text); i++ {
		switch {
		case text[i] == '$' && i+1 < len(text) && text[i+1] == '{':
			depth++
			i++
		case text[i] == '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}

	return -1
}
