package expr

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokOp
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokComma
	tokDot
	// tokOther 是表达式语法之外的字符，如 "}"，读取到此处即停止。
	tokOther
)

type token struct {
	kind  tokenKind
	value string
	pos   int
	end   int
}

var twoCharOps = [...]string{"==", "!=", "<=", ">=", "&&", "||"}

// lex 从 pos 开始读取下一个 token，从不返回错误：
// 无法识别的内容作为 tokOther 交给解析器决定。
func lex(src string, pos int) token {
	for pos < len(src) {
		r, size := utf8.DecodeRuneInString(src[pos:])
		if !unicode.IsSpace(r) {
			break
		}
		pos += size
	}
	if pos >= len(src) {
		return token{kind: tokEOF, pos: pos, end: pos}
	}

	r, size := utf8.DecodeRuneInString(src[pos:])
	switch {
	case isIdentStart(r):
		end := pos + size
		for end < len(src) {
			r, size := utf8.DecodeRuneInString(src[end:])
			if !isIdentChar(r) {
				break
			}
			end += size
		}
		return token{kind: tokIdent, value: src[pos:end], pos: pos, end: end}
	case r >= '0' && r <= '9':
		return lexNumber(src, pos)
	case r == '"' || r == '\'':
		return lexString(src, pos, byte(r))
	}

	for _, op := range twoCharOps {
		if strings.HasPrefix(src[pos:], op) {
			return token{kind: tokOp, value: op, pos: pos, end: pos + 2}
		}
	}

	kind := tokOther
	switch r {
	case '+', '-', '*', '/', '%', '<', '>', '!':
		kind = tokOp
	case '(':
		kind = tokLParen
	case ')':
		kind = tokRParen
	case '[':
		kind = tokLBracket
	case ']':
		kind = tokRBracket
	case ',':
		kind = tokComma
	case '.':
		kind = tokDot
	}

	return token{kind: kind, value: src[pos : pos+size], pos: pos, end: pos + size}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentChar(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func lexNumber(src string, pos int) token {
	end := skipDigits(src, pos)
	// 小数点后必须跟数字，否则 "." 属于字段访问
	if end+1 < len(src) && src[end] == '.' && isDigit(src[end+1]) {
		end = skipDigits(src, end+1)
	}
	// 指数部分：e 或 E，可选符号，至少一位数字
	if end < len(src) && (src[end] == 'e' || src[end] == 'E') {
		exp := end + 1
		if exp < len(src) && (src[exp] == '+' || src[exp] == '-') {
			exp++
		}
		if exp < len(src) && isDigit(src[exp]) {
			end = skipDigits(src, exp)
		}
	}

	return token{kind: tokNumber, value: src[pos:end], pos: pos, end: end}
}

func skipDigits(src string, i int) int {
	for i < len(src) && isDigit(src[i]) {
		i++
	}

	return i
}

// lexString 读取引号字符串并解码转义。
//
// 未闭合、未知转义或非法 \u 序列都返回 tokOther。
func lexString(src string, pos int, quote byte) token {
	bad := token{kind: tokOther, value: src[pos : pos+1], pos: pos, end: pos + 1}

	var sb strings.Builder
	for i := pos + 1; i < len(src); i++ {
		c := src[i]
		switch {
		case c == quote:
			return token{kind: tokString, value: sb.String(), pos: pos, end: i + 1}
		case c == '\\' && i+1 < len(src):
			i++
			switch src[i] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case 'b':
				sb.WriteByte('\b')
			case 'f':
				sb.WriteByte('\f')
			case '0':
				sb.WriteByte(0)
			case '\\', '"', '\'', '/':
				sb.WriteByte(src[i])
			case 'u':
				r, next, ok := lexUnicodeEscape(src, i+1)
				if !ok {
					return bad
				}
				sb.WriteRune(r)
				i = next - 1
			default:
				return bad
			}
		default:
			sb.WriteByte(c)
		}
	}

	return bad
}

// lexUnicodeEscape 解码 src[i:] 处的四位十六进制码点，代理对需成对出现。
// 返回码点与其后的位置。
func lexUnicodeEscape(src string, i int) (rune, int, bool) {
	r, ok := hex4(src, i)
	if !ok {
		return 0, 0, false
	}
	i += 4
	if !utf16.IsSurrogate(r) {
		return r, i, true
	}

	if i+1 >= len(src) || src[i] != '\\' || src[i+1] != 'u' {
		return 0, 0, false
	}
	lo, ok := hex4(src, i+2)
	if !ok {
		return 0, 0, false
	}
	pair := utf16.DecodeRune(r, lo)
	if pair == utf8.RuneError {
		return 0, 0, false
	}

	return pair, i + 6, true
}

func hex4(src string, i int) (rune, bool) {
	if i+4 > len(src) {
		return 0, false
	}
	n, err := strconv.ParseUint(src[i:i+4], 16, 32)
	if err != nil {
		return 0, false
	}

	return rune(n), true
}
