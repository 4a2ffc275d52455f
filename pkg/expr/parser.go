package expr

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/lwmacct/251207-go-pkg-safetpl/pkg/interp"
)

// SyntaxError 表示表达式无法解析。
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expr: syntax error at position %d: %s", e.Pos, e.Msg)
}

// Reader 从文本头部读取一个表达式，零值可用。
type Reader struct{}

var (
	_ interp.Parser      = Reader{}
	_ interp.GroupParser = Reader{}
)

// Read 读取尽可能长的一个表达式，返回其后的剩余文本。
func (Reader) Read(text string) (interp.Expr, string, bool) {
	p := newParser(text)
	n, err := p.parseExpr()
	if err != nil || p.end == 0 {
		return nil, "", false
	}

	return n, text[p.end:], true
}

// ReadGroup 只读取紧邻文本开头的一个括号分组。
func (Reader) ReadGroup(text string) (interp.Expr, string, bool) {
	p := newParser(text)
	if p.tok.kind != tokLParen || p.tok.pos != 0 {
		return nil, "", false
	}
	n, err := p.parseParen()
	if err != nil {
		return nil, "", false
	}

	return n, text[p.end:], true
}

// Parse 解析完整的表达式文本，不允许多余内容。
func Parse(text string) (Node, error) {
	p := newParser(text)
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf("unexpected %q", p.tok.value)
	}

	return n, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// 递归下降解析
// ═══════════════════════════════════════════════════════════════════════════

type parser struct {
	src string
	tok token
	// end 是最后一个已消费 token 的结束位置。
	end int
}

func newParser(src string) *parser {
	return &parser{src: src, tok: lex(src, 0)}
}

func (p *parser) advance() {
	p.end = p.tok.end
	p.tok = lex(p.src, p.tok.end)
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Pos: p.tok.pos, Msg: fmt.Sprintf(format, args...)}
}

// binaryLevels 按优先级从低到高排列。
var binaryLevels = [][]string{
	{"||"},
	{"&&"},
	{"==", "!="},
	{"<", "<=", ">", ">="},
	{"+", "-"},
	{"*", "/", "%"},
}

func (p *parser) parseExpr() (Node, error) {
	return p.parseBinary(0)
}

func (p *parser) parseBinary(level int) (Node, error) {
	if level == len(binaryLevels) {
		return p.parseUnary()
	}

	left, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokOp && slices.Contains(binaryLevels[level], p.tok.value) {
		op := p.tok.value
		p.advance()
		right, err := p.parseBinary(level + 1)
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}

	return left, nil
}

func (p *parser) parseUnary() (Node, error) {
	if p.tok.kind == tokOp && (p.tok.value == "!" || p.tok.value == "-") {
		op := p.tok.value
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryNode{Op: op, Operand: operand}, nil
	}

	return p.parsePostfix()
}

func (p *parser) parsePostfix() (Node, error) {
	n, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.tok.kind {
		case tokDot:
			p.advance()
			if p.tok.kind != tokIdent {
				return nil, p.errorf("expected field name after '.'")
			}
			n = &FieldNode{Object: n, Name: p.tok.value}
			p.advance()
		case tokLBracket:
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if p.tok.kind != tokRBracket {
				return nil, p.errorf("expected ']'")
			}
			p.advance()
			n = &IndexNode{Object: n, Index: idx}
		default:
			return n, nil
		}
	}
}

func (p *parser) parsePrimary() (Node, error) {
	tok := p.tok

	switch tok.kind {
	case tokNumber:
		p.advance()
		v, err := parseNumber(tok.value)
		if err != nil {
			return nil, &SyntaxError{Pos: tok.pos, Msg: err.Error()}
		}
		return &LiteralNode{Value: v}, nil

	case tokString:
		p.advance()
		return &LiteralNode{Value: tok.value}, nil

	case tokIdent:
		p.advance()
		switch tok.value {
		case "true":
			return &LiteralNode{Value: true}, nil
		case "false":
			return &LiteralNode{Value: false}, nil
		case "nil", "null":
			return &LiteralNode{Value: nil}, nil
		}
		if p.tok.kind == tokLParen {
			return p.parseCall(tok.value)
		}
		return &IdentNode{Name: tok.value}, nil

	case tokLParen:
		return p.parseParen()

	case tokLBracket:
		return p.parseList()

	case tokEOF:
		return nil, p.errorf("unexpected end of expression")

	default:
		return nil, p.errorf("unexpected %q", tok.value)
	}
}

func (p *parser) parseParen() (Node, error) {
	p.advance() // (
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokRParen {
		return nil, p.errorf("expected ')'")
	}
	p.advance()

	return n, nil
}

func (p *parser) parseCall(name string) (Node, error) {
	args, err := p.parseArgs(tokRParen)
	if err != nil {
		return nil, err
	}

	return &CallNode{Name: name, Args: args}, nil
}

func (p *parser) parseList() (Node, error) {
	items, err := p.parseArgs(tokRBracket)
	if err != nil {
		return nil, err
	}

	return &ListNode{Items: items}, nil
}

// parseArgs 解析以逗号分隔、以 closing 结尾的表达式列表，当前 token 为左括号。
func (p *parser) parseArgs(closing tokenKind) ([]Node, error) {
	p.advance()

	var items []Node
	if p.tok.kind == closing {
		p.advance()
		return items, nil
	}
	for {
		n, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, n)

		switch p.tok.kind {
		case tokComma:
			p.advance()
		case closing:
			p.advance()
			return items, nil
		default:
			return nil, p.errorf("expected ',' or closing bracket")
		}
	}
}

// parseNumber 将数字字面量转为 int64；带小数或指数、或超出 int64 的整数转为 float64。
// 超出 float64 范围的字面量返回错误。
func parseNumber(text string) (any, error) {
	if !strings.ContainsAny(text, ".eE") {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return i, nil
		}
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, err
	}

	return f, nil
}
