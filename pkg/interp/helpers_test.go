package interp_test

import (
	"errors"
	"strings"

	"github.com/lwmacct/251207-go-pkg-safetpl/pkg/interp"
)

// name 是测试用的表达式：标识符或括号内的原文。
type name string

func (n name) String() string { return string(n) }

// blob 是以 []byte 为底层类型的命名类型。
type blob []byte

// stubParser 识别 [a-z_]+ 标识符与括号平衡的分组。
type stubParser struct{}

func (stubParser) Read(text string) (interp.Expr, string, bool) {
	i := 0
	for i < len(text) && text[i] == ' ' {
		i++
	}
	if i < len(text) && text[i] == '(' {
		return readGroup(text[i:])
	}

	j := i
	for j < len(text) && (text[j] >= 'a' && text[j] <= 'z' || text[j] == '_') {
		j++
	}
	if j == i {
		return nil, "", false
	}

	return name(text[i:j]), text[j:], true
}

func readGroup(text string) (interp.Expr, string, bool) {
	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return name(text[1:i]), text[i+1:], true
			}
		}
	}

	return nil, "", false
}

// groupParser 记录 ReadGroup 的调用次数。
type groupParser struct {
	stubParser
	groups *int
}

func (p groupParser) ReadGroup(text string) (interp.Expr, string, bool) {
	*p.groups++
	return readGroup(text)
}

var errBoom = errors.New("boom")

// stubEval 从 data 取值；"upper x" 返回大写后的 x。
func stubEval(data map[string]any) interp.Evaluator {
	return interp.EvaluatorFunc(func(e interp.Expr) (any, error) {
		s := e.String()
		if s == "boom" {
			return nil, errBoom
		}
		if arg, ok := strings.CutPrefix(s, "upper "); ok {
			v, _ := data[arg].(string)
			return strings.ToUpper(v), nil
		}

		return data[s], nil
	})
}
