package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// Node 是表达式语法树的节点。
type Node interface {
	String() string
	Eval(env *Env) (any, error)
}

// LiteralNode 字面量。
type LiteralNode struct {
	Value any
}

func (n *LiteralNode) String() string {
	switch v := n.Value.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprint(v)
	}
}

func (n *LiteralNode) Eval(*Env) (any, error) {
	return n.Value, nil
}

// IdentNode 数据根上的变量。
type IdentNode struct {
	Name string
}

func (n *IdentNode) String() string { return n.Name }

func (n *IdentNode) Eval(env *Env) (any, error) {
	return env.Lookup(n.Name), nil
}

// FieldNode 字段访问 obj.name。
type FieldNode struct {
	Object Node
	Name   string
}

func (n *FieldNode) String() string { return n.Object.String() + "." + n.Name }

func (n *FieldNode) Eval(env *Env) (any, error) {
	obj, err := n.Object.Eval(env)
	if err != nil {
		return nil, err
	}
	v, _ := field(obj, n.Name)

	return v, nil
}

// IndexNode 下标访问 obj[index]。
type IndexNode struct {
	Object Node
	Index  Node
}

func (n *IndexNode) String() string {
	return n.Object.String() + "[" + n.Index.String() + "]"
}

func (n *IndexNode) Eval(env *Env) (any, error) {
	obj, err := n.Object.Eval(env)
	if err != nil {
		return nil, err
	}
	idx, err := n.Index.Eval(env)
	if err != nil {
		return nil, err
	}

	return index(obj, idx)
}

// CallNode 函数调用。
type CallNode struct {
	Name string
	Args []Node
}

func (n *CallNode) String() string {
	return n.Name + "(" + joinNodes(n.Args) + ")"
}

func (n *CallNode) Eval(env *Env) (any, error) {
	fn, ok := env.function(n.Name)
	if !ok {
		return nil, fmt.Errorf("expr: unknown function %q", n.Name)
	}

	args := make([]any, len(n.Args))
	for i, arg := range n.Args {
		v, err := arg.Eval(env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	v, err := fn(args...)
	if err != nil {
		return nil, fmt.Errorf("expr: %s: %w", n.Name, err)
	}

	return v, nil
}

// ListNode 列表字面量。
type ListNode struct {
	Items []Node
}

func (n *ListNode) String() string { return "[" + joinNodes(n.Items) + "]" }

func (n *ListNode) Eval(env *Env) (any, error) {
	out := make([]any, len(n.Items))
	for i, item := range n.Items {
		v, err := item.Eval(env)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

// UnaryNode 一元运算 !x、-x。
type UnaryNode struct {
	Op      string
	Operand Node
}

func (n *UnaryNode) String() string { return n.Op + n.Operand.String() }

func (n *UnaryNode) Eval(env *Env) (any, error) {
	v, err := n.Operand.Eval(env)
	if err != nil {
		return nil, err
	}

	if n.Op == "!" {
		return !truthy(v), nil
	}
	if i, ok := toInt64(v); ok {
		return -i, nil
	}
	if f, ok := toFloat64(v); ok {
		return -f, nil
	}

	return nil, fmt.Errorf("expr: cannot negate %T", v)
}

// BinaryNode 二元运算。
type BinaryNode struct {
	Op    string
	Left  Node
	Right Node
}

func (n *BinaryNode) String() string {
	return "(" + n.Left.String() + " " + n.Op + " " + n.Right.String() + ")"
}

func (n *BinaryNode) Eval(env *Env) (any, error) {
	left, err := n.Left.Eval(env)
	if err != nil {
		return nil, err
	}

	// 短路求值，返回操作数本身
	switch n.Op {
	case "&&":
		if !truthy(left) {
			return left, nil
		}
		return n.Right.Eval(env)
	case "||":
		if truthy(left) {
			return left, nil
		}
		return n.Right.Eval(env)
	}

	right, err := n.Right.Eval(env)
	if err != nil {
		return nil, err
	}

	return binary(n.Op, left, right)
}

func joinNodes(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}

	return strings.Join(parts, ", ")
}
