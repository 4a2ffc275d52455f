package dataload

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251207-go-pkg-safetpl/pkg/jsonesc"
)

// RawTag 标记需要原样输出的标量。
const RawTag = "!raw"

// ErrUnsupportedNode 表示文档中出现了无法转换的节点。
var ErrUnsupportedNode = errors.New("dataload: unsupported node")

// Load 读取并解析数据文件。
func Load(path string) (any, error) {
	content, err := os.ReadFile(path) //nolint:gosec // path is provided by the caller
	if err != nil {
		return nil, fmt.Errorf("dataload: read %s: %w", path, err)
	}

	v, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return v, nil
}

// Parse 解析单个 YAML / JSON 文档，空文档返回 nil。
//
// 多文档输入只读取第一个文档。
func Parse(content []byte) (any, error) {
	var doc yamlv3.Node
	if err := yamlv3.NewDecoder(strings.NewReader(string(content))).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("dataload: %w", err)
	}

	return FromNode(&doc)
}

// FromNode 将已解析的 yaml 节点转换为数据值。
//
// 引用自身所在节点的别名，以及别名展开比例过高的文档
// 都返回 [ErrUnsupportedNode]。
func FromNode(n *yamlv3.Node) (any, error) {
	c := &converter{active: make(map[*yamlv3.Node]bool)}
	return c.node(n)
}

// ═══════════════════════════════════════════════════════════════════════════
// 节点转换
// ═══════════════════════════════════════════════════════════════════════════

// converter 记录当前下降路径上的集合节点与展开计数。
type converter struct {
	active map[*yamlv3.Node]bool
	// total 是已转换的节点数，expanded 是其中经由别名展开的部分。
	total      int
	expanded   int
	aliasDepth int
}

// allowedAliasRatio 返回允许的别名展开比例：
// 小文档几乎不限，节点数越多比例越低，与 yaml.v3 解码器的限制一致。
func allowedAliasRatio(total int) float64 {
	switch {
	case total <= 400_000:
		return 0.99
	case total >= 4_000_000:
		return 0.10
	default:
		return 0.99 - 0.89*float64(total-400_000)/3_600_000
	}
}

func (c *converter) count(n *yamlv3.Node) error {
	c.total++
	if c.aliasDepth > 0 {
		c.expanded++
	}
	if c.expanded > 100 && c.total > 1000 &&
		float64(c.expanded)/float64(c.total) > allowedAliasRatio(c.total) {
		return nodeError(n, "document contains excessive aliasing")
	}

	return nil
}

// enter 标记集合节点进入下降路径，返回的函数负责退出。
func (c *converter) enter(n *yamlv3.Node) (func(), error) {
	if c.active[n] {
		return nil, nodeError(n, "recursive alias")
	}
	c.active[n] = true

	return func() { delete(c.active, n) }, nil
}

func (c *converter) node(n *yamlv3.Node) (any, error) {
	if err := c.count(n); err != nil {
		return nil, err
	}

	switch n.Kind {
	case yamlv3.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return c.node(n.Content[0])
	case yamlv3.AliasNode:
		if n.Alias == nil {
			return nil, nodeError(n, "unknown anchor")
		}
		c.aliasDepth++
		defer func() { c.aliasDepth-- }()
		return c.node(n.Alias)
	case yamlv3.SequenceNode:
		if n.Tag == RawTag {
			return nil, nodeError(n, "!raw applies to scalars only")
		}
		leave, err := c.enter(n)
		if err != nil {
			return nil, err
		}
		defer leave()

		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := c.node(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yamlv3.MappingNode:
		if n.Tag == RawTag {
			return nil, nodeError(n, "!raw applies to scalars only")
		}
		return c.mapping(n, nil)
	case yamlv3.ScalarNode:
		return scalar(n)
	default:
		return nil, nodeError(n, fmt.Sprintf("node kind %d", n.Kind))
	}
}

// mapping 按出现顺序收集键值，重复键保留首次出现的位置与最后一次的值。
func (c *converter) mapping(n *yamlv3.Node, obj jsonesc.Object) (jsonesc.Object, error) {
	leave, err := c.enter(n)
	if err != nil {
		return nil, err
	}
	defer leave()

	if obj == nil {
		obj = make(jsonesc.Object, 0, len(n.Content)/2)
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]

		if keyNode.Kind == yamlv3.ScalarNode && keyNode.ShortTag() == "!!merge" {
			merged, err := c.merge(valNode, obj)
			if err != nil {
				return nil, err
			}
			obj = merged

			continue
		}

		key, err := mappingKey(keyNode)
		if err != nil {
			return nil, err
		}
		v, err := c.node(valNode)
		if err != nil {
			return nil, err
		}
		obj = obj.Set(key, v)
	}

	return obj, nil
}

// merge 处理 "<<: *anchor" 与 "<<: [*a, *b]"，显式键与先出现的合并源优先。
func (c *converter) merge(n *yamlv3.Node, obj jsonesc.Object) (jsonesc.Object, error) {
	if err := c.count(n); err != nil {
		return nil, err
	}

	target := n
	if target.Kind == yamlv3.AliasNode {
		if target.Alias == nil {
			return nil, nodeError(n, "unknown anchor")
		}
		target = target.Alias
		c.aliasDepth++
		defer func() { c.aliasDepth-- }()
	}

	switch target.Kind {
	case yamlv3.MappingNode:
		src, err := c.mapping(target, nil)
		if err != nil {
			return nil, err
		}
		for _, m := range src {
			if _, exists := obj.Get(m.Key); !exists {
				obj = append(obj, m)
			}
		}
		return obj, nil
	case yamlv3.SequenceNode:
		leave, err := c.enter(target)
		if err != nil {
			return nil, err
		}
		defer leave()

		for _, item := range target.Content {
			if obj, err = c.merge(item, obj); err != nil {
				return nil, err
			}
		}
		return obj, nil
	default:
		return nil, nodeError(n, "merge value must be a mapping")
	}
}

func mappingKey(n *yamlv3.Node) (string, error) {
	if n.Kind == yamlv3.AliasNode {
		n = n.Alias
	}
	if n.Kind != yamlv3.ScalarNode {
		return "", nodeError(n, "mapping key must be a scalar")
	}
	if n.ShortTag() == "!!null" {
		return "null", nil
	}

	return n.Value, nil
}

func scalar(n *yamlv3.Node) (any, error) {
	if n.Tag == RawTag {
		return jsonesc.Wrap(n.Value), nil
	}

	switch tag := n.ShortTag(); tag {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, nodeError(n, err.Error())
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return i, nil
		}
		// 超出 int64 的整数退化为浮点数
		f, err := strconv.ParseFloat(strings.ReplaceAll(n.Value, "_", ""), 64)
		if err != nil {
			return nil, nodeError(n, err.Error())
		}
		return f, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, nodeError(n, err.Error())
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, nodeError(n, "non-finite number "+n.Value)
		}
		return f, nil
	case "!!str", "!!timestamp":
		return n.Value, nil
	case "!!binary":
		var s string
		if err := n.Decode(&s); err != nil {
			return nil, nodeError(n, err.Error())
		}
		return []byte(s), nil
	default:
		return nil, nodeError(n, "unknown tag "+tag)
	}
}

func nodeError(n *yamlv3.Node, msg string) error {
	return fmt.Errorf("%w at line %d column %d: %s", ErrUnsupportedNode, n.Line, n.Column, msg)
}
