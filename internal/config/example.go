package config

import (
	"bytes"
	"fmt"
	"reflect"

	yamlv3 "go.yaml.in/yaml/v3"
)

// ExampleYAML 根据配置生成带注释的 YAML 示例。
//
// 注释取自字段的 desc tag，嵌套结构体的说明写在该段之前。
func ExampleYAML(cfg Config) ([]byte, error) {
	doc := &yamlv3.Node{
		Kind:        yamlv3.DocumentNode,
		HeadComment: "配置示例文件, 复制为 .safetpl.yaml 并根据需要修改",
		Content:     []*yamlv3.Node{structNode(reflect.ValueOf(cfg))},
	}

	var buf bytes.Buffer
	enc := yamlv3.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode example config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func structNode(val reflect.Value) *yamlv3.Node {
	node := &yamlv3.Node{Kind: yamlv3.MappingNode}
	typ := val.Type()
	for i := range typ.NumField() {
		field := typ.Field(i)
		key := configTagName(field)
		if key == "" {
			continue
		}

		keyNode := &yamlv3.Node{Kind: yamlv3.ScalarNode, Value: key}
		desc := field.Tag.Get("desc")

		var valNode *yamlv3.Node
		if field.Type.Kind() == reflect.Struct {
			valNode = structNode(val.Field(i))
			keyNode.HeadComment = desc
		} else {
			valNode = &yamlv3.Node{}
			if err := valNode.Encode(val.Field(i).Interface()); err != nil {
				valNode = &yamlv3.Node{Kind: yamlv3.ScalarNode, Value: fmt.Sprint(val.Field(i).Interface())}
			}
			valNode.LineComment = desc
		}
		node.Content = append(node.Content, keyNode, valNode)
	}

	return node
}
