// Package dataload 将 YAML / JSON 数据文档加载为可直接序列化的值。
//
// 与 yaml.Unmarshal 到 any 不同，映射被加载为 [jsonesc.Object]，
// 保留文档中的键顺序，渲染结果与源文档的书写顺序一致。
//
// # 类型映射
//
//   - null / ~ → nil
//   - true / false → bool
//   - 整数 → int64（超出范围时为 float64）
//   - 浮点数 → float64
//   - 字符串、时间戳 → string
//   - !!binary → []byte
//   - 序列 → []any
//   - 映射 → [jsonesc.Object]
//   - !raw 标量 → [jsonesc.Raw]，在模板中原样输出
//
// 锚点与别名会被展开，合并键 "<<" 按 YAML 1.1 语义处理。
//
// JSON 是 YAML 的子集，同一个 [Parse] 即可处理两种格式。
//
// # 示例
//
//	data, err := dataload.Load("data.yaml")
//	if err != nil {
//	    return err
//	}
//	out, err := safetpl.Render(tpl, data)
package dataload
