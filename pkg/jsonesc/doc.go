// Package jsonesc 提供面向脚本嵌入的转义序列化。
//
// 任意值树被渲染为类 JSON 文本，字符串按 JSON 规则转义，
// 以 [Raw] 包装的值在任意深度原样输出（不加引号、不转义）。
//
// # 支持的值
//
//   - nil / nil 指针 → null
//   - bool、整数、有限浮点数
//   - string
//   - 切片与数组 → [...]
//   - [Object]（保持插入顺序）与 map（键排序）→ {...}
//   - [Raw] → 原样输出
//
// 其他值（struct、chan、func、NaN/Inf 等）返回 [ErrUnsupportedValue]。
//
// # 快速开始
//
//	out, err := jsonesc.Serialize(jsonesc.Object{
//	    {Key: "name", Value: "a\"b"},
//	    {Key: "handler", Value: jsonesc.Wrap("function(){}")},
//	})
//	// {"name":"a\"b","handler":function(){}}
//
// # 美化输出
//
// [WithPretty] 仅插入换行与缩进，不改变转义与 Raw 语义。
// 该设置应在启动时确定，并作为选项显式传入每次调用。
package jsonesc
