// Package safetpl 提供面向脚本与 JSON 目标的安全模板渲染入口。
//
// 模板中的插值标记：
//
//	#{ expr }     转义插值，值被序列化为 JSON 字面量
//	#( expr )     调用形式的转义插值，读取一个完整的括号组
//	#!{ expr }    原样插值，字符串直接输出
//	#!( expr )    调用形式的原样插值
//
// 转义插值保证输出是合法的 JSON 字面量，不会破坏所在的脚本上下文：
//
//	safetpl.MustRender("console.log(#{ v })", map[string]any{"v": "alert('xss')"})
//	// console.log("alert('xss')")
//
// 无法解析的标记按字面文本保留；原子标记的表达式之后缺少 "}" 时返回
// [interp.ErrMalformedTemplate]。
//
// # Engine
//
// [Engine] 持有序列化选项、函数表与编译缓存，可被多个 goroutine 共享：
//
//	eng := safetpl.New(
//	    safetpl.WithPretty(true),
//	    safetpl.WithCacheSize(256),
//	)
//	out, err := eng.Render(tpl, data)
//
// 包级函数 [Render] 与 [MustRender] 使用默认 Engine。
//
// 表达式语法见 [expr] 包。
package safetpl
