// Package interp 将含插值标记的模板编译为拼接计划，并在运行时安全地求值。
//
// 模板文本中识别四种标记：
//
//	#{ expr }   原子表达式，结果经 jsonesc 转义
//	#( ... )    调用表达式，结果经 jsonesc 转义
//	#!{ expr }  原子表达式，结果原样输出
//	#!( ... )   调用表达式，结果原样输出
//
// 原子标记需要显式的 "}" 闭合；调用标记保留左括号交给解析器，
// 由表达式自身的右括号闭合。
//
// # 语义说明
//
//  1. 表达式的语法由注入的 [Parser] 决定，本包只负责扫描与切分
//  2. 解析失败的标记退化为普通文本，模板不会因此报错
//  3. 原子标记后缺少 "}" 时返回 [ErrMalformedTemplate]
//  4. 求值结果为 nil 时输出空串，而不是 "null"
//
// # 快速开始
//
//	plan, err := interp.Compile(`console.log(#{ msg })`, expr.Reader{})
//	out, err := plan.Render(expr.NewEnv(data, nil))
//
// [Plan] 只依赖模板文本，可编译一次后被多个 goroutine 复用。
package interp
