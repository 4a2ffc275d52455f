// Package expr 是 interp 默认使用的嵌入表达式语言。
//
// [Reader] 从文本头部读取一个表达式（实现 interp.Parser 与 interp.GroupParser），
// [Env] 基于数据根与函数表求值（实现 interp.Evaluator）。
//
// # 语法
//
//	字面量     42  1.5  "s"  's'  true  false  nil  null  [a, b]
//	变量       name  user.name  items[0]  m["key"]
//	函数调用   upper(name)  join(tags, ",")
//	一元       !x  -x
//	二元       * / %  + -  < <= > >=  == !=  &&  ||
//
// 数字字面量为十进制：整数求值为 int64，带小数点或指数（1.5、1e5、2.5E-3）
// 以及超出 int64 范围的整数求值为 float64；超出 float64 范围的字面量无法解析。
//
// 字符串可用单引号或双引号，支持转义 \n \t \r \b \f \0 \\ \" \' \/ 与 \uXXXX
// （代理对需成对书写）。其他转义无法解析，所在标记按原文输出。
//
// 未定义的变量求值为 nil；"&&" 与 "||" 返回操作数本身，
// 因此 name || "anonymous" 可用作默认值。
//
// # 内置函数
//
// upper lower trim len str json raw default join，详见 [Builtins]。
package expr
