package jsonesc

import "fmt"

// Raw 是原样输出的文本载荷。
//
// 字段不导出，只能通过 [Wrap] 构造；序列化器按具体类型识别，
// 普通数据（即使结构相同）无法伪造该标记。
type Raw struct {
	text string
}

// Wrap 将 text 包装为 [Raw]，不做任何校验。
func Wrap(text string) Raw {
	return Raw{text: text}
}

// String 返回包装的文本。
func (r Raw) String() string {
	return r.text
}

// IsRaw 判断 v 是否为 [Raw] 或非 nil 的 *Raw。
func IsRaw(v any) bool {
	_, ok := asRaw(v)
	return ok
}

// Unwrap 返回 [Raw] 的载荷；v 不是 Raw 时返回 [ErrTypeMismatch]。
func Unwrap(v any) (string, error) {
	r, ok := asRaw(v)
	if !ok {
		return "", fmt.Errorf("%w: got %T", ErrTypeMismatch, v)
	}

	return r.text, nil
}

func asRaw(v any) (Raw, bool) {
	switch r := v.(type) {
	case Raw:
		return r, true
	case *Raw:
		if r != nil {
			return *r, true
		}
	}

	return Raw{}, false
}
