package jsonesc

import "errors"

var (
	// ErrUnsupportedValue 表示值无法被序列化。
	ErrUnsupportedValue = errors.New("jsonesc: unsupported value")
	// ErrTypeMismatch 表示对非 [Raw] 值调用了 [Unwrap]。
	ErrTypeMismatch = errors.New("jsonesc: not a raw value")
)

// UnsupportedValueError 描述无法序列化的值及其位置。
type UnsupportedValueError struct {
	// Path 是值在结构中的位置，例如 [0].a；顶层为空。
	Path   string
	Reason string
}

func (e *UnsupportedValueError) Error() string {
	if e.Path == "" {
		return "jsonesc: unsupported value: " + e.Reason
	}

	return "jsonesc: unsupported value at " + e.Path + ": " + e.Reason
}

// Is 使 errors.Is(err, ErrUnsupportedValue) 成立。
func (e *UnsupportedValueError) Is(target error) bool {
	return target == ErrUnsupportedValue
}

func unsupported(reason string) error {
	return &UnsupportedValueError{Reason: reason}
}

// prependPath 在错误路径前追加一级位置，其他错误原样返回。
func prependPath(err error, seg string) error {
	var uv *UnsupportedValueError
	if errors.As(err, &uv) {
		uv.Path = seg + uv.Path
	}

	return err
}
