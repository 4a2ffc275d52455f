package expr

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/lwmacct/251207-go-pkg-safetpl/pkg/jsonesc"
)

var builtins = map[string]Func{
	"upper":   textFunc(strings.ToUpper),
	"lower":   textFunc(strings.ToLower),
	"trim":    textFunc(strings.TrimSpace),
	"len":     lengthFunc,
	"str":     strFunc,
	"json":    jsonFunc,
	"raw":     rawFunc,
	"default": defaultFunc,
	"join":    joinFunc,
}

// Builtins 返回内置函数表的副本。
//
//   - upper(s) / lower(s) / trim(s) - 文本转换，nil 视为空串
//   - len(v) - 字符串的字符数，或列表、映射的元素数
//   - str(v) - 转为文本
//   - json(v) - 序列化为 JSON 文本（返回普通字符串）
//   - raw(v) - 包装为 jsonesc.Raw，跳过转义
//   - default(v, d) - v 为 nil 或空串时返回 d
//   - join(list, sep) - 以 sep 连接列表元素的文本
func Builtins() map[string]Func {
	return maps.Clone(builtins)
}

func arity(args []any, n int) error {
	if len(args) != n {
		return fmt.Errorf("expected %d argument(s), got %d", n, len(args))
	}

	return nil
}

func textFunc(fn func(string) string) Func {
	return func(args ...any) (any, error) {
		if err := arity(args, 1); err != nil {
			return nil, err
		}
		return fn(toText(args[0])), nil
	}
}

func lengthFunc(args ...any) (any, error) {
	if err := arity(args, 1); err != nil {
		return nil, err
	}

	switch v := args[0].(type) {
	case nil:
		return int64(0), nil
	case string:
		return int64(utf8.RuneCountInString(v)), nil
	case jsonesc.Object:
		return int64(len(v)), nil
	}

	rv := reflect.ValueOf(args[0])
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return int64(rv.Len()), nil
	default:
		return nil, fmt.Errorf("cannot take length of %T", args[0])
	}
}

func strFunc(args ...any) (any, error) {
	if err := arity(args, 1); err != nil {
		return nil, err
	}

	return toText(args[0]), nil
}

func jsonFunc(args ...any) (any, error) {
	if err := arity(args, 1); err != nil {
		return nil, err
	}

	return jsonesc.Serialize(args[0])
}

func rawFunc(args ...any) (any, error) {
	if err := arity(args, 1); err != nil {
		return nil, err
	}

	return jsonesc.Wrap(toText(args[0])), nil
}

func defaultFunc(args ...any) (any, error) {
	if err := arity(args, 2); err != nil {
		return nil, err
	}
	if args[0] == nil || args[0] == "" {
		return args[1], nil
	}

	return args[0], nil
}

func joinFunc(args ...any) (any, error) {
	if err := arity(args, 2); err != nil {
		return nil, err
	}
	if args[0] == nil {
		return "", nil
	}

	rv := reflect.ValueOf(args[0])
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("cannot join %T", args[0])
	}
	parts := make([]string, rv.Len())
	for i := range parts {
		parts[i] = toText(rv.Index(i).Interface())
	}

	return strings.Join(parts, toText(args[1])), nil
}
