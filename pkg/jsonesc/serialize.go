package jsonesc

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ═══════════════════════════════════════════════════════════════════════════
// 入口
// ═══════════════════════════════════════════════════════════════════════════

// Serialize 将 v 渲染为类 JSON 文本。
//
// 规则：
//   - [Raw] 在任意位置原样输出，且先于其他分支判断
//   - 字符串转义引号、反斜杠与控制字符，"/" 不转义
//   - [Object] 按插入顺序输出，map 按键排序输出
//   - NaN、±Inf 以及不支持的类型返回 [ErrUnsupportedValue]
//
// 函数本身无副作用，结果只取决于 v 与 opts。
func Serialize(v any, opts ...Option) (string, error) {
	e := &encoder{opts: newOptions(opts)}
	if err := e.encode(v, 0); err != nil {
		return "", err
	}

	return e.sb.String(), nil
}

// Quote 返回 s 的 JSON 字符串字面量（含引号）。
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	writeString(&sb, s)

	return sb.String()
}

// ═══════════════════════════════════════════════════════════════════════════
// 编码器
// ═══════════════════════════════════════════════════════════════════════════

type encoder struct {
	sb   strings.Builder
	opts options
}

func (e *encoder) encode(v any, depth int) error {
	if r, ok := asRaw(v); ok {
		e.sb.WriteString(r.text)
		return nil
	}

	switch x := v.(type) {
	case nil:
		e.sb.WriteString("null")
	case bool:
		e.writeBool(x)
	case string:
		writeString(&e.sb, x)
	case int:
		e.sb.WriteString(strconv.Itoa(x))
	case int64:
		e.sb.WriteString(strconv.FormatInt(x, 10))
	case float64:
		return e.writeFloat(x, 64)
	case Object:
		if x == nil {
			e.sb.WriteString("null")
			return nil
		}
		return e.encodeObject(x, depth)
	case []any:
		if x == nil {
			e.sb.WriteString("null")
			return nil
		}
		return e.encodeList(len(x), func(i int) any { return x[i] }, depth)
	case map[string]any:
		if x == nil {
			e.sb.WriteString("null")
			return nil
		}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		members := make(Object, len(keys))
		for i, k := range keys {
			members[i] = Member{Key: k, Value: x[k]}
		}
		return e.encodeObject(members, depth)
	default:
		return e.encodeReflect(reflect.ValueOf(v), depth)
	}

	return nil
}

func (e *encoder) encodeReflect(rv reflect.Value, depth int) error {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			e.sb.WriteString("null")
			return nil
		}
		if depth >= e.opts.maxDepth {
			return unsupported("nesting exceeds max depth")
		}
		return e.encode(rv.Elem().Interface(), depth+1)
	case reflect.Bool:
		e.writeBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.sb.WriteString(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		e.sb.WriteString(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32:
		return e.writeFloat(rv.Float(), 32)
	case reflect.Float64:
		return e.writeFloat(rv.Float(), 64)
	case reflect.String:
		writeString(&e.sb, rv.String())
	case reflect.Slice:
		if rv.IsNil() {
			e.sb.WriteString("null")
			return nil
		}
		// []byte 视为文本
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			writeString(&e.sb, string(rv.Bytes()))
			return nil
		}
		return e.encodeList(rv.Len(), func(i int) any { return rv.Index(i).Interface() }, depth)
	case reflect.Array:
		return e.encodeList(rv.Len(), func(i int) any { return rv.Index(i).Interface() }, depth)
	case reflect.Map:
		if rv.IsNil() {
			e.sb.WriteString("null")
			return nil
		}
		return e.encodeMap(rv, depth)
	default:
		return unsupported(fmt.Sprintf("type %s", rv.Type()))
	}

	return nil
}

func (e *encoder) encodeList(n int, at func(int) any, depth int) error {
	if depth >= e.opts.maxDepth {
		return unsupported("nesting exceeds max depth")
	}

	e.sb.WriteByte('[')
	for i := range n {
		if i > 0 {
			e.sb.WriteByte(',')
		}
		e.newline(depth + 1)
		if err := e.encode(at(i), depth+1); err != nil {
			return prependPath(err, "["+strconv.Itoa(i)+"]")
		}
	}
	if n > 0 {
		e.newline(depth)
	}
	e.sb.WriteByte(']')

	return nil
}

func (e *encoder) encodeObject(members Object, depth int) error {
	if depth >= e.opts.maxDepth {
		return unsupported("nesting exceeds max depth")
	}

	e.sb.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			e.sb.WriteByte(',')
		}
		e.newline(depth + 1)
		writeString(&e.sb, m.Key)
		e.sb.WriteByte(':')
		if e.opts.pretty {
			e.sb.WriteByte(' ')
		}
		if err := e.encode(m.Value, depth+1); err != nil {
			return prependPath(err, "."+m.Key)
		}
	}
	if len(members) > 0 {
		e.newline(depth)
	}
	e.sb.WriteByte('}')

	return nil
}

func (e *encoder) encodeMap(rv reflect.Value, depth int) error {
	members := make(Object, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key, err := mapKey(iter.Key())
		if err != nil {
			return err
		}
		members = append(members, Member{Key: key, Value: iter.Value().Interface()})
	}
	slices.SortFunc(members, func(a, b Member) int {
		return strings.Compare(a.Key, b.Key)
	})

	return e.encodeObject(members, depth)
}

// mapKey 将 map 的键转为字符串：string、TextMarshaler、整数。
func mapKey(k reflect.Value) (string, error) {
	if k.Kind() == reflect.Interface {
		if k.IsNil() {
			return "", unsupported("nil map key")
		}
		k = k.Elem()
	}
	if k.Kind() == reflect.String {
		return k.String(), nil
	}
	if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
		text, err := tm.MarshalText()
		if err != nil {
			return "", unsupported(fmt.Sprintf("map key: %v", err))
		}
		return string(text), nil
	}

	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), nil
	default:
		return "", unsupported(fmt.Sprintf("map key type %s", k.Type()))
	}
}

func (e *encoder) newline(depth int) {
	if !e.opts.pretty {
		return
	}
	e.sb.WriteByte('\n')
	for range depth {
		e.sb.WriteString(e.opts.indent)
	}
}

func (e *encoder) writeBool(b bool) {
	if b {
		e.sb.WriteString("true")
	} else {
		e.sb.WriteString("false")
	}
}

// writeFloat 与 encoding/json 的格式一致：极大/极小值使用指数形式。
func (e *encoder) writeFloat(f float64, bits int) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return unsupported(fmt.Sprintf("non-finite number %v", f))
	}

	format := byte('f')
	if abs := math.Abs(f); abs != 0 {
		if bits == 64 && (abs < 1e-6 || abs >= 1e21) ||
			bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			format = 'e'
		}
	}

	b := strconv.AppendFloat(make([]byte, 0, 24), f, format, -1, bits)
	if format == 'e' {
		// e-09 → e-9
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	e.sb.Write(b)

	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// 字符串转义
// ═══════════════════════════════════════════════════════════════════════════

const hexDigits = "0123456789abcdef"

func writeString(sb *strings.Builder, s string) {
	sb.WriteByte('"')

	start := 0
	for i := 0; i < len(s); {
		if c := s[i]; c < utf8.RuneSelf {
			if c >= 0x20 && c != '"' && c != '\\' {
				i++
				continue
			}
			sb.WriteString(s[start:i])
			switch c {
			case '"', '\\':
				sb.WriteByte('\\')
				sb.WriteByte(c)
			case '\b':
				sb.WriteString(`\b`)
			case '\f':
				sb.WriteString(`\f`)
			case '\n':
				sb.WriteString(`\n`)
			case '\r':
				sb.WriteString(`\r`)
			case '\t':
				sb.WriteString(`\t`)
			default:
				sb.WriteString(`\u00`)
				sb.WriteByte(hexDigits[c>>4])
				sb.WriteByte(hexDigits[c&0xF])
			}
			i++
			start = i

			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			sb.WriteString(s[start:i])
			sb.WriteString(`\ufffd`)
		case r == '\u2028' || r == '\u2029':
			// 在脚本中是行终止符
			sb.WriteString(s[start:i])
			sb.WriteString(`\u202`)
			sb.WriteByte(hexDigits[r&0xF])
		default:
			i += size
			continue
		}
		i += size
		start = i
	}
	sb.WriteString(s[start:])

	sb.WriteByte('"')
}
