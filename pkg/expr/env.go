package expr

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/lwmacct/251207-go-pkg-safetpl/pkg/interp"
	"github.com/lwmacct/251207-go-pkg-safetpl/pkg/jsonesc"
)

// Func 是可在表达式中调用的函数。
type Func func(args ...any) (any, error)

// Env 是表达式的求值环境：数据根加函数表。
//
// Env 创建后只读，可被多个 goroutine 共享。
type Env struct {
	root  any
	funcs map[string]Func
}

var _ interp.Evaluator = (*Env)(nil)

// NewEnv 创建求值环境。
//
// data 通常是 map[string]any 或 [jsonesc.Object]，也可以是结构体；
// funcs 中的同名函数覆盖 [Builtins]。
func NewEnv(data any, funcs map[string]Func) *Env {
	return &Env{root: data, funcs: funcs}
}

// Eval 对 interp 交来的表达式求值，表达式必须来自 [Reader] 或 [Parse]。
func (e *Env) Eval(x interp.Expr) (any, error) {
	n, ok := x.(Node)
	if !ok {
		return nil, fmt.Errorf("expr: cannot evaluate %T", x)
	}

	return n.Eval(e)
}

// Lookup 返回数据根上的变量，不存在时返回 nil。
func (e *Env) Lookup(name string) any {
	v, _ := field(e.root, name)
	return v
}

func (e *Env) function(name string) (Func, bool) {
	if fn, ok := e.funcs[name]; ok {
		return fn, true
	}
	fn, ok := builtins[name]

	return fn, ok
}

// ═══════════════════════════════════════════════════════════════════════════
// 取值
// ═══════════════════════════════════════════════════════════════════════════

func field(obj any, name string) (any, bool) {
	switch o := obj.(type) {
	case nil:
		return nil, false
	case map[string]any:
		v, ok := o[name]
		return v, ok
	case jsonesc.Object:
		return o.Get(name)
	}

	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		v := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true
	case reflect.Struct:
		sf, ok := rv.Type().FieldByName(name)
		if !ok || !sf.IsExported() {
			return nil, false
		}
		return rv.FieldByIndex(sf.Index).Interface(), true
	default:
		return nil, false
	}
}

// index 支持 list[int] 与 map[string]，越界返回 nil。
func index(obj, idx any) (any, error) {
	if key, ok := idx.(string); ok {
		v, _ := field(obj, key)
		return v, nil
	}

	i, ok := toInt64(idx)
	if !ok {
		if f, isFloat := idx.(float64); isFloat && f == math.Trunc(f) {
			i, ok = int64(f), true
		}
	}
	if !ok {
		return nil, fmt.Errorf("expr: invalid index type %T", idx)
	}

	if obj == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if i < 0 || i >= int64(rv.Len()) {
			return nil, nil
		}
		return rv.Index(int(i)).Interface(), nil
	default:
		return nil, fmt.Errorf("expr: cannot index %T", obj)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// 类型转换
// ═══════════════════════════════════════════════════════════════════════════

func toInt64(v any) (int64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	default:
		return 0, false
	}
}

func toFloat64(v any) (float64, bool) {
	if i, ok := toInt64(v); ok {
		return float64(i), true
	}
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Uint, reflect.Uint64:
		return float64(rv.Uint()), true
	default:
		return 0, false
	}
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	}
	if f, ok := toFloat64(v); ok {
		return f != 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}

// toText 将值转为拼接用的文本。
func toText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case fmt.Stringer:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	if s, err := jsonesc.Serialize(v); err == nil {
		return s
	}

	return fmt.Sprint(v)
}

// ═══════════════════════════════════════════════════════════════════════════
// 二元运算
// ═══════════════════════════════════════════════════════════════════════════

func binary(op string, left, right any) (any, error) {
	switch op {
	case "==":
		return equal(left, right), nil
	case "!=":
		return !equal(left, right), nil
	case "<", "<=", ">", ">=":
		return compare(op, left, right)
	case "+":
		_, ls := left.(string)
		_, rs := right.(string)
		if ls || rs {
			return toText(left) + toText(right), nil
		}
	}

	return arithmetic(op, left, right)
}

func arithmetic(op string, left, right any) (any, error) {
	li, lInt := toInt64(left)
	ri, rInt := toInt64(right)
	if lInt && rInt {
		switch op {
		case "+":
			return li + ri, nil
		case "-":
			return li - ri, nil
		case "*":
			return li * ri, nil
		case "/":
			if ri == 0 {
				return nil, fmt.Errorf("expr: division by zero")
			}
			if li%ri == 0 {
				return li / ri, nil
			}
			return float64(li) / float64(ri), nil
		case "%":
			if ri == 0 {
				return nil, fmt.Errorf("expr: modulo by zero")
			}
			return li % ri, nil
		}
	}

	lf, lok := toFloat64(left)
	rf, rok := toFloat64(right)
	if !lok || !rok {
		return nil, fmt.Errorf("expr: cannot apply %s to %T and %T", op, left, right)
	}

	switch op {
	case "+":
		return lf + rf, nil
	case "-":
		return lf - rf, nil
	case "*":
		return lf * rf, nil
	case "/":
		if rf == 0 {
			return nil, fmt.Errorf("expr: division by zero")
		}
		return lf / rf, nil
	case "%":
		return nil, fmt.Errorf("expr: modulo requires integers, got %T and %T", left, right)
	default:
		return nil, fmt.Errorf("expr: unknown operator %s", op)
	}
}

func equal(left, right any) bool {
	if left == nil || right == nil {
		return left == nil && right == nil
	}
	if lf, ok := toFloat64(left); ok {
		if rf, ok := toFloat64(right); ok {
			return lf == rf
		}
	}

	return reflect.DeepEqual(left, right)
}

func compare(op string, left, right any) (bool, error) {
	var c int
	lf, lok := toFloat64(left)
	rf, rok := toFloat64(right)
	ls, lstr := left.(string)
	rs, rstr := right.(string)

	switch {
	case lok && rok:
		c = cmp.Compare(lf, rf)
	case lstr && rstr:
		c = cmp.Compare(ls, rs)
	default:
		return false, fmt.Errorf("expr: cannot compare %T and %T", left, right)
	}

	switch op {
	case "<":
		return c < 0, nil
	case "<=":
		return c <= 0, nil
	case ">":
		return c > 0, nil
	default:
		return c >= 0, nil
	}
}
