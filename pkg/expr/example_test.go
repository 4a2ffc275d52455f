package expr_test

import (
	"fmt"
	"strings"

	"github.com/lwmacct/251207-go-pkg-safetpl/pkg/expr"
	"github.com/lwmacct/251207-go-pkg-safetpl/pkg/interp"
)

func ExampleParse() {
	n, err := expr.Parse("user.name || 'guest'")
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	v, _ := expr.NewEnv(map[string]any{}, nil).Eval(n)
	fmt.Println(n)
	fmt.Println(v)
	// Output:
	// (user.name || "guest")
	// guest
}

func ExampleNewEnv() {
	env := expr.NewEnv(map[string]any{"items": []string{"a", "b"}}, map[string]expr.Func{
		"shout": func(args ...any) (any, error) {
			return strings.ToUpper(fmt.Sprint(args...)) + "!", nil
		},
	})

	out, err := interp.Render(`const s = #(shout(join(items, ",")));`, expr.Reader{}, env)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(out)
	// Output:
	// const s = "A,B!";
}
