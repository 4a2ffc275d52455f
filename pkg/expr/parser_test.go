package expr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-safetpl/pkg/expr"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "name", want: "name"},
		{input: "  42 ", want: "42"},
		{input: "1.5", want: "1.5"},
		{input: `"a\"b"`, want: `"a\"b"`},
		{input: `'it\'s'`, want: `"it's"`},
		{input: "nil", want: "nil"},
		{input: "null", want: "nil"},
		{input: "true", want: "true"},
		{input: "user.name", want: "user.name"},
		{input: "items[0].id", want: "items[0].id"},
		{input: `m["k"]`, want: `m["k"]`},
		{input: "upper(name)", want: "upper(name)"},
		{input: "join(tags, \",\")", want: `join(tags, ",")`},
		{input: "f()", want: "f()"},
		{input: "[1, a, []]", want: "[1, a, []]"},
		{input: "1 + 2 * 3", want: "(1 + (2 * 3))"},
		{input: "(1 + 2) * 3", want: "((1 + 2) * 3)"},
		{input: "a || b && c", want: "(a || (b && c))"},
		{input: "a == b != c", want: "((a == b) != c)"},
		{input: "a < b == c >= d", want: "((a < b) == (c >= d))"},
		{input: "!a && -b", want: "(!a && -b)"},
		{input: "名字", want: "名字"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, err := expr.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.String())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, input := range []string{
		"", "1 +", "(a", "a.", "a[1", "f(a b)", "a b", "}", `"open`, "[1,",
		`"\q"`, `'\u12'`, `"\u12zz"`, `"\ud83d"`, `"\ude00\ud83d"`, "1e400",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := expr.Parse(input)
			require.Error(t, err)

			var se *expr.SyntaxError
			assert.True(t, errors.As(err, &se))
		})
	}
}

func TestReader_Read(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantExpr string
		wantRest string
		wantOK   bool
	}{
		{name: "stops at brace", text: " v }tail", wantExpr: "v", wantRest: " }tail", wantOK: true},
		{name: "binary then brace", text: "a + 1}x", wantExpr: "(a + 1)", wantRest: "}x", wantOK: true},
		{name: "call", text: "upper(v) }", wantExpr: "upper(v)", wantRest: " }", wantOK: true},
		{name: "stops at unknown char", text: "a;b", wantExpr: "a", wantRest: ";b", wantOK: true},
		{name: "string then text", text: `"x" rest`, wantExpr: `"x"`, wantRest: " rest", wantOK: true},
		{name: "nothing readable", text: " }", wantOK: false},
		{name: "empty", text: "", wantOK: false},
		{name: "broken expression", text: "a + }", wantOK: false},
		{name: "unterminated string", text: `"abc`, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rest, ok := expr.Reader{}.Read(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantExpr, e.String())
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestReader_ReadGroup(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantExpr string
		wantRest string
		wantOK   bool
	}{
		{name: "call group", text: "(upper(v)))", wantExpr: "upper(v)", wantRest: ")", wantOK: true},
		{name: "operators after group are text", text: "(a) + b", wantExpr: "a", wantRest: " + b", wantOK: true},
		{name: "nested", text: "((a + b) * 2);", wantExpr: "((a + b) * 2)", wantRest: ";", wantOK: true},
		{name: "empty group", text: "()", wantOK: false},
		{name: "unclosed", text: "(a", wantOK: false},
		{name: "leading space", text: " (a)", wantOK: false},
		{name: "not a group", text: "a", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rest, ok := expr.Reader{}.ReadGroup(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantExpr, e.String())
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}
