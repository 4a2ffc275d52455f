package interp_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-safetpl/pkg/interp"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []interp.Segment
	}{
		{
			name:     "no marker",
			template: "hello",
			want:     []interp.Segment{interp.Literal("hello")},
		},
		{
			name:     "lone expression keeps empty literals",
			template: "#{v}",
			want: []interp.Segment{
				interp.Literal(""),
				interp.Expression(name("v"), true),
				interp.Literal(""),
			},
		},
		{
			name:     "raw with whitespace before brace",
			template: "a#!{ v  }b",
			want: []interp.Segment{
				interp.Literal("a"),
				interp.Expression(name("v"), false),
				interp.Literal("b"),
			},
		},
		{
			name:     "invocation keeps paren for parser",
			template: "f(#(upper v))",
			want: []interp.Segment{
				interp.Literal("f("),
				interp.Expression(name("upper v"), true),
				interp.Literal(")"),
			},
		},
		{
			name:     "raw invocation",
			template: "#!(x)!",
			want: []interp.Segment{
				interp.Literal(""),
				interp.Expression(name("x"), false),
				interp.Literal("!"),
			},
		},
		{
			name:     "unparsable marker falls back to text",
			template: "#{ } and #(",
			want: []interp.Segment{
				interp.Literal(""),
				interp.Literal("#{"),
				interp.Literal(" } and "),
				interp.Literal("#("),
				interp.Literal(""),
			},
		},
		{
			name:     "scanning resumes after fallback",
			template: "#{1}#{a}",
			want: []interp.Segment{
				interp.Literal(""),
				interp.Literal("#{"),
				interp.Literal("1}"),
				interp.Expression(name("a"), true),
				interp.Literal(""),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := interp.Extract(tt.template, stubParser{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_MalformedTemplate(t *testing.T) {
	tests := []struct {
		name       string
		template   string
		wantOffset int
		wantMarker string
	}{
		{name: "missing brace at end", template: "#{ v", wantOffset: 0, wantMarker: "#{"},
		{name: "other character", template: "x#!{v ]", wantOffset: 1, wantMarker: "#!{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := interp.Extract(tt.template, stubParser{})
			require.Error(t, err)
			assert.ErrorIs(t, err, interp.ErrMalformedTemplate)

			var mt *interp.MalformedTemplateError
			require.True(t, errors.As(err, &mt))
			assert.Equal(t, tt.wantOffset, mt.Offset)
			assert.Equal(t, tt.wantMarker, mt.Marker)
			assert.Equal(t, "v", mt.Expr)
		})
	}
}

func TestExtract_PrefersGroupParserForInvocation(t *testing.T) {
	calls := 0
	p := groupParser{groups: &calls}

	got, err := interp.Extract("#(a) #{b} #!(c)", p)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Len(t, got, 7)
}
