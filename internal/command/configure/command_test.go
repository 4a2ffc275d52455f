package configure

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-safetpl/internal/config"
	"github.com/lwmacct/251207-go-pkg-safetpl/pkg/jsonesc"
)

func run(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	app := &cli.Command{
		Name:     "safetpl",
		Writer:   &out,
		Commands: []*cli.Command{Command},
	}
	require.NoError(t, app.Run(context.Background(), append([]string{"safetpl", "config"}, args...)))

	return out.String()
}

func TestExample(t *testing.T) {
	out := run(t, "example")
	assert.Contains(t, out, "render:")
	assert.Contains(t, out, "size: 128")
}

func TestShow(t *testing.T) {
	out := run(t, "show", "--render-pretty", "--cache-size", "0")
	assert.Contains(t, out, `"pretty": true`)
	assert.Contains(t, out, `"size": 0`)
}

func TestEffective(t *testing.T) {
	cfg := config.DefaultConfig()
	obj := Effective(&cfg)

	assert.Equal(t, []string{"render", "cache", "log"}, obj.Keys())
	logObj, ok := obj[2].Value.(jsonesc.Object)
	require.True(t, ok)
	v, _ := logObj.Get("level")
	assert.Equal(t, "info", v)
}
