package version

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestGetVersion(t *testing.T) {
	saved := Version
	t.Cleanup(func() { Version = saved })

	Version = "v1.2.3"
	assert.Equal(t, "v1.2.3", GetVersion())

	Version = ""
	assert.NotEmpty(t, GetVersion())
}

func TestCommand(t *testing.T) {
	saved := Commit
	t.Cleanup(func() { Commit = saved })
	Commit = "abc123"

	var buf bytes.Buffer
	app := &cli.Command{
		Name:     AppRawName,
		Writer:   &buf,
		Commands: []*cli.Command{Command},
	}

	require.NoError(t, app.Run(context.Background(), []string{AppRawName, "version"}))
	assert.Contains(t, buf.String(), AppRawName+" ")
	assert.Contains(t, buf.String(), "commit:  abc123")
	assert.Contains(t, buf.String(), "go:      go")
}
