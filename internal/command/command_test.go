package command

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-safetpl/internal/config"
)

// runWith 以给定参数运行带 [ConfigFlags] 的命令，并在 action 中执行 fn。
func runWith(t *testing.T, args []string, fn func(cmd *cli.Command) error) {
	t.Helper()

	cmd := &cli.Command{
		Name:   "test",
		Reader: strings.NewReader("from stdin"),
		Flags:  ConfigFlags(),
		Action: func(_ context.Context, cmd *cli.Command) error { return fn(cmd) },
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("render:\n  max-depth: 9\ncache:\n  size: 3\n"), 0o600))

	var cfg *config.Config
	runWith(t, []string{"--config", path, "--cache-size", "5"}, func(cmd *cli.Command) error {
		var err error
		cfg, err = LoadConfig(cmd)
		return err
	})

	assert.Equal(t, 9, cfg.Render.MaxDepth)
	assert.Equal(t, 5, cfg.Cache.Size)
	assert.False(t, cfg.Render.Pretty)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	runWith(t, []string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, func(cmd *cli.Command) error {
		_, err := LoadConfig(cmd)
		assert.Error(t, err)
		return nil
	})
}

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0o600))

	runWith(t, nil, func(cmd *cli.Command) error {
		got, err := ReadInput(cmd, "-")
		require.NoError(t, err)
		assert.Equal(t, "from stdin", string(got))

		got, err = ReadInput(cmd, path)
		require.NoError(t, err)
		assert.Equal(t, "from file", string(got))

		_, err = ReadInput(cmd, path+".missing")
		assert.Error(t, err)
		return nil
	})
}

func TestSetupLogger(t *testing.T) {
	var sb strings.Builder
	cfg := config.DefaultConfig()
	cfg.Log.Level = "warn"

	logger, err := SetupLogger(&cfg, &sb)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, sb.String(), "hidden")
	assert.Contains(t, sb.String(), "shown")

	cfg.Log.Level = "loud"
	_, err = SetupLogger(&cfg, &sb)
	assert.Error(t, err)
}
