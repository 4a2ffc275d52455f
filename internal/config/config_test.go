package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(WithConfigPaths(filepath.Join(t.TempDir(), "missing.yaml")))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
}

func TestLoad_Files(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:    "yaml partial override",
			file:    "config.yaml",
			content: "render:\n  pretty: true\n  max-depth: 64\n",
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Render.Pretty)
				assert.Equal(t, 64, cfg.Render.MaxDepth)
				assert.Equal(t, "  ", cfg.Render.Indent)
				assert.Equal(t, 128, cfg.Cache.Size)
			},
		},
		{
			name:    "json",
			file:    "config.json",
			content: `{"cache": {"size": 0}, "log": {"level": "debug"}}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 0, cfg.Cache.Size)
				assert.Equal(t, "debug", cfg.Log.Level)
			},
		},
		{
			name:    "empty file",
			file:    "empty.yaml",
			content: "",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultConfig(), *cfg)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)

			cfg, err := Load(WithConfigFile(path))
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad_FirstPathWins(t *testing.T) {
	first := writeFile(t, "a.yaml", "cache:\n  size: 1\n")
	second := writeFile(t, "b.yaml", "cache:\n  size: 2\n")

	cfg, err := Load(WithConfigPaths(filepath.Join(t.TempDir(), "none.yaml"), first, second))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Cache.Size)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "root not object", file: "c.yaml", content: "- 1\n"},
		{name: "unknown key", file: "c.yaml", content: "render:\n  colour: red\n"},
		{name: "bad type", file: "c.yaml", content: "cache:\n  size: many\n"},
		{name: "negative size", file: "c.yaml", content: "cache:\n  size: -1\n"},
		{name: "bad level", file: "c.yaml", content: "log:\n  level: loud\n"},
		{name: "bad json", file: "c.json", content: "{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(WithConfigFile(writeFile(t, tt.file, tt.content)))
			require.Error(t, err)
		})
	}

	_, err := Load(WithConfigFile(filepath.Join(t.TempDir(), "missing.yaml")))
	require.Error(t, err)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("SAFETPL_RENDER_PRETTY", "true")
	t.Setenv("SAFETPL_RENDER_MAX_DEPTH", "32")
	t.Setenv("SAFETPL_LOG_LEVEL", "warn")

	path := writeFile(t, "config.yaml", "render:\n  max-depth: 64\n")
	cfg, err := Load(WithConfigFile(path), WithEnvPrefix(EnvPrefix))
	require.NoError(t, err)

	assert.True(t, cfg.Render.Pretty)
	assert.Equal(t, 32, cfg.Render.MaxDepth)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("SAFETPL_TEST_LEVEL", "warn")
	t.Setenv("SAFETPL_TEST_EMPTY", "")

	content := "log:\n  level: ${SAFETPL_TEST_LEVEL}\n" +
		"cache:\n  size: ${SAFETPL_TEST_EMPTY:-16}\n" +
		"render:\n  indent: \"${SAFETPL_TEST_UNSET-$$}\"\n"
	path := writeFile(t, "config.yaml", content)

	cfg, err := Load(WithConfigFile(path))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 16, cfg.Cache.Size)
	assert.Equal(t, "$", cfg.Render.Indent)

	t.Run("disabled", func(t *testing.T) {
		path := writeFile(t, "config.yaml", "render:\n  indent: \"${SAFETPL_TEST_LEVEL}\"\n")

		cfg, err := Load(WithConfigFile(path), WithoutEnvExpansion())
		require.NoError(t, err)
		assert.Equal(t, "${SAFETPL_TEST_LEVEL}", cfg.Render.Indent)
	})

	t.Run("required variable", func(t *testing.T) {
		path := writeFile(t, "config.yaml", "log:\n  level: ${SAFETPL_TEST_UNSET:?log level required}\n")

		_, err := Load(WithConfigFile(path))
		require.ErrorContains(t, err, "SAFETPL_TEST_UNSET: log level required")
	})
}

func TestExpandEnv(t *testing.T) {
	env := map[string]string{"HOST": "example.com", "EMPTY": "", "PORT": "8080"}
	lookup := func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{name: "plain", input: "no vars", want: "no vars"},
		{name: "set", input: "host: ${HOST}", want: "host: example.com"},
		{name: "unset is empty", input: "[${NOPE}]", want: "[]"},
		{name: "colon default on empty", input: "${EMPTY:-x}", want: "x"},
		{name: "dash default keeps empty", input: "[${EMPTY-x}]", want: "[]"},
		{name: "default on unset", input: "${NOPE-x}", want: "x"},
		{name: "nested default", input: "${NOPE:-${HOST}:${PORT}}", want: "example.com:8080"},
		{name: "dollar escape", input: "$$HOST costs $5", want: "$HOST costs $5"},
		{name: "trailing dollar", input: "a$", want: "a$"},
		{name: "unknown form kept", input: "${1X} ${HOST:+y} ${}", want: "${1X} ${HOST:+y} ${}"},
		{name: "unclosed kept", input: "${HOST", want: "${HOST"},
		{name: "required set", input: "${PORT:?need port}", want: "8080"},
		{name: "required unset", input: "${NOPE:?need nope}", wantErr: "NOPE: need nope"},
		{name: "required empty", input: "${EMPTY:?}", wantErr: "EMPTY: parameter null or not set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandEnv(tt.input, lookup)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_CLIFlags(t *testing.T) {
	t.Setenv("SAFETPL_CACHE_SIZE", "7")

	var got *Config
	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "render-pretty"},
			&cli.StringFlag{Name: "render-indent", Value: "  "},
			&cli.IntFlag{Name: "render-max-depth", Value: 512},
			&cli.IntFlag{Name: "cache-size", Value: 128},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var err error
			got, err = Load(WithCommand(cmd), WithEnvPrefix(EnvPrefix))
			return err
		},
	}

	err := cmd.Run(context.Background(), []string{"test", "--render-pretty", "--render-indent", "\t"})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.True(t, got.Render.Pretty)
	assert.Equal(t, "\t", got.Render.Indent)
	// 未显式设置的 flag 不覆盖环境变量
	assert.Equal(t, 7, got.Cache.Size)
	assert.Equal(t, 512, got.Render.MaxDepth)
}

func TestGenerateEnvBindings(t *testing.T) {
	bindings := generateEnvBindings("SAFETPL_", collectConfigKeys(DefaultConfig()))

	assert.Equal(t, map[string]string{
		"SAFETPL_RENDER_PRETTY":    "render.pretty",
		"SAFETPL_RENDER_INDENT":    "render.indent",
		"SAFETPL_RENDER_MAX_DEPTH": "render.max-depth",
		"SAFETPL_CACHE_SIZE":       "cache.size",
		"SAFETPL_LOG_LEVEL":        "log.level",
	}, bindings)
}

func TestLogConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{level: "debug", want: slog.LevelDebug},
		{level: "INFO", want: slog.LevelInfo},
		{level: " warn ", want: slog.LevelWarn},
		{level: "error", want: slog.LevelError},
	}

	for _, tt := range tests {
		got, err := LogConfig{Level: tt.level}.SlogLevel()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := LogConfig{Level: "verbose"}.SlogLevel()
	require.Error(t, err)
}

func TestConfig_EngineOptions(t *testing.T) {
	cfg := DefaultConfig()
	assert.Len(t, cfg.EngineOptions(), 4)
}

func TestExampleYAML(t *testing.T) {
	out, err := ExampleYAML(DefaultConfig())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "# 配置示例文件")
	assert.Contains(t, text, "# 渲染配置")
	assert.Contains(t, text, "max-depth: 512 # 序列化最大嵌套深度")

	// 生成的示例可以被原样加载
	cfg, err := Load(WithConfigFile(writeFile(t, "example.yaml", text)))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
}
