package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/urfave/cli/v3"
)

// DefaultPaths 返回默认配置文件的搜索顺序。
//
// 返回顺序即查找顺序，先命中的文件生效。
//
// 优先级 (从高到低)：
//  1. ./.appname.yaml - 当前目录应用配置
//  2. ~/.appname.yaml - 用户主目录配置
//  3. /etc/appname/config.yaml - 系统级配置
func DefaultPaths(appName string) []string {
	paths := []string{"." + appName + ".yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, "."+appName+".yaml"))
	}

	return append(paths, "/etc/"+appName+"/config.yaml")
}

// Load 读取配置并按优先级合并。
//
// 优先级 (从低到高)：
//  1. 默认值 - [DefaultConfig]
//  2. 配置文件 - [WithConfigFile] / [WithConfigPaths]
//  3. 环境变量(前缀) - [WithEnvPrefix]
//  4. CLI flags - [WithCommand]
//
// 配置 key 由 json tag 定义，YAML 与 JSON 共享同一套 key。
func Load(opts ...Option) (*Config, error) {
	options := &options{}
	for _, opt := range opts {
		opt(options)
	}

	defaults := DefaultConfig()
	configMap := structToMap(defaults)

	// 2️⃣ 配置文件
	fileMap, path, err := readConfigFile(options)
	if err != nil {
		return nil, err
	}
	if fileMap != nil {
		mergeMaps(configMap, fileMap)
		slog.Debug("Loaded config from file", "path", path)
	}

	// 3️⃣ 环境变量 (基于配置结构体的 key 自动生成绑定)
	if options.envPrefix != "" {
		for envKey, configPath := range generateEnvBindings(options.envPrefix, collectConfigKeys(defaults)) {
			if val := os.Getenv(envKey); val != "" {
				setByPath(configMap, configPath, val)
				slog.Debug("Loaded env binding", "env", envKey, "path", configPath)
			}
		}
	}

	// 4️⃣ CLI flags (仅当用户明确指定时)
	if options.cmd != nil {
		applyCLIFlags(options.cmd, configMap, reflect.TypeFor[Config](), "")
	}

	var cfg Config
	if err := decodeConfigMap(configMap, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// readConfigFile 返回首个可读配置文件的内容，未找到时返回 nil。
func readConfigFile(o *options) (map[string]any, string, error) {
	if o.configFile != "" {
		content, err := os.ReadFile(o.configFile)
		if err != nil {
			return nil, "", fmt.Errorf("read config file: %w", err)
		}
		m, err := o.parseFile(o.configFile, content)
		if err != nil {
			return nil, "", err
		}
		return m, o.configFile, nil
	}

	for _, path := range o.configPaths {
		content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
		if err != nil {
			continue // 文件不存在或无法读取，尝试下一个路径
		}
		m, err := o.parseFile(path, content)
		if err != nil {
			return nil, "", err
		}
		return m, path, nil
	}

	if len(o.configPaths) > 0 {
		slog.Debug("No config file found, using defaults")
	}

	return nil, "", nil
}

// parseFile 默认先展开环境变量引用，再按扩展名解析。
func (o *options) parseFile(path string, content []byte) (map[string]any, error) {
	if !o.noEnvExpansion {
		expanded, err := expandEnv(string(content), os.LookupEnv)
		if err != nil {
			return nil, fmt.Errorf("expand config file %s: %w", path, err)
		}
		content = []byte(expanded)
	}

	m, err := parseConfigBytes(path, content)
	if err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	slog.Debug("Parsed config file", "path", path, "envExpansion", !o.noEnvExpansion)

	return m, nil
}

// generateEnvBindings 根据配置 key 生成环境变量映射。
//
// 示例 (前缀 "SAFETPL_")：
//   - render.max-depth → SAFETPL_RENDER_MAX_DEPTH
//   - cache.size → SAFETPL_CACHE_SIZE
func generateEnvBindings(prefix string, keys []string) map[string]string {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	bindings := make(map[string]string, len(keys))
	for _, key := range keys {
		bindings[prefix+strings.ToUpper(replacer.Replace(key))] = key
	}

	return bindings
}

// applyCLIFlags 将用户显式设置的 CLI flags 写入配置 map。
//
// flag 名称由配置 key 生成，"." 替换为 "-"，如 render.max-depth → --render-max-depth。
func applyCLIFlags(cmd *cli.Command, config map[string]any, typ reflect.Type, prefix string) {
	for i := range typ.NumField() {
		field := typ.Field(i)

		key := configTagName(field)
		if key == "" {
			continue
		}
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if field.Type.Kind() == reflect.Struct {
			applyCLIFlags(cmd, config, field.Type, fullKey)
			continue
		}

		cliFlag := strings.ReplaceAll(fullKey, ".", "-")
		if !cmd.IsSet(cliFlag) {
			continue
		}

		switch field.Type.Kind() {
		case reflect.String:
			setByPath(config, fullKey, cmd.String(cliFlag))
		case reflect.Bool:
			setByPath(config, fullKey, cmd.Bool(cliFlag))
		case reflect.Int:
			setByPath(config, fullKey, cmd.Int(cliFlag))
		default:
			// 不支持的类型，忽略
		}
	}
}
