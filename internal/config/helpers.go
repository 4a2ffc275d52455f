package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	yamlv3 "go.yaml.in/yaml/v3"
)

func configTagName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	return name
}

// collectConfigKeys 以 json tag 收集叶子 key，如 render.max-depth。
func collectConfigKeys(cfg any) []string {
	var keys []string
	collectKeys(reflect.TypeOf(cfg), "", &keys)

	return keys
}

func collectKeys(typ reflect.Type, prefix string, keys *[]string) {
	for i := range typ.NumField() {
		field := typ.Field(i)
		key := configTagName(field)
		if key == "" {
			continue
		}
		if prefix != "" {
			key = prefix + "." + key
		}

		if field.Type.Kind() == reflect.Struct {
			collectKeys(field.Type, key, keys)
			continue
		}
		*keys = append(*keys, key)
	}
}

// structToMap 将配置结构体转为以 json tag 为 key 的嵌套 map。
func structToMap(cfg any) map[string]any {
	return structValueToMap(reflect.ValueOf(cfg))
}

func structValueToMap(val reflect.Value) map[string]any {
	typ := val.Type()
	out := make(map[string]any, typ.NumField())
	for i := range typ.NumField() {
		field := typ.Field(i)
		key := configTagName(field)
		if !field.IsExported() || key == "" {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			out[key] = structValueToMap(val.Field(i))
			continue
		}
		out[key] = val.Field(i).Interface()
	}

	return out
}

func parseConfigBytes(path string, content []byte) (map[string]any, error) {
	var raw any
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(content, &raw)
	} else {
		err = yamlv3.Unmarshal(content, &raw)
	}
	if err != nil {
		return nil, err
	}

	switch m := normalizeMapKeys(raw).(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return m, nil
	default:
		return nil, errors.New("config root must be object")
	}
}

func normalizeMapKeys(val any) any {
	switch typed := val.(type) {
	case map[string]any:
		for key, value := range typed {
			typed[key] = normalizeMapKeys(value)
		}
		return typed
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[fmt.Sprint(key)] = normalizeMapKeys(value)
		}
		return out
	case []any:
		for i := range typed {
			typed[i] = normalizeMapKeys(typed[i])
		}
		return typed
	default:
		return val
	}
}

func mergeMaps(dst, src map[string]any) {
	for key, value := range src {
		if valueMap, ok := value.(map[string]any); ok {
			if dstMap, ok := dst[key].(map[string]any); ok {
				mergeMaps(dstMap, valueMap)
				continue
			}
		}

		dst[key] = value
	}
}

func setByPath(dst map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := dst
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

func decodeConfigMap(data map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "json",
	})
	if err != nil {
		return err
	}

	return decoder.Decode(data)
}
