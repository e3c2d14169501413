package cfgm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	yamlv3 "go.yaml.in/yaml/v3"
)

// MarshalYAML 按 json tag 将配置编码为 YAML，key 与 [Load] 读取时一致。
func MarshalYAML[T any](cfg T) ([]byte, error) {
	return encodeYAML(structToMap(cfg))
}

// MarshalJSON 按 json tag 将配置编码为缩进 JSON。
func MarshalJSON[T any](cfg T) ([]byte, error) {
	return json.MarshalIndent(structToMap(cfg), "", "  ")
}

// WriteFile 将配置写入 path，扩展名为 .json 时写 JSON，否则写 YAML。
//
// 父目录不存在时会被创建；文件权限为 0600 (配置中可能包含密码)。
func WriteFile[T any](path string, cfg T) error {
	return writeMap(path, structToMap(cfg))
}

// UpdateFile 只修改配置文件中给出的点分 key，其余内容按原文保留。
//
// 文件以原始形式读取：不做模板展开，不叠加默认值与环境变量，
// 因此 ${VAR} 引用不会被替换为展开后的值。文件不存在时新建。
// 值按 T 中对应字段的类型转换，不属于 T 的 key 返回错误。
func UpdateFile[T any](path string, values map[string]string) error {
	var zero T
	keys := Keys(zero)

	typedMap := make(map[string]any, len(values))
	for key, val := range values {
		if !slices.Contains(keys, key) {
			return fmt.Errorf("cfgm: unknown config key %s", key)
		}
		setByPath(typedMap, key, val)
	}

	var typed T
	if err := decodeConfigMap(typedMap, &typed); err != nil {
		return fmt.Errorf("convert config values: %w", err)
	}
	converted := structToMap(typed)

	raw := map[string]any{}
	content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
	switch {
	case err == nil:
		if raw, err = parseConfigBytes(path, content); err != nil {
			return fmt.Errorf("parse config file %s: %w", path, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	for key := range values {
		setByPath(raw, key, getByPath(converted, key))
	}

	return writeMap(path, raw)
}

func encodeYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yamlv3.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}

	return buf.Bytes(), nil
}

func writeMap(path string, m map[string]any) error {
	var (
		content []byte
		err     error
	)
	if isJSONPath(path) {
		content, err = json.MarshalIndent(m, "", "  ")
		content = append(content, '\n')
	} else {
		content, err = encodeYAML(m)
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return fmt.Errorf("write config file %s: %w", path, err)
	}

	return nil
}
