package cfgm

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"slices"
	"strings"

	"github.com/lwmacct/251216-go-ksctl/pkg/templexp"
)

// Report 记录一次加载的细节。
type Report struct {
	// Path 命中的配置文件，未命中时为空
	Path string
	// Searched 实际查找过的路径 (已按基准目录解析)
	Searched []string
	// Env 生效的环境变量名
	Env []string
	// UnknownOverrides 结构体中不存在的覆盖 key
	UnknownOverrides []string
}

// Found 报告是否命中了配置文件。
func (r *Report) Found() bool {
	return r.Path != ""
}

// DefaultPaths 返回默认配置文件的搜索顺序。
//
// appName 可选，提供后会追加应用专属路径。
// 返回顺序即查找顺序，先命中的文件生效。
//
// 优先级 (从高到低)：
//  1. ./.appname.yaml - 当前目录应用配置
//  2. ~/.appname.yaml - 用户主目录配置
//  3. /etc/appname/config.yaml - 系统级配置
//  4. config.yaml - 当前目录通用配置
//  5. config/config.yaml - 子目录通用配置
func DefaultPaths(appName ...string) []string {
	var paths []string

	if len(appName) > 0 && appName[0] != "" {
		name := appName[0]
		paths = append(paths, "."+name+".yaml")
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, "."+name+".yaml"))
		}
		paths = append(paths, "/etc/"+name+"/config.yaml")
	}

	paths = append(paths, "config.yaml", "config/config.yaml")

	return paths
}

// FindProjectRoot 从调用者源文件所在目录向上查找 go.mod，返回其所在目录。
//
// skip 含义同 [runtime.Caller]，0 表示 FindProjectRoot 的直接调用者。
func FindProjectRoot(skip int) (string, error) {
	_, file, _, ok := runtime.Caller(skip + 1)
	if !ok {
		return "", errors.New("cfgm: unable to determine caller")
	}

	dir := filepath.Dir(file)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("cfgm: go.mod not found above %s", filepath.Dir(file))
		}
		dir = parent
	}
}

// Load 读取配置并按优先级合并。
//
// 优先级 (从低到高)：
//  1. 默认值 - defaultConfig
//  2. 配置文件 - [WithConfigPaths] / [WithAppName]
//  3. 环境变量(前缀) - [WithEnvPrefix]
//  4. 覆盖值 - [WithOverrides]
//
// 配置 key 由 json tag 定义，YAML 与 JSON 共享同一套 key。
// 配置文件按顺序查找，命中首个文件即停止。
func Load[T any](defaultConfig T, opts ...Option) (*T, error) {
	return load(defaultConfig, 2, opts...)
}

// MustLoad 调用 [Load] 并在失败时 panic，适合启动阶段。
func MustLoad[T any](defaultConfig T, opts ...Option) *T {
	cfg, err := load(defaultConfig, 2, opts...)
	if err != nil {
		panic(fmt.Sprintf("cfgm: failed to load config: %v", err))
	}

	return cfg
}

// load 是内部加载实现，callerSkip 为 FindProjectRoot 相对 load 的跳过层数。
func load[T any](defaultConfig T, callerSkip int, opts ...Option) (*T, error) {
	options := &options{}
	for _, opt := range opts {
		opt(options)
	}
	if options.callerSkip > 0 {
		callerSkip = options.callerSkip
	}

	report := options.report
	if report == nil {
		report = &Report{}
	}
	*report = Report{}

	// 默认使用项目根目录作为相对路径基准
	if !options.baseDirSet {
		if root, err := FindProjectRoot(callerSkip); err == nil {
			options.baseDir = root
		}
	}

	if !options.configPathsSet {
		options.configPaths = DefaultPaths(options.appName)
	}

	configMap := structToMap(defaultConfig)

	// 2️⃣ 配置文件 (按顺序搜索，找到第一个即停止)
	for _, path := range resolvePaths(options.baseDir, options.configPaths) {
		report.Searched = append(report.Searched, path)

		content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
		if err != nil {
			continue
		}

		if !options.noTemplateExpansion {
			expanded, expandErr := templexp.New(options.vars).Expand(string(content))
			if expandErr != nil {
				return nil, fmt.Errorf("expand template in %s: %w", path, expandErr)
			}
			content = []byte(expanded)
		}

		fileMap, err := parseConfigBytes(path, content)
		if err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
		mergeMaps(configMap, fileMap)

		slog.Debug("Loaded config from file", "path", path, "templateExpansion", !options.noTemplateExpansion)
		report.Path = path

		break
	}
	if !report.Found() {
		slog.Debug("No config file found, using defaults", "searched", len(report.Searched))
	}

	keys := Keys(defaultConfig)

	// 3️⃣ 环境变量 (基于配置结构体的 key 自动绑定)
	if options.envPrefix != "" {
		bindings := generateEnvBindings(options.envPrefix, keys)
		for envKey, configPath := range bindings {
			if val := os.Getenv(envKey); val != "" {
				setByPath(configMap, configPath, val)
				report.Env = append(report.Env, envKey)
			}
		}
		slices.Sort(report.Env)
		slog.Debug("Applied env bindings", "prefix", options.envPrefix, "matched", len(report.Env))
	}

	// 4️⃣ 覆盖值 (最高优先级)
	for key, val := range options.overrides {
		if !slices.Contains(keys, key) {
			report.UnknownOverrides = append(report.UnknownOverrides, key)

			continue
		}
		setByPath(configMap, key, val)
	}
	slices.Sort(report.UnknownOverrides)

	var cfg T
	if err := decodeConfigMap(configMap, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func resolvePaths(baseDir string, paths []string) []string {
	if baseDir == "" {
		return paths
	}

	resolved := make([]string, len(paths))
	for i, p := range paths {
		if filepath.IsAbs(p) {
			resolved[i] = p
		} else {
			resolved[i] = filepath.Join(baseDir, p)
		}
	}

	return resolved
}

// Keys 返回配置结构体的叶子 key 列表 (如 db.table-prefix)，按 json tag 生成。
func Keys[T any](cfg T) []string {
	var keys []string
	collectKeys(reflect.TypeOf(cfg), "", &keys)

	return keys
}

func collectKeys(typ reflect.Type, prefix string, keys *[]string) {
	if typ == nil {
		return
	}
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}

	for i := range typ.NumField() {
		field := typ.Field(i)

		key := configTagName(field)
		if key == "" {
			continue
		}
		if prefix != "" {
			key = prefix + "." + key
		}

		if isStructType(field.Type) {
			collectKeys(field.Type, key, keys)

			continue
		}

		*keys = append(*keys, key)
	}
}

// generateEnvBindings 根据配置 key 生成环境变量映射。
//
// 转换规则：
//   - key 中的 "." 和 "-" 转为 "_"
//   - 转为大写
//   - 添加前缀
//
// 示例 (前缀 "KS_")：
//   - db.dsn → KS_DB_DSN
//   - log.max-size → KS_LOG_MAX_SIZE
func generateEnvBindings(prefix string, keys []string) map[string]string {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	bindings := make(map[string]string, len(keys))
	for _, key := range keys {
		bindings[prefix+strings.ToUpper(replacer.Replace(key))] = key
	}

	return bindings
}
