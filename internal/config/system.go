package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lwmacct/251216-go-ksctl/internal/version"
	"github.com/lwmacct/251216-go-ksctl/pkg/cfgm"
)

// RootEnv 指定安装根目录的环境变量，未设置时使用当前工作目录。
const RootEnv = "KS_ROOT"

// EnvPrefix 配置项环境变量前缀。
const EnvPrefix = "KS_"

// SystemInfo 启动阶段解析出的系统信息。
type SystemInfo struct {
	Root     string
	Version  string
	Revision string
	Config   Config
	// ConfigExists 是否找到了配置文件
	ConfigExists bool
	// ConfigPath 已加载的配置文件；未找到时为默认写入位置
	ConfigPath string
	// UnknownOverrides 不属于 Config 的覆盖 key
	UnknownOverrides []string
}

// LoadOptions 加载参数。
type LoadOptions struct {
	// Root 为空时由 ResolveRoot 决定
	Root string
	// Overrides 点分 key 覆盖，来自 --config:key=value
	Overrides map[string]string
	// ConfigPaths 为空时使用 cfgm.DefaultPaths(version.AppRawName)
	ConfigPaths []string
}

// ResolveRoot 返回安装根目录的绝对路径。
func ResolveRoot() (string, error) {
	root := os.Getenv(RootEnv)
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		root = wd
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root %s: %w", root, err)
	}

	return abs, nil
}

// Load 解析根目录并加载配置。
func Load(opts LoadOptions) (*SystemInfo, error) {
	root := opts.Root
	if root == "" {
		var err error
		if root, err = ResolveRoot(); err != nil {
			return nil, err
		}
	}

	loadOpts := []cfgm.Option{
		cfgm.WithAppName(version.AppRawName),
		cfgm.WithBaseDir(root),
		cfgm.WithEnvPrefix(EnvPrefix),
		cfgm.WithTemplateVars(map[string]string{RootEnv: root}),
		cfgm.WithOverrides(opts.Overrides),
	}
	if len(opts.ConfigPaths) > 0 {
		loadOpts = append(loadOpts, cfgm.WithConfigPaths(opts.ConfigPaths...))
	}

	var report cfgm.Report
	cfg, err := cfgm.Load(DefaultConfig(), append(loadOpts, cfgm.WithReport(&report))...)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	info := &SystemInfo{
		Root:             root,
		Version:          version.Version,
		Revision:         version.Revision,
		Config:           *cfg,
		ConfigExists:     report.Found(),
		ConfigPath:       report.Path,
		UnknownOverrides: report.UnknownOverrides,
	}
	if !info.ConfigExists {
		info.ConfigPath = filepath.Join(root, "config.yaml")
	}

	return info, nil
}

// Path 将相对路径解析到根目录下，绝对路径原样返回。
func (s *SystemInfo) Path(rel string) string {
	if rel == "" || filepath.IsAbs(rel) {
		return rel
	}

	return filepath.Join(s.Root, rel)
}

// Update 将点分 key 写入 ConfigPath 并更新 Config / ConfigExists。
//
// 只改写给出的 key：文件中的 ${VAR} 引用保持原文，环境变量提供的值不会落盘。
// 存在不属于 Config 的 key 时不写文件，通过 unknown 返回。
func (s *SystemInfo) Update(values map[string]string) ([]string, error) {
	cfg, unknown, err := s.Apply(values)
	if err != nil || len(unknown) > 0 {
		return unknown, err
	}

	if err := cfgm.UpdateFile[Config](s.ConfigPath, values); err != nil {
		return nil, err
	}
	s.Config = cfg
	s.ConfigExists = true

	return nil, nil
}

// Apply 在当前配置上应用点分 key，返回新配置，不修改 s。
//
// 不属于 Config 的 key 通过 unknown 返回。
func (s *SystemInfo) Apply(values map[string]string) (Config, []string, error) {
	var report cfgm.Report
	cfg, err := cfgm.Load(s.Config,
		cfgm.WithBaseDir(s.Root),
		cfgm.WithConfigPaths(),
		cfgm.WithOverrides(values),
		cfgm.WithReport(&report),
	)
	if err != nil {
		return Config{}, nil, fmt.Errorf("apply configuration: %w", err)
	}

	return *cfg, report.UnknownOverrides, nil
}
