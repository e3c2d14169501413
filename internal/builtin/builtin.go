// Package builtin 注册 CLI 自带的维护命令。
package builtin

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/lwmacct/251216-go-ksctl/internal/config"
	"github.com/lwmacct/251216-go-ksctl/internal/failure"
	"github.com/lwmacct/251216-go-ksctl/internal/registry"
	"github.com/lwmacct/251216-go-ksctl/internal/version"
)

// ConfigOption 携带点分配置项的嵌套选项名，即 --config:db.dsn=...
const ConfigOption = "config"

// Deps 内置命令的依赖。
type Deps struct {
	Info   *config.SystemInfo
	Logger *slog.Logger
}

func (d Deps) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}

	return slog.Default()
}

// Register 将内置命令注册到 reg。
func Register(reg *registry.Registry, deps Deps) error {
	for _, cmd := range []registry.Command{
		registry.Func("version", "Show version information", deps.version),
		registry.Func("system:info", "Show installation root and configuration state", deps.systemInfo),
		registry.Func("system:config", "Write configuration keys given as --config:<key>=<value>", deps.systemConfig),
		registry.Func("installer:perform", "Write configuration and initialize the database", deps.installerPerform),
		registry.Func("database:check", "Open and ping the configured database", deps.databaseCheck),
	} {
		if err := reg.Register(cmd); err != nil {
			return err
		}
	}

	return nil
}

// VersionResult version 命令的结果。
type VersionResult struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Revision string `json:"revision"`
}

func (d Deps) version(context.Context, *registry.Input) (any, error) {
	return VersionResult{
		Name:     version.AppRawName,
		Version:  d.Info.Version,
		Revision: d.Info.Revision,
	}, nil
}

// InfoResult system:info 命令的结果。
type InfoResult struct {
	Root         string `json:"root"`
	Version      string `json:"version"`
	Revision     string `json:"revision"`
	ConfigPath   string `json:"config_path"`
	ConfigExists bool   `json:"config_exists"`
	Debug        bool   `json:"debug"`
}

func (d Deps) systemInfo(context.Context, *registry.Input) (any, error) {
	return InfoResult{
		Root:         d.Info.Root,
		Version:      d.Info.Version,
		Revision:     d.Info.Revision,
		ConfigPath:   d.Info.ConfigPath,
		ConfigExists: d.Info.ConfigExists,
		Debug:        d.Info.Config.Debug,
	}, nil
}

// ConfigResult system:config 命令的结果。
type ConfigResult struct {
	Path string   `json:"path"`
	Keys []string `json:"keys"`
}

func (d Deps) systemConfig(_ context.Context, in *registry.Input) (any, error) {
	values := in.Options.Nested(ConfigOption)
	if len(values) == 0 {
		return nil, failure.Commandf("Nothing to configure, pass --%s:<key>=<value>", ConfigOption)
	}

	if err := d.writeConfig(values); err != nil {
		return nil, err
	}

	return ConfigResult{
		Path: d.Info.ConfigPath,
		Keys: slices.Sorted(maps.Keys(values)),
	}, nil
}

// writeConfig 将 values 写入配置文件并更新当前配置。
func (d Deps) writeConfig(values map[string]string) error {
	unknown, err := d.Info.Update(values)
	if err != nil {
		return err
	}
	if len(unknown) > 0 {
		return failure.Commandf("Unknown configuration keys %v", unknown)
	}
	d.logger().Info("Configuration written", "path", d.Info.ConfigPath)

	return nil
}
