// Package app 将解析后的命令行分派到已注册的命令。
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lwmacct/251216-go-ksctl/internal/builtin"
	"github.com/lwmacct/251216-go-ksctl/internal/config"
	"github.com/lwmacct/251216-go-ksctl/internal/failure"
	"github.com/lwmacct/251216-go-ksctl/internal/prompt"
	"github.com/lwmacct/251216-go-ksctl/internal/registry"
	"github.com/lwmacct/251216-go-ksctl/pkg/getopts"
)

// 分派流程中有特殊处理的命令。
const (
	CommandList         = "list"
	CommandSystemConfig = "system:config"
	CommandInstall      = "installer:perform"
	installerPrefix     = "installer:"
)

// dbQuestions 配置数据库时依次询问的配置项。
var dbQuestions = []struct {
	key   string
	title string
}{
	{key: "db.dsn", title: "Enter database DSN:"},
	{key: "db.user", title: "Enter database user:"},
	{key: "db.password", title: "Enter database password:"},
}

// Dispatcher 执行一次命令行调用。
type Dispatcher struct {
	Registry *registry.Registry
	Info     *config.SystemInfo
	// Prompter 为 nil 时不询问缺失的数据库配置
	Prompter prompt.Prompter
	// Reporter 为 nil 时使用 failure.NewLogReporter(Logger)
	Reporter failure.Reporter
	Logger   *slog.Logger
	// Out 命令结果输出
	Out io.Writer
}

func (d *Dispatcher) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}

	return slog.Default()
}

// Run 分派 res 中的命令。
//
// 未指定命令、系统未配置、命令不存在时只记录日志并返回 nil。
// 命令返回的错误与 panic 经 Reporter 上报后以 [failure.Failure] 返回。
func (d *Dispatcher) Run(ctx context.Context, res *getopts.Result) (err error) {
	defer d.report(&err)
	defer failure.Recover(&err)

	log := d.logger()
	log.Info("Parsed arguments", "args", res)

	name, rest, ok := res.Command()
	if !ok {
		log.Info("No command specified")

		return nil
	}

	if name == CommandList {
		prefix := ""
		if len(rest) > 0 {
			prefix = rest[0]
		}

		return d.print(d.Registry.List(prefix))
	}

	configured := d.Info.ConfigExists
	if !configured && name != CommandSystemConfig && !strings.HasPrefix(name, installerPrefix) {
		log.Info("System not configured, create configuration first with 'installer:perform' or command 'system:config'")

		return nil
	}

	if name == CommandSystemConfig || (name == CommandInstall && !configured) {
		if err := d.askDatabase(res.Options); err != nil {
			return err
		}
	}

	if !d.Registry.Exists(name) {
		log.Info("Command not found [" + name + "]")

		return nil
	}

	out, err := d.Registry.Execute(ctx, name, registry.NewInput(res))
	if err != nil {
		return err
	}
	log.Info("Result:", "command", name, "result", out)

	return d.print(out)
}

// askDatabase 询问未通过选项给出且当前配置为空的数据库配置项，结果写回 config 嵌套选项。
func (d *Dispatcher) askDatabase(opts getopts.Options) error {
	if d.Prompter == nil {
		return nil
	}

	values := opts.Nested(builtin.ConfigOption)
	if values == nil {
		values = make(map[string]string)
	}

	current := map[string]string{
		"db.dsn":      d.Info.Config.DB.DSN,
		"db.user":     d.Info.Config.DB.User,
		"db.password": d.Info.Config.DB.Password,
	}

	asked := false
	for _, q := range dbQuestions {
		if values[q.key] != "" || current[q.key] != "" {
			continue
		}

		answer, err := d.Prompter.Prompt(q.title)
		if err != nil {
			return fmt.Errorf("prompt %s: %w", q.key, err)
		}
		if answer != "" {
			values[q.key] = answer
		}
		asked = true
	}

	if asked && len(values) > 0 {
		opts[builtin.ConfigOption] = getopts.NestedValue(values)
	}

	return nil
}

// print 输出命令结果：字符串原样输出，其它值输出为缩进 JSON。
func (d *Dispatcher) print(v any) error {
	if v == nil || d.Out == nil {
		return nil
	}

	if s, ok := v.(string); ok {
		_, err := fmt.Fprintln(d.Out, s)

		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintln(d.Out, string(data))

	return err
}

func (d *Dispatcher) report(errp *error) {
	f := failure.Classify(*errp)
	if f == nil {
		return
	}

	reporter := d.Reporter
	if reporter == nil {
		reporter = failure.NewLogReporter(d.logger())
	}
	reporter.ReportFailure(f)
	*errp = f
}
