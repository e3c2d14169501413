package ksctl

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251216-go-ksctl/internal/app"
	"github.com/lwmacct/251216-go-ksctl/internal/builtin"
	"github.com/lwmacct/251216-go-ksctl/internal/config"
	"github.com/lwmacct/251216-go-ksctl/internal/failure"
	"github.com/lwmacct/251216-go-ksctl/internal/logging"
	"github.com/lwmacct/251216-go-ksctl/internal/prompt"
	"github.com/lwmacct/251216-go-ksctl/internal/registry"
	"github.com/lwmacct/251216-go-ksctl/pkg/getopts"
)

func action(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	res := getopts.Tokenize(args)

	// 加载配置：默认值 → 配置文件 → 环境变量 → --config:key=value
	info, err := config.Load(config.LoadOptions{Overrides: res.Options.Nested(builtin.ConfigOption)})
	if err != nil {
		return fail(slog.Default(), err)
	}

	level := "info"
	if info.Config.Debug {
		level = "debug"
	}
	logger, closer := logging.New(logging.Options{
		Level:  level,
		Format: info.Config.Log.Format,
		Stdout: errWriter(cmd),
		File:   info.Path(info.Config.Log.File),
		Rotation: logging.Rotation{
			MaxSize:    info.Config.Log.MaxSize,
			MaxBackups: info.Config.Log.MaxBackups,
			MaxAge:     info.Config.Log.MaxAge,
			Compress:   info.Config.Log.Compress,
		},
	})
	defer func() { _ = closer.Close() }()
	slog.SetDefault(logger)

	logger.Debug("ksctl", "version", info.Version, "revision", info.Revision, "root", info.Root)
	logger.Debug("Arguments", "argv", args)
	for _, key := range info.UnknownOverrides {
		logger.Warn("Unknown configuration key", "key", key)
	}

	reg := registry.New()
	if err := builtin.Register(reg, builtin.Deps{Info: info, Logger: logger}); err != nil {
		return fail(logger, err)
	}

	dispatcher := &app.Dispatcher{
		Registry: reg,
		Info:     info,
		Prompter: prompt.New(reader(cmd), errWriter(cmd)),
		Reporter: failure.NewLogReporter(logger),
		Logger:   logger,
		Out:      writer(cmd),
	}

	return dispatcher.Run(ctx, res)
}

// fail 上报启动阶段的错误。
func fail(logger *slog.Logger, err error) error {
	f := failure.Classify(err)
	failure.NewLogReporter(logger).ReportFailure(f)

	return f
}

func reader(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}

	return os.Stdin
}

func writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}

	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}

	return os.Stderr
}
