// Package ksctl 提供根命令：解析命令行并分派到已注册的命令。
package ksctl

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251216-go-ksctl/internal/version"
)

// Command 根命令
var Command = New()

// New 创建根命令。
//
// 参数不经 urfave/cli 解析，原样交给 getopts；失败的退出码由调用方通过 failure.ExitCode 决定。
func New() *cli.Command {
	return &cli.Command{
		Name:            version.AppRawName,
		Usage:           "安装维护命令行工具",
		UsageText:       version.AppRawName + " <command> [args...] [--option[=value]] [--config:<key>=<value>] [-flags] [-- arguments]",
		Version:         version.GetVersion(),
		SkipFlagParsing: true,
		HideHelp:        true,
		HideVersion:     true,
		ExitErrHandler:  func(context.Context, *cli.Command, error) {},
		Action:          action,
	}
}
