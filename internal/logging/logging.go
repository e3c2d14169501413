// Package logging 构建应用 slog.Logger：终端输出 + 可选的滚动日志文件。
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation 日志文件滚动参数，含义同 lumberjack.Logger。
type Rotation struct {
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// Options 日志构建参数。
type Options struct {
	Level  string // debug|info|warn|error，默认 info
	Format string // text|json，默认 text
	// Stdout 终端输出，nil 表示不输出到终端
	Stdout io.Writer
	// File 日志文件路径，为空时不写文件
	File     string
	Rotation Rotation
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Bootstrap 返回配置加载之前使用的最小 logger。
func Bootstrap() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// ParseLevel 将字符串解析为 slog.Level，无法识别时为 info。
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New 创建 logger，返回的 io.Closer 用于关闭日志文件。
func New(opts Options) (*slog.Logger, io.Closer) {
	var (
		writers []io.Writer
		closer  io.Closer = nopCloser{}
	)

	if opts.Stdout != nil {
		writers = append(writers, opts.Stdout)
	}
	if opts.File != "" {
		file := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.Rotation.MaxSize,
			MaxBackups: opts.Rotation.MaxBackups,
			MaxAge:     opts.Rotation.MaxAge,
			Compress:   opts.Rotation.Compress,
		}
		writers = append(writers, file)
		closer = file
	}

	var w io.Writer
	switch len(writers) {
	case 0:
		w = io.Discard
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}

	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	var handler slog.Handler
	if opts.Format == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(handler), closer
}
