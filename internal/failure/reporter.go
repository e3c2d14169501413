package failure

import (
	"fmt"
	"log/slog"
	"runtime/debug"
)

// Reporter 接收已分类的失败并输出诊断信息。
type Reporter interface {
	ReportFailure(f Failure)
}

// LogReporter 以 slog 输出失败。
type LogReporter struct {
	Logger *slog.Logger
}

// NewLogReporter 创建 LogReporter，logger 为 nil 时使用 slog.Default()。
func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}

	return &LogReporter{Logger: logger}
}

// ReportFailure 按类别输出 "Command failed" 及其附带字段。
func (r *LogReporter) ReportFailure(f Failure) {
	switch f := f.(type) {
	case *CommandFailure:
		r.Logger.Error("Command failed: " + f.Message)
	case *DomainFailure:
		attrs := []any{"code", f.Code, "msg", f.Message, "result", f.Result}
		if f.Err != nil {
			attrs = append(attrs, "error", f.Err)
		}
		r.Logger.Error("Command failed", attrs...)
	case *LegacyFailure:
		r.Logger.Error("Command failed", "code", f.Code, "msg", f.Type+"/"+f.Message, "result", f.Result)
	case *UnknownFailure:
		r.Logger.Error("Command failed, unknown error", "msg", f.Error(), "type", fmt.Sprintf("%T", f.Err))
	case *FatalFailure:
		r.Logger.Error("FATAL ERROR", "msg", fmt.Sprint(f.Value), "stack", string(f.Stack))
	case nil:
	default:
		r.Logger.Error("Command failed", "kind", f.Kind().String(), "msg", f.Error())
	}
}

// Recover 在 defer 中调用，将 panic 转为 [FatalFailure] 写入 *errp。
//
//	func run() (err error) {
//	    defer failure.Recover(&err)
//	    ...
//	}
func Recover(errp *error) {
	if v := recover(); v != nil {
		*errp = &FatalFailure{Value: v, Stack: debug.Stack()}
	}
}
