// Package failure 定义命令执行失败的封闭分类及其上报。
//
// 每种失败都实现 error 与 cli.ExitCoder，由 [Reporter] 统一输出诊断信息，
// 进程以 [ExitCode] 的返回值退出。
package failure

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"
)

// Kind 失败类别。
type Kind int

const (
	// KindCommand 命令自身报告的失败。
	KindCommand Kind = iota + 1
	// KindDomain 应用领域错误，带错误码与结果。
	KindDomain
	// KindLegacy 旧版服务错误，带类型、错误码与结果。
	KindLegacy
	// KindUnknown 未分类的错误。
	KindUnknown
	// KindFatal 不可恢复的错误 (panic)。
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindDomain:
		return "domain"
	case KindLegacy:
		return "legacy"
	case KindUnknown:
		return "unknown"
	case KindFatal:
		return "fatal"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// exitStatus 所有失败共用的退出码。
const exitStatus = 1

// Failure 是所有失败类别的公共接口。
type Failure interface {
	cli.ExitCoder
	Kind() Kind
}

// CommandFailure 命令报告的失败，仅有消息。
type CommandFailure struct {
	Message string
}

// Commandf 以格式化消息构造 [CommandFailure]。
func Commandf(format string, args ...any) *CommandFailure {
	return &CommandFailure{Message: fmt.Sprintf(format, args...)}
}

func (f *CommandFailure) Error() string { return f.Message }
func (f *CommandFailure) ExitCode() int { return exitStatus }
func (f *CommandFailure) Kind() Kind    { return KindCommand }

// DomainFailure 应用领域错误。
type DomainFailure struct {
	Code    string
	Message string
	Result  any
	Err     error
}

func (f *DomainFailure) Error() string {
	if f.Err != nil {
		return f.Code + ": " + f.Message + ": " + f.Err.Error()
	}

	return f.Code + ": " + f.Message
}
func (f *DomainFailure) Unwrap() error { return f.Err }
func (f *DomainFailure) ExitCode() int { return exitStatus }
func (f *DomainFailure) Kind() Kind    { return KindDomain }

// LegacyFailure 旧版服务错误，消息以 "type/message" 形式输出。
type LegacyFailure struct {
	Type    string
	Code    string
	Message string
	Result  any
}

func (f *LegacyFailure) Error() string { return f.Type + "/" + f.Message }
func (f *LegacyFailure) ExitCode() int { return exitStatus }
func (f *LegacyFailure) Kind() Kind    { return KindLegacy }

// UnknownFailure 包装未分类的错误。
type UnknownFailure struct {
	Err error
}

func (f *UnknownFailure) Error() string { return f.Err.Error() }
func (f *UnknownFailure) Unwrap() error { return f.Err }
func (f *UnknownFailure) ExitCode() int { return exitStatus }
func (f *UnknownFailure) Kind() Kind    { return KindUnknown }

// FatalFailure 由 recover 得到的 panic。
type FatalFailure struct {
	Value any
	Stack []byte
}

func (f *FatalFailure) Error() string { return fmt.Sprintf("fatal: %v", f.Value) }
func (f *FatalFailure) ExitCode() int { return exitStatus }
func (f *FatalFailure) Kind() Kind    { return KindFatal }

// Classify 将任意错误归入封闭分类；nil 返回 nil。
//
// 错误链中已有的 Failure 保持原类别，其余归为 [UnknownFailure]。
func Classify(err error) Failure {
	if err == nil {
		return nil
	}

	var (
		command *CommandFailure
		domain  *DomainFailure
		legacy  *LegacyFailure
		unknown *UnknownFailure
		fatal   *FatalFailure
	)
	switch {
	case errors.As(err, &fatal):
		return fatal
	case errors.As(err, &command):
		return command
	case errors.As(err, &domain):
		return domain
	case errors.As(err, &legacy):
		return legacy
	case errors.As(err, &unknown):
		return unknown
	default:
		return &UnknownFailure{Err: err}
	}
}

// ExitCode 返回 err 对应的进程退出码，nil 为 0。
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}

	return exitStatus
}
