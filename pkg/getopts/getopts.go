package getopts

import (
	"log/slog"
	"slices"
	"strings"
)

// EndOfOptions 选项结束标记，其后的所有 token 原样进入 Arguments。
const EndOfOptions = "--"

// Result 一次调用的解析结果，构建后只读。
type Result struct {
	Commands  []string `json:"commands"`
	Options   Options  `json:"options"`
	Flags     []string `json:"flags"`
	Arguments []string `json:"arguments"`
}

// Parse 解析完整的进程参数，argv[0] (程序路径) 会被丢弃。
func Parse(argv []string) *Result {
	if len(argv) == 0 {
		return Tokenize(nil)
	}

	return Tokenize(argv[1:])
}

// Tokenize 将参数序列归类为 commands / options / flags / arguments。
//
// 对任何输入都不会失败；只有单独的 "--" 被丢弃。
func Tokenize(args []string) *Result {
	res := &Result{
		Commands:  []string{},
		Options:   Options{},
		Flags:     []string{},
		Arguments: []string{},
	}

	endOfOptions := false
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if endOfOptions {
			res.Arguments = append(res.Arguments, arg)
			continue
		}

		if strings.HasPrefix(arg, "--") {
			if arg == EndOfOptions {
				endOfOptions = true
				continue
			}
			i = res.parseLong(args, i)
			continue
		}

		if strings.HasPrefix(arg, "-") && arg != "-" {
			for _, ch := range arg[1:] {
				res.Flags = append(res.Flags, string(ch))
			}
			continue
		}

		res.Commands = append(res.Commands, arg)
	}

	return res
}

// parseLong 处理 args[i] 处的长选项，返回最后消费的下标。
func (r *Result) parseLong(args []string, i int) int {
	name := args[i][2:]
	value := ""

	switch {
	case strings.Contains(name, ":"):
		// --name:key=value 或 --name:value，":" 优先于 "="
		var rest string
		name, rest, _ = strings.Cut(name, ":")
		if key, val, ok := strings.Cut(rest, "="); ok {
			r.Options.setNested(name, key, val)

			return i
		}
		value = rest
	case strings.Contains(name, "="):
		name, value, _ = strings.Cut(name, "=")
	default:
		// 后续非 "-" 开头的 token 以空格拼接为值
		var parts []string
		for i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			parts = append(parts, args[i])
		}
		value = strings.TrimRight(strings.Join(parts, " "), " ")
	}

	if value != "" {
		r.Options[name] = StringValue(value)
	} else {
		r.Options[name] = PresentValue()
	}

	return i
}

// Command 返回命令名与其位置参数。
func (r *Result) Command() (string, []string, bool) {
	if len(r.Commands) == 0 {
		return "", nil, false
	}

	return r.Commands[0], r.Commands[1:], true
}

// HasFlag 报告短 flag 是否出现过。
func (r *Result) HasFlag(flag string) bool {
	return slices.Contains(r.Flags, flag)
}

// LogValue 实现 [slog.LogValuer]，选项按名称排序输出。
func (r *Result) LogValue() slog.Value {
	names := make([]string, 0, len(r.Options))
	for name := range r.Options {
		names = append(names, name)
	}
	slices.Sort(names)

	opts := make([]any, 0, len(names))
	for _, name := range names {
		opts = append(opts, slog.String(name, r.Options[name].String()))
	}

	return slog.GroupValue(
		slog.Any("commands", r.Commands),
		slog.Group("options", opts...),
		slog.Any("flags", r.Flags),
		slog.Any("arguments", r.Arguments),
	)
}
