// Package registry 提供命令注册表：按名称查找并执行命令。
package registry

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/lwmacct/251216-go-ksctl/pkg/getopts"
)

var (
	// ErrNotFound 命令未注册。
	ErrNotFound = errors.New("registry: command not found")
	// ErrDuplicate 同名命令已注册。
	ErrDuplicate = errors.New("registry: command already registered")
)

// Input 传给命令的调用参数。
type Input struct {
	// Args 命令名之后的位置参数
	Args      []string
	Options   getopts.Options
	Flags     []string
	Arguments []string
}

// NewInput 由解析结果构造 Input，位置参数不含命令名。
func NewInput(res *getopts.Result) *Input {
	in := &Input{
		Options:   res.Options,
		Flags:     res.Flags,
		Arguments: res.Arguments,
	}
	if _, rest, ok := res.Command(); ok {
		in.Args = rest
	}

	return in
}

// Command 可执行命令。
type Command interface {
	// Name 命令标识，如 "system:config"
	Name() string
	// Description 一行说明，用于 list
	Description() string
	// Execute 执行命令，返回值会被输出到终端
	Execute(ctx context.Context, in *Input) (any, error)
}

// Info 命令摘要。
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type funcCommand struct {
	name        string
	description string
	fn          func(ctx context.Context, in *Input) (any, error)
}

func (c *funcCommand) Name() string        { return c.name }
func (c *funcCommand) Description() string { return c.description }
func (c *funcCommand) Execute(ctx context.Context, in *Input) (any, error) {
	return c.fn(ctx, in)
}

// Func 将函数包装为 Command。
func Func(name, description string, fn func(ctx context.Context, in *Input) (any, error)) Command {
	return &funcCommand{name: name, description: description, fn: fn}
}

// Registry 并发安全的命令注册表。
type Registry struct {
	mu   sync.RWMutex
	cmds map[string]Command
}

// New 创建空注册表。
func New() *Registry {
	return &Registry{cmds: make(map[string]Command)}
}

// Register 注册命令。
func (r *Registry) Register(cmd Command) error {
	if cmd == nil {
		return errors.New("registry: command cannot be nil")
	}

	name := cmd.Name()
	if name == "" {
		return errors.New("registry: command name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.cmds[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	r.cmds[name] = cmd

	return nil
}

// MustRegister 注册命令，失败时 panic。
func (r *Registry) MustRegister(cmds ...Command) {
	for _, cmd := range cmds {
		if err := r.Register(cmd); err != nil {
			panic(err)
		}
	}
}

// Exists 报告命令是否已注册。
func (r *Registry) Exists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.cmds[name]

	return ok
}

// Get 返回已注册的命令。
func (r *Registry) Get(name string) (Command, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmd, ok := r.cmds[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return cmd, nil
}

// List 返回名称以 prefix 开头的命令摘要，按名称排序；prefix 为空返回全部。
func (r *Registry) List(prefix string) []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]Info, 0, len(r.cmds))
	for name, cmd := range r.cmds {
		if strings.HasPrefix(name, prefix) {
			infos = append(infos, Info{Name: name, Description: cmd.Description()})
		}
	}
	slices.SortFunc(infos, func(a, b Info) int {
		return strings.Compare(a.Name, b.Name)
	})

	return infos
}

// Execute 查找并执行命令。
func (r *Registry) Execute(ctx context.Context, name string, in *Input) (any, error) {
	cmd, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	if in == nil {
		in = &Input{Options: getopts.Options{}}
	}

	return cmd.Execute(ctx, in)
}
