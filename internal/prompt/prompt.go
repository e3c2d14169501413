// Package prompt 从终端读取交互输入。
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter 读取一行用户输入。
type Prompter interface {
	Prompt(title string) (string, error)
}

// Line 基于行读取的 Prompter：先向 Out 写出提示，再从 In 读取一行。
type Line struct {
	in  *bufio.Reader
	out io.Writer
}

// New 创建 Line，out 为 nil 时不输出提示。
func New(in io.Reader, out io.Writer) *Line {
	if out == nil {
		out = io.Discard
	}

	return &Line{in: bufio.NewReader(in), out: out}
}

// Prompt 输出 title 并读取一行，去掉行尾换行符。
//
// 输入在没有换行符时结束，返回已读取的内容；没有任何内容时返回 io.ErrUnexpectedEOF。
func (l *Line) Prompt(title string) (string, error) {
	if _, err := fmt.Fprint(l.out, title+" "); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}

	line, err := l.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read answer: %w", err)
		}
		if line == "" {
			return "", io.ErrUnexpectedEOF
		}
	}

	return strings.TrimRight(line, "\r\n"), nil
}
