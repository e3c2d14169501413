package templexp

import (
	"fmt"
	"os"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// 变量表
// ═══════════════════════════════════════════════════════════════════════════

// Expander 持有一次展开所用的变量表。
//
// ":=" / "=" 赋值只写入该变量表，不影响进程环境。
type Expander struct {
	vars map[string]string
}

// New 以当前环境变量快照创建 Expander，extra 中的变量覆盖同名环境变量。
func New(extra map[string]string) *Expander {
	vars := make(map[string]string, len(extra))
	for _, env := range os.Environ() {
		if name, val, ok := strings.Cut(env, "="); ok {
			vars[name] = val
		}
	}
	for name, val := range extra {
		vars[name] = val
	}

	return &Expander{vars: vars}
}

// Lookup 返回变量值以及是否已设置。
func (e *Expander) Lookup(name string) (string, bool) {
	val, ok := e.vars[name]

	return val, ok
}

// ═══════════════════════════════════════════════════════════════════════════
// 表达式解析
// ═══════════════════════════════════════════════════════════════════════════

// expression 对应一个 ${name op word}。
type expression struct {
	name string
	op   string
	word string
}

func isNameStart(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || ch == '_'
}

func isNameChar(ch byte) bool {
	return isNameStart(ch) || (ch >= '0' && ch <= '9')
}

func parseExpression(body string) (expression, bool) {
	if body == "" || !isNameStart(body[0]) {
		return expression{}, false
	}

	end := 1
	for end < len(body) && isNameChar(body[end]) {
		end++
	}

	expr := expression{name: body[:end]}
	rest := body[end:]
	if rest == "" {
		return expr, true
	}

	opLen := 1
	if rest[0] == ':' {
		opLen = 2
	}
	if len(rest) < opLen || !strings.ContainsRune("-+?=", rune(rest[opLen-1])) {
		return expression{}, false
	}
	expr.op = rest[:opLen]
	expr.word = rest[opLen:]

	return expr, true
}

// ═══════════════════════════════════════════════════════════════════════════
// 展开
// ═══════════════════════════════════════════════════════════════════════════

// eval 计算单个表达式；ok 为 false 表示无法识别，调用方保留原文。
func (e *Expander) eval(expr expression) (string, bool, error) {
	val, isSet := e.vars[expr.name]
	// 带冒号的操作符把空值视为未设置
	usable := isSet
	if strings.HasPrefix(expr.op, ":") {
		usable = isSet && val != ""
	}

	switch strings.TrimPrefix(expr.op, ":") {
	case "":
		return val, true, nil
	case "-":
		if usable {
			return val, true, nil
		}
		word, err := e.word(expr.word)

		return word, err == nil, err
	case "+":
		if !usable {
			return "", true, nil
		}
		word, err := e.word(expr.word)

		return word, err == nil, err
	case "?":
		if usable {
			return val, true, nil
		}
		if expr.word == "" {
			return "", false, fmt.Errorf("templexp: %s: parameter null or not set", expr.name)
		}

		return "", false, fmt.Errorf("templexp: %s: %s", expr.name, expr.word)
	case "=":
		if usable {
			return val, true, nil
		}
		word, err := e.word(expr.word)
		if err != nil {
			return "", false, err
		}
		e.vars[expr.name] = word

		return word, true, nil
	}

	return "", false, nil
}

func (e *Expander) word(word string) (string, error) {
	if !strings.Contains(word, "${") {
		return word, nil
	}

	return e.Expand(word)
}

// Expand 对 text 执行 Shell 参数展开，规则见 [ExpandTemplate]。
func (e *Expander) Expand(text string) (string, error) {
	var buf strings.Builder
	buf.Grow(len(text))

	for i := 0; i < len(text); {
		if text[i] != '$' || i+1 >= len(text) {
			buf.WriteByte(text[i])
			i++

			continue
		}

		switch text[i+1] {
		case '$':
			buf.WriteByte('$')
			i += 2

			continue
		case '{':
		default:
			buf.WriteByte('$')
			i++

			continue
		}

		end := closingBrace(text, i+2)
		if end < 0 {
			buf.WriteByte('$')
			i++

			continue
		}

		raw := text[i : end+1]
		expr, ok := parseExpression(text[i+2 : end])
		if !ok {
			buf.WriteString(raw)
			i = end + 1

			continue
		}

		expanded, ok, err := e.eval(expr)
		if err != nil {
			return "", err
		}
		if ok {
			buf.WriteString(expanded)
		} else {
			buf.WriteString(raw)
		}
		i = end + 1
	}

	return buf.String(), nil
}

// closingBrace 返回与 start 之前的 "${" 匹配的 "}" 下标，找不到返回 -1。
func closingBrace(text string, start int) int {
	depth := 0
	for i := start; i < len(text); i++ {
		switch {
		case text[i] == '$' && i+1 < len(text) && text[i+1] == '{':
			depth++
			i++
		case text[i] == '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}

	return -1
}

// ExpandTemplate 以当前环境变量对 text 执行 Shell 参数展开。
//
// 支持语法：
//   - ${VAR} - 变量替换
//   - ${VAR:-default} / ${VAR-default} - fallback
//   - ${VAR:+alt} / ${VAR+alt} - 替代值
//   - ${VAR:?msg} / ${VAR?msg} - 必填校验
//   - ${VAR:=default} / ${VAR=default} - 赋值（仅作用于当前展开）
//
// 仅在必填校验失败时返回 error。
func ExpandTemplate(text string) (string, error) {
	return New(nil).Expand(text)
}
