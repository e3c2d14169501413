package getopts

import (
	"encoding/json"
	"maps"
	"slices"
	"strings"
)

// Kind 标识选项值的形态。
type Kind uint8

const (
	// KindPresent 选项出现但没有值，如 --force。
	KindPresent Kind = iota
	// KindString 选项带字符串值，如 --name=Alice。
	KindString
	// KindNested 选项为嵌套映射，如 --config:db.dsn=host。
	KindNested
)

func (k Kind) String() string {
	switch k {
	case KindPresent:
		return "present"
	case KindString:
		return "string"
	case KindNested:
		return "nested"
	default:
		return "unknown"
	}
}

// Value 选项值，三种形态之一 (见 [Kind])。
//
// 零值等价于 [PresentValue]。
type Value struct {
	kind   Kind
	text   string
	nested map[string]string
}

// PresentValue 返回仅表示"出现"的值。
func PresentValue() Value {
	return Value{kind: KindPresent}
}

// StringValue 返回字符串值。
func StringValue(s string) Value {
	return Value{kind: KindString, text: s}
}

// NestedValue 返回嵌套映射值，m 会被复制。
func NestedValue(m map[string]string) Value {
	nested := make(map[string]string, len(m))
	maps.Copy(nested, m)

	return Value{kind: KindNested, nested: nested}
}

// Kind 返回值的形态。
func (v Value) Kind() Kind {
	return v.kind
}

// Text 返回字符串值；非 KindString 时 ok 为 false。
func (v Value) Text() (string, bool) {
	return v.text, v.kind == KindString
}

// Entries 返回嵌套映射的副本；非 KindNested 时 ok 为 false。
func (v Value) Entries() (map[string]string, bool) {
	if v.kind != KindNested {
		return nil, false
	}

	return maps.Clone(v.nested), true
}

// String 返回便于日志阅读的表示：true / 原字符串 / {k=v, ...}。
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.text
	case KindNested:
		keys := slices.Sorted(maps.Keys(v.nested))
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+v.nested[k])
		}

		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "true"
	}
}

// MarshalJSON 编码为 true、"text" 或 {"k":"v"}。
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.text)
	case KindNested:
		if v.nested == nil {
			return []byte("{}"), nil
		}

		return json.Marshal(v.nested)
	default:
		return []byte("true"), nil
	}
}

// Options 选项名到值的映射。
type Options map[string]Value

// Lookup 返回指定选项。
func (o Options) Lookup(name string) (Value, bool) {
	v, ok := o[name]

	return v, ok
}

// String 返回字符串选项，未设置或非字符串时返回空串。
func (o Options) String(name string) string {
	s, _ := o[name].Text()

	return s
}

// Present 报告选项是否出现 (任意形态)。
func (o Options) Present(name string) bool {
	_, ok := o[name]

	return ok
}

// Nested 返回嵌套选项的副本，非嵌套时返回 nil。
func (o Options) Nested(name string) map[string]string {
	v, ok := o[name]
	if !ok {
		return nil
	}
	m, _ := v.Entries()

	return m
}

// setNested 写入嵌套项；已有的非嵌套值会被替换为新的映射。
func (o Options) setNested(name, key, val string) {
	v, ok := o[name]
	if !ok || v.kind != KindNested || v.nested == nil {
		v = Value{kind: KindNested, nested: make(map[string]string)}
	}
	v.nested[key] = val
	o[name] = v
}
