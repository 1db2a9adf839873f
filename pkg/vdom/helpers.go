package vdom

import "fmt"

// Text creates a canonical text node.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) []any {
	return children
}

// If yields node when cond holds and nil (no child) otherwise.
func If(cond bool, node any) any {
	if cond {
		return node
	}
	return nil
}

func IfElse(cond bool, then, otherwise any) any {
	if cond {
		return then
	}
	return otherwise
}

// When calls fn only when cond holds.
func When(cond bool, fn func() any) any {
	if cond {
		return fn()
	}
	return nil
}

// Range maps items to children, dropping nil results.
func Range[T any](items []T, fn func(item T, index int) any) []any {
	out := make([]any, 0, len(items))
	for i, item := range items {
		if c := fn(item, i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Repeat is Range over 0..n-1.
func Repeat(n int, fn func(i int) any) []any {
	if n <= 0 {
		return nil
	}
	out := make([]any, 0, n)
	for i := 0; i < n; i++ {
		if c := fn(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Nothing renders no child.
func Nothing() any { return nil }
