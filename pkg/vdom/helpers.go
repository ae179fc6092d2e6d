package vdom

import (
	"fmt"
	"strings"
)

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Raw creates an unescaped HTML node.
// Use with caution - can lead to XSS if content is user-provided.
func Raw(html string) *VNode {
	return &VNode{
		Kind: KindRaw,
		Text: html,
	}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	node := &VNode{
		Kind:     KindFragment,
		Children: make([]*VNode, 0),
	}

	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		case Component:
			node.Children = append(node.Children, &VNode{
				Kind: KindComponent,
				Comp: v,
			})
		}
	}

	return node
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// When is like If but with lazy evaluation.
// The function is only called if condition is true.
func When(condition bool, fn func() *VNode) *VNode {
	if condition {
		return fn()
	}
	return nil
}

// Range maps a slice to VNodes.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	result := make([]*VNode, 0, len(items))
	for i, item := range items {
		node := fn(item, i)
		if node != nil {
			result = append(result, node)
		}
	}
	return result
}

// Expand returns a copy of the tree with every component node replaced by
// its rendered output. Each component is rendered exactly once.
func Expand(node *VNode) *VNode {
	if node == nil {
		return nil
	}
	if node.Kind == KindComponent {
		if node.Comp == nil {
			return nil
		}
		out := Expand(node.Comp.Render())
		if out != nil && out.Key == "" {
			out.Key = node.Key
		}
		return out
	}

	clone := *node
	if len(node.Children) > 0 {
		clone.Children = make([]*VNode, 0, len(node.Children))
		for _, child := range node.Children {
			if c := Expand(child); c != nil {
				clone.Children = append(clone.Children, c)
			}
		}
	}
	return &clone
}

// Walk visits every node depth-first. Returning false from fn stops the
// descent into that node's children. Component nodes are not expanded;
// call Expand first when component output must be visited.
func Walk(node *VNode, fn func(*VNode) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for _, child := range node.Children {
		Walk(child, fn)
	}
}

// TextContent concatenates the text of every text node under node.
func TextContent(node *VNode) string {
	var sb strings.Builder
	Walk(node, func(n *VNode) bool {
		if n.Kind == KindText {
			sb.WriteString(n.Text)
		}
		return true
	})
	return sb.String()
}

// FindByText returns the innermost elements whose text content equals text.
func FindByText(node *VNode, text string) []*VNode {
	var found []*VNode
	Walk(node, func(n *VNode) bool {
		if n.Kind != KindElement {
			return true
		}
		if strings.TrimSpace(TextContent(n)) != text {
			return true
		}
		inner := false
		for _, child := range n.Children {
			if child.Kind == KindElement && strings.TrimSpace(TextContent(child)) == text {
				inner = true
				break
			}
		}
		if !inner {
			found = append(found, n)
			return false
		}
		return true
	})
	return found
}
