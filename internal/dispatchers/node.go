package dispatchers

import (
	"context"
	"io"
	"strings"

	"github.com/ecuprobe/cli/internal/command"
	"github.com/spf13/pflag"
)

// CommandFunc is the action bound to a node.
type CommandFunc func(ctx context.Context, inv *command.Invocation) int

// DispatchNode is one addressable node of the command tree. Internal nodes
// (root, categories, subcategories) have no Action; leaves do.
type DispatchNode struct {
	Name        string
	Path        []string
	Summary     string
	Description string
	Usage       string
	Args        []command.ArgSpec
	// Flags is the node's native argument parser. Every node carries
	// -h/--help; leaves add their probe's flags.
	Flags    *pflag.FlagSet
	Children map[string]*DispatchNode
	Action   CommandFunc

	// order keeps children in insertion order for display.
	order []string
}

// NewNode creates a node and, when parent is non-nil, attaches it as a child.
func NewNode(
	name string,
	parent *DispatchNode,
	summary string,
	description string,
	usage string,
	args []command.ArgSpec,
	action CommandFunc,
) *DispatchNode {

	node := &DispatchNode{
		Name:        name,
		Summary:     summary,
		Description: description,
		Usage:       usage,
		Args:        args,
		Action:      action,
		Children:    make(map[string]*DispatchNode),
	}

	if parent == nil {
		node.Path = []string{name}
	} else {
		node.Path = make([]string, len(parent.Path)+1)
		copy(node.Path, parent.Path)
		node.Path[len(parent.Path)] = name
		parent.addChild(node)
	}

	node.Flags = newFlagSet(strings.Join(node.Path, " "))
	return node
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	fs.BoolP("help", "h", false, "show this help message and exit")
	return fs
}

func (n *DispatchNode) addChild(child *DispatchNode) {
	if _, exists := n.Children[child.Name]; !exists {
		n.order = append(n.order, child.Name)
	}
	n.Children[child.Name] = child
}

func (n *DispatchNode) removeChild(name string) {
	if _, exists := n.Children[name]; !exists {
		return
	}
	delete(n.Children, name)
	for i, o := range n.order {
		if o == name {
			n.order = append(n.order[:i:i], n.order[i+1:]...)
			break
		}
	}
}

// OrderedChildren returns the children in the order they were added.
func (n *DispatchNode) OrderedChildren() []*DispatchNode {
	out := make([]*DispatchNode, 0, len(n.order))
	for _, name := range n.order {
		if child, ok := n.Children[name]; ok {
			out = append(out, child)
		}
	}
	return out
}

// IsLeaf reports whether the node is bound to a command.
func (n *DispatchNode) IsLeaf() bool {
	return n.Action != nil
}

// CommandPath returns the path below the root, e.g. "prims uds vin".
func (n *DispatchNode) CommandPath() string {
	if len(n.Path) <= 1 {
		return ""
	}
	return strings.Join(n.Path[1:], " ")
}
