package dispatchers

import (
	"strings"

	"github.com/ecuprobe/cli/internal/command"
)

func Root(spec RootSpec) *DispatchNode {
	usage := spec.Usage
	if usage == "" {
		usage = spec.Name + " [category] [subcategory] <command> [flags]"
	}

	return NewNode(
		spec.Name,
		nil,
		spec.Summary,
		spec.Description,
		usage,
		nil,
		nil,
	)
}

func Group(spec GroupSpec) *DispatchNode {
	node := NewNode(
		spec.Name,
		spec.Parent,
		spec.Summary,
		spec.Description,
		spec.Usage,
		nil,
		nil,
	)

	if node.Usage == "" {
		node.Usage = strings.Join(node.Path, " ") + " <command> [flags]"
	}
	return node
}

func Command(spec CommandSpec) *DispatchNode {
	node := NewNode(
		spec.Name,
		spec.Parent,
		spec.Summary,
		spec.Description,
		spec.Usage,
		spec.Args,
		spec.Action,
	)

	if node.Usage == "" {
		node.Usage = commandUsage(node.Path, spec.Args)
	}
	return node
}

// commandUsage renders "prog a b cmd [flags] <required> [optional]".
func commandUsage(path []string, args []command.ArgSpec) string {
	var b strings.Builder
	b.WriteString(strings.Join(path, " "))
	b.WriteString(" [flags]")

	for _, a := range args {
		if a.Required {
			b.WriteString(" <" + a.Name + ">")
		} else {
			b.WriteString(" [" + a.Name + "]")
		}
	}

	return b.String()
}
