package dispatchers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/ecuprobe/cli/internal/command"
	"github.com/ecuprobe/cli/internal/ui"
	"github.com/ecuprobe/cli/internal/ui/style"
)

const indent = "   "

// formatUsage styles the usage line with the command in Info color and the rest muted.
func formatUsage(usage string) string {
	// Find where the command ends (first [ or <)
	cmdEnd := len(usage)
	for i, c := range usage {
		if c == '[' || c == '<' {
			cmdEnd = i
			break
		}
	}

	cmd := strings.TrimSpace(usage[:cmdEnd])
	rest := ""
	if cmdEnd < len(usage) {
		rest = usage[cmdEnd:]
	}

	if rest == "" {
		return style.Info(cmd)
	}
	return style.Info(cmd) + " " + style.Muted(rest)
}

// HelpAction prints the full help of node to stdout and succeeds.
func HelpAction(node *DispatchNode) CommandFunc {
	return func(_ context.Context, inv *command.Invocation) int {
		width := ui.Width(inv.Env.Stdout, inv.Env.HelpWidth)
		_, _ = io.WriteString(inv.Env.Stdout, RenderHelp(node, width))
		return command.ExitOK
	}
}

// UsageAction prints the usage of an internal node to stderr and fails.
// It runs when the tokens stop before reaching a command.
func UsageAction(node *DispatchNode) CommandFunc {
	return func(_ context.Context, inv *command.Invocation) int {
		width := ui.Width(inv.Env.Stderr, inv.Env.HelpWidth)
		_, _ = io.WriteString(inv.Env.Stderr, RenderUsage(node, width))
		return ExitNoCommand
	}
}

// RenderUsage renders the short form: usage line and the available commands.
func RenderUsage(node *DispatchNode, width int) string {
	var out bytes.Buffer

	writeUsageLine(&out, node)
	writeCommands(&out, node, width)
	writeFooter(&out, node, width)

	return out.String()
}

// RenderHelp renders the full help of node wrapped to width columns.
func RenderHelp(node *DispatchNode, width int) string {
	var out bytes.Buffer

	if len(node.Path) == 1 {
		out.WriteString(style.Header(node.Name))
		if node.Summary != "" {
			out.WriteString(" - ")
			out.WriteString(node.Summary)
		}
		out.WriteString("\n\n")
	}

	writeUsageLine(&out, node)

	desc := node.Description
	if desc == "" && len(node.Path) > 1 {
		desc = node.Summary
	}
	if desc != "" {
		out.WriteString(ansi.Wordwrap(desc, width, ""))
		out.WriteString("\n\n")
	}

	writeCommands(&out, node, width)
	writeArguments(&out, node, width)

	out.WriteString(style.Header("FLAGS"))
	out.WriteString("\n")
	out.WriteString(node.Flags.FlagUsagesWrapped(width))
	out.WriteString("\n")

	writeFooter(&out, node, width)

	return out.String()
}

func writeUsageLine(out *bytes.Buffer, node *DispatchNode) {
	out.WriteString("usage: ")
	out.WriteString(formatUsage(node.Usage))
	out.WriteString("\n\n")
}

func writeCommands(out *bytes.Buffer, node *DispatchNode, width int) {
	children := node.OrderedChildren()
	if len(children) == 0 {
		return
	}

	out.WriteString(style.Header("COMMANDS"))
	out.WriteString("\n")

	col := 0
	for _, child := range children {
		col = max(col, len(child.Name))
	}

	for _, child := range children {
		writeEntry(out, child.Name, col, child.Summary, width)
	}
	out.WriteString("\n")
}

func writeArguments(out *bytes.Buffer, node *DispatchNode, width int) {
	if len(node.Args) == 0 {
		return
	}

	out.WriteString(style.Header("ARGUMENTS"))
	out.WriteString("\n")

	col := 0
	for _, a := range node.Args {
		col = max(col, len(a.Name))
	}

	for _, a := range node.Args {
		desc := a.Description
		if !a.Required {
			desc += " (optional)"
		}
		writeEntry(out, a.Name, col, desc, width)
	}
	out.WriteString("\n")
}

// writeEntry writes "   name   text" with text wrapped and continuation
// lines aligned under its first column.
func writeEntry(out *bytes.Buffer, name string, col int, text string, width int) {
	lead := len(indent) + col + 2
	avail := width - lead
	if avail < 20 {
		avail = 20
	}

	lines := strings.Split(ansi.Wordwrap(text, avail, ""), "\n")

	fmt.Fprintf(out, "%s%s  %s\n", indent, style.Info(fmt.Sprintf("%-*s", col, name)), lines[0])
	for _, l := range lines[1:] {
		fmt.Fprintf(out, "%s%s\n", strings.Repeat(" ", lead), l)
	}
}

func writeFooter(out *bytes.Buffer, node *DispatchNode, width int) {
	if node.IsLeaf() {
		return
	}

	target := strings.Join(node.Path, " ")
	hint := fmt.Sprintf("See '%s <command> --help' to read about a specific command.", target)
	out.WriteString(ansi.Wordwrap(hint, width, ""))
	out.WriteString("\n")
}
