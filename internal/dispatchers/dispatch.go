package dispatchers

import (
	"context"
	"errors"
	"strings"

	"github.com/ecuprobe/cli/internal/command"
	"github.com/ecuprobe/cli/internal/usage"
	"github.com/spf13/pflag"
)

const defaultSuggestionsCount = 3

// ExitNoCommand is returned when the tokens stop at an internal node.
const ExitNoCommand = 1

// State describes what Dispatch resolved the tokens to.
type State int

const (
	// Resolved means a leaf was reached and its flags and arguments parsed.
	Resolved State = iota
	// Help means -h/--help was given on the resolved node.
	Help
	// Unresolved means the tokens ended at an internal node.
	Unresolved
)

// Resolution is the outcome of routing one argument vector.
type Resolution struct {
	State   State
	Node    *DispatchNode
	Flags   *pflag.FlagSet
	Args    []string
	Execute CommandFunc
}

// Run executes the resolution and returns the process exit code.
func (r Resolution) Run(ctx context.Context, env command.Env) int {
	inv := &command.Invocation{
		Flags: r.Flags,
		Args:  r.Args,
		Env:   env,
	}
	return r.Execute(ctx, inv)
}

// Dispatch walks argv (without the program name) down the tree. Internal
// nodes consume one token each; once a leaf is reached the remaining tokens
// are parsed by the leaf's own flag set.
func Dispatch(root *DispatchNode, argv []string) (Resolution, error) {
	current := root
	rest := argv

	for !current.IsLeaf() {
		if len(rest) == 0 {
			return Resolution{
				State:   Unresolved,
				Node:    current,
				Flags:   current.Flags,
				Execute: UsageAction(current),
			}, nil
		}

		tok := rest[0]

		if isHelpToken(tok) {
			return helpResolution(current), nil
		}

		if strings.HasPrefix(tok, "-") {
			return Resolution{}, usage.InvalidFlag("unknown flag: " + tok).WithUsage(current.Usage)
		}

		child, ok := current.Children[tok]
		if !ok {
			return Resolution{}, unknownCommand(root, current, tok)
		}

		current = child
		rest = rest[1:]
	}

	fs := current.Flags
	if err := fs.Parse(rest); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return helpResolution(current), nil
		}
		return Resolution{}, usage.InvalidFlag(err.Error()).WithUsage(current.Usage)
	}

	if help, _ := fs.GetBool("help"); help {
		return helpResolution(current), nil
	}

	args := fs.Args()
	if err := validateArgs(current.Args, args); err != nil {
		return Resolution{}, err.WithUsage(current.Usage)
	}

	return Resolution{
		State:   Resolved,
		Node:    current,
		Flags:   fs,
		Args:    args,
		Execute: current.Action,
	}, nil
}

func helpResolution(node *DispatchNode) Resolution {
	return Resolution{
		State:   Help,
		Node:    node,
		Flags:   node.Flags,
		Execute: HelpAction(node),
	}
}

func isHelpToken(tok string) bool {
	return tok == "-h" || tok == "--help"
}

func unknownCommand(root, current *DispatchNode, tok string) error {
	path := make([]string, 0, len(current.Path))
	path = append(path, current.Path[1:]...)
	path = append(path, tok)

	suggestions := FindSimilarCommands(tok, current, defaultSuggestionsCount)
	if len(suggestions) > 0 && current != root {
		prefix := current.CommandPath()
		for i, s := range suggestions {
			suggestions[i] = prefix + " " + s
		}
	}
	if len(suggestions) == 0 {
		suggestions = FindSimilarPaths(strings.Join(path, " "), root, defaultSuggestionsCount)
	}

	return usage.UnknownCommand(strings.Join(path, " "), suggestions...).WithUsage(current.Usage)
}

func validateArgs(spec []command.ArgSpec, args []string) *usage.Error {
	for i, a := range spec {
		if a.Required && i >= len(args) {
			return usage.MissingArgument(a.Name)
		}
	}

	if len(args) > len(spec) {
		return usage.UnexpectedArguments(args[len(spec):])
	}

	return nil
}

// Resolve returns the node at path below root, or nil.
func Resolve(root *DispatchNode, path []string) *DispatchNode {
	current := root

	for _, p := range path {
		child, ok := current.Children[p]
		if !ok {
			return nil
		}
		current = child
	}

	return current
}
