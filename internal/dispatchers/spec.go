package dispatchers

import "github.com/ecuprobe/cli/internal/command"

type RootSpec struct {
	Name        string
	Summary     string
	Description string
	Usage       string
}

type GroupSpec struct {
	Name        string
	Parent      *DispatchNode
	Summary     string
	Description string
	Usage       string
}

type CommandSpec struct {
	Name        string
	Parent      *DispatchNode
	Summary     string
	Description string
	Usage       string
	Args        []command.ArgSpec
	Action      CommandFunc
}
