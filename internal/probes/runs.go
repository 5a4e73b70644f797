package probes

import (
	"context"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/pflag"

	"github.com/ecuprobe/cli/internal/command"
	"github.com/ecuprobe/cli/internal/domain"
	"github.com/ecuprobe/cli/internal/format"
	"github.com/ecuprobe/cli/internal/ui/style"
)

func runsDescriptor() command.Descriptor {
	return command.Descriptor{
		ID:    "runs",
		Short: "list recent runs",
		Long:  "List the most recent dispatched commands with their exit codes, newest first.",
		AddFlags: func(fs *pflag.FlagSet) {
			fs.IntP("limit", "n", 20, "number of runs to show, 0 for all")
		},
		Main: listRuns,
	}
}

func listRuns(ctx context.Context, inv *command.Invocation) int {
	if inv.Env.Runs == nil {
		inv.Errorf("%s run history is disabled\n", style.Warning("warning:"))
		return command.ExitFailure
	}

	limit, _ := inv.Flags.GetInt("limit")

	runs, err := inv.Env.Runs.Recent(ctx, limit)
	if err != nil {
		return failure(ctx, inv, err)
	}

	if len(runs) == 0 {
		inv.Printf("no runs recorded\n")
		return command.ExitOK
	}

	t := table.NewWriter()
	t.SetOutputMirror(inv.Env.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ID", "STARTED", "COMMAND", "EXIT", "DURATION"})

	for _, r := range runs {
		t.AppendRow(table.Row{
			shortID(r.ID),
			inv.Env.Times.DateTime(r.StartedAt.Local()),
			strings.TrimSpace(r.Command + " " + strings.Join(r.Args, " ")),
			exitCell(r),
			durationCell(r),
		})
	}

	t.Render()
	return command.ExitOK
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func exitCell(r domain.Run) string {
	if !r.Finished() {
		return "-"
	}
	return strconv.Itoa(*r.ExitCode)
}

func durationCell(r domain.Run) string {
	if !r.Finished() {
		return "-"
	}
	return format.Duration(r.Duration())
}
