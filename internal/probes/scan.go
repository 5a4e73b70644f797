package probes

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/pflag"

	"github.com/ecuprobe/cli/internal/command"
	"github.com/ecuprobe/cli/internal/plugins"
	"github.com/ecuprobe/cli/internal/taxonomy"
	"github.com/ecuprobe/cli/internal/uds"
)

// The identifier scanner ships as a linked extension rather than a
// built-in; it reaches the tree through the same plugin path as any
// third-party probe.
func init() {
	plugins.Register(plugins.Group, "ecuprobe.scan-identifiers", func() (command.Descriptor, error) {
		return scanIdentifiersDescriptor(defaultDeps()), nil
	})
}

// identifier is one data identifier the ECU answered for.
type identifier struct {
	DID  uint16
	Data []byte
	NRC  *uds.NegativeResponse
}

func scanIdentifiersDescriptor(deps probeDependencies) command.Descriptor {
	return command.Descriptor{
		ID:          "identifiers",
		Category:    taxonomy.Scan,
		Subcategory: taxonomy.UDS,
		Short:       "scan data identifiers",
		Long: "Issue ReadDataByIdentifier for every identifier between --start and --end " +
			"and list those the ECU answers. requestOutOfRange replies are treated as absent.",
		AddFlags: func(fs *pflag.FlagSet) {
			addTargetFlags(fs)
			fs.String("start", "F180", "first identifier, hex")
			fs.String("end", "F1FF", "last identifier, hex")
			fs.Bool("show-errors", false, "also list identifiers answered with other negative responses")
		},
		Main: func(ctx context.Context, inv *command.Invocation) int {
			return runScanIdentifiers(ctx, inv, deps)
		},
	}
}

func runScanIdentifiers(ctx context.Context, inv *command.Invocation, deps probeDependencies) int {
	rawStart, _ := inv.Flags.GetString("start")
	rawEnd, _ := inv.Flags.GetString("end")
	showErrors, _ := inv.Flags.GetBool("show-errors")

	start, err := parseDID(rawStart)
	if err != nil {
		return usageFailure(inv, "--start: %v", err)
	}
	end, err := parseDID(rawEnd)
	if err != nil {
		return usageFailure(inv, "--end: %v", err)
	}
	if end < start {
		return usageFailure(inv, "--end 0x%04X is below --start 0x%04X", end, start)
	}

	client, code := connect(ctx, inv, deps)
	if client == nil {
		return code
	}
	defer func() { _ = client.Close() }()

	found, err := scanIdentifiers(ctx, client, start, end)
	if err != nil {
		return failure(ctx, inv, err)
	}

	inv.Log().Info("probes: scanned 0x%04X-0x%04X, %d answered", start, end, len(found))
	renderIdentifiers(inv, found, showErrors)
	return command.ExitOK
}

// scanIdentifiers reads every DID in [start, end]. Transport failures abort
// the scan; negative responses other than requestOutOfRange are recorded.
func scanIdentifiers(ctx context.Context, client *uds.Client, start, end uint16) ([]identifier, error) {
	var found []identifier

	for did := uint32(start); did <= uint32(end); did++ {
		data, err := client.ReadDataByIdentifier(ctx, uint16(did))

		var nrc *uds.NegativeResponse
		switch {
		case err == nil:
			found = append(found, identifier{DID: uint16(did), Data: data})
		case errors.As(err, &nrc):
			if nrc.Code != uds.RequestOutOfRange {
				found = append(found, identifier{DID: uint16(did), NRC: nrc})
			}
		default:
			return found, fmt.Errorf("0x%04X: %w", did, err)
		}
	}

	return found, nil
}

func renderIdentifiers(inv *command.Invocation, found []identifier, showErrors bool) {
	t := table.NewWriter()
	t.SetOutputMirror(inv.Env.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"DID", "LEN", "DATA", "TEXT"})

	rows := 0
	for _, id := range found {
		if id.NRC != nil {
			if showErrors {
				t.AppendRow(table.Row{fmt.Sprintf("%04X", id.DID), "-", id.NRC.Code.String(), ""})
				rows++
			}
			continue
		}
		t.AppendRow(table.Row{fmt.Sprintf("%04X", id.DID), len(id.Data), hex.EncodeToString(id.Data), printable(id.Data)})
		rows++
	}

	if rows == 0 {
		inv.Printf("no identifiers found\n")
		return
	}
	t.Render()
}
