package command

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func noop(context.Context, *Invocation) int { return ExitOK }

func TestDescriptor_Description(t *testing.T) {
	d := Descriptor{ID: "vin", Short: "request vin"}
	require.Equal(t, "request vin", d.Description())

	d.Long = "Request the vehicle identification number"
	require.Equal(t, "Request the vehicle identification number", d.Description())
}

func TestDescriptor_Path(t *testing.T) {
	tests := []struct {
		name string
		d    Descriptor
		want []string
	}{
		{"root", Descriptor{ID: "version"}, []string{"version"}},
		{"category", Descriptor{ID: "virtual-ecu", Category: "serve"}, []string{"serve", "virtual-ecu"}},
		{"subcategory", Descriptor{ID: "vin", Category: "prims", Subcategory: "uds"}, []string{"prims", "uds", "vin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.d.Path())
		})
	}

	require.Equal(t, "prims uds vin", Descriptor{ID: "vin", Category: "prims", Subcategory: "uds"}.Address())
}

func TestDescriptor_Validate(t *testing.T) {
	tests := []struct {
		name    string
		d       Descriptor
		wantErr bool
	}{
		{"valid", Descriptor{ID: "vin", Main: noop}, false},
		{"empty id", Descriptor{Main: noop}, true},
		{"id with space", Descriptor{ID: "read vin", Main: noop}, true},
		{"id looks like flag", Descriptor{ID: "-v", Main: noop}, true},
		{"no main", Descriptor{ID: "vin"}, true},
		{
			"required after optional",
			Descriptor{ID: "x", Main: noop, Args: []ArgSpec{{Name: "a"}, {Name: "b", Required: true}}},
			true,
		},
		{
			"optional after required",
			Descriptor{ID: "x", Main: noop, Args: []ArgSpec{{Name: "a", Required: true}, {Name: "b"}}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidate_MissingMainIsTyped(t *testing.T) {
	err := Descriptor{ID: "vin"}.Validate()
	require.ErrorIs(t, err, ErrMissingMain)
}

func TestInvocation_Helpers(t *testing.T) {
	var stdout, stderr bytes.Buffer
	inv := &Invocation{
		Args: []string{"F190"},
		Env:  Env{Stdout: &stdout, Stderr: &stderr},
	}

	inv.Printf("hello %s\n", "out")
	inv.Errorf("hello %s\n", "err")

	require.Equal(t, "hello out\n", stdout.String())
	require.Equal(t, "hello err\n", stderr.String())
	require.Equal(t, "F190", inv.Arg(0))
	require.Equal(t, "", inv.Arg(1))
	require.Equal(t, "", inv.Arg(-1))
}
