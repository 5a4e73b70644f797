package dispatchers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{
			name: "identical strings",
			a:    "rdbi",
			b:    "rdbi",
			want: 0,
		},
		{
			name: "one character difference",
			a:    "ping",
			b:    "pings",
			want: 1,
		},
		{
			name: "typo - transposition",
			a:    "ping",
			b:    "pnig",
			want: 2,
		},
		{
			name: "typo - substitution",
			a:    "discover",
			b:    "dsicover",
			want: 2,
		},
		{
			name: "completely different",
			a:    "scan",
			b:    "xyz123",
			want: 6,
		},
		{
			name: "empty string a",
			a:    "",
			b:    "prims",
			want: 5,
		},
		{
			name: "empty string b",
			a:    "prims",
			b:    "",
			want: 5,
		},
		{
			name: "both empty",
			a:    "",
			b:    "",
			want: 0,
		},
		{
			name: "case insensitive",
			a:    "VIN",
			b:    "vin",
			want: 0,
		},
		{
			name: "missing letter",
			a:    "serve",
			b:    "serv",
			want: 1,
		},
		{
			name: "extra letter",
			a:    "serve",
			b:    "servee",
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := levenshtein(tt.a, tt.b)
			require.Equal(t, tt.want, got)
		})
	}
}

func udsGroup() *DispatchNode {
	root := Root(RootSpec{Name: "ecuprobe"})
	uds := Group(GroupSpec{Name: "uds", Parent: root})

	for _, name := range []string{"vin", "ping", "ecu-reset", "rdbi", "wdbi", "send-pdu"} {
		Command(CommandSpec{Name: name, Parent: uds, Action: noopAction})
	}
	return uds
}

func TestFindSimilarCommands(t *testing.T) {
	uds := udsGroup()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "typo rdbj suggests rdbi first",
			input: "rdbj",
			want:  []string{"rdbi", "wdbi"},
		},
		{
			name:  "typo vim suggests vin then ping",
			input: "vim",
			want:  []string{"vin", "ping"},
		},
		{
			name:  "missing dash",
			input: "ecureset",
			want:  []string{"ecu-reset"},
		},
		{
			name:  "completely different returns nothing",
			input: "zzzzzzzz",
			want:  []string{},
		},
		{
			name:  "exact match is not suggested",
			input: "vin",
			want:  []string{"ping"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindSimilarCommands(tt.input, uds, 3)
			if len(tt.want) == 0 {
				require.Empty(t, got)
				return
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFindSimilarCommands_NilNode(t *testing.T) {
	require.Nil(t, FindSimilarCommands("vin", nil, 3))
}

func TestFindSimilarCommands_LimitsResults(t *testing.T) {
	got := FindSimilarCommands("vim", udsGroup(), 1)
	require.Equal(t, []string{"vin"}, got)
}

func TestCollectAllCommands(t *testing.T) {
	root := createTestTree(t)

	commands := CollectAllCommands(root, "")

	require.Contains(t, commands, "discover")
	require.Contains(t, commands, "discover uds")
	require.Contains(t, commands, "prims uds vin")
	require.Contains(t, commands, "version")
	require.IsIncreasing(t, commands)
}

func TestCollectAllCommands_NilNode(t *testing.T) {
	got := CollectAllCommands(nil, "")
	require.Nil(t, got)
}

func TestFindSimilarPaths(t *testing.T) {
	root := createTestTree(t)

	require.Equal(t, []string{"prims uds vin"}, FindSimilarPaths("prims uds vim", root, 3))
	require.Equal(t, []string{"prims uds"}, FindSimilarPaths("prims ud", root, 3))
	require.Empty(t, FindSimilarPaths("completely unrelated", root, 3))
}
