package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWidth(t *testing.T) {
	var buf bytes.Buffer

	require.Equal(t, 120, Width(&buf, 120))
	require.Equal(t, DefaultWidth, Width(&buf, 0))
	require.Equal(t, minWidth, Width(&buf, 10))
}

func TestIsTerminal_NonFile(t *testing.T) {
	require.False(t, IsTerminal(&bytes.Buffer{}))
}
