package nodeid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	a := Derive("4c4c4544-0042", 0)
	require.Len(t, a, Len)
	require.Equal(t, a, Derive("4c4c4544-0042", 0))
	require.NotEqual(t, a, Derive("4c4c4544-0042", 1))
	require.NotEqual(t, a, Derive("4c4c4544-0043", 0))
}
