package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShortPrefersVersion(t *testing.T) {
	defer func(v, c string) { Version, Commit = v, c }(Version, Commit)

	Version, Commit = "v1.2.0", "abcdef0"
	require.Equal(t, "v1.2.0", Short())

	Version = "dev"
	require.Equal(t, "abcdef0", Short())
}
