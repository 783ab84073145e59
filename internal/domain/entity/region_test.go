package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotFound(t *testing.T) {
	g := NotFound()
	require.False(t, g.Found)
	require.True(t, g.Eyes.Empty())
}
