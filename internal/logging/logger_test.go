package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Debug("hidden")
	New(&buf, false).Info("shown", "images", 3)
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "images=3")

	buf.Reset()
	New(&buf, true).Debug("face", "index", 0)
	require.Contains(t, buf.String(), "level=DEBUG")
}
