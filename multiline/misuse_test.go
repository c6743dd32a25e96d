//go:build !linegraphdebug

package multiline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMisuseDropsLines(t *testing.T) {
	c, err := New(Options{}, Line{Key: "a"}, Line{}, Line{Key: "a"}, Line{Key: "b"})
	require.NoError(t, err)
	c.SetSeries(SeriesMap{"a": pts(0, 0, 1, 1), "b": pts(0, 1, 1, 0)})
	assert.Equal(t, []string{"a", "b"}, c.Snapshot().Keys)
}
