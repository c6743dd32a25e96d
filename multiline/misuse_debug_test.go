//go:build linegraphdebug

package multiline

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMisuseFails(t *testing.T) {
	for _, lines := range [][]Line{
		{{Key: "a"}, {}},
		{{Key: "a"}, {Key: "a"}},
	} {
		c, err := New(Options{}, lines...)
		require.Error(t, err)
		assert.Nil(t, c)
		assert.True(t, errors.HasAssertionFailure(err))
	}
}
