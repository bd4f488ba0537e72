package snowflake

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeneratorProducesUniqueIDs(t *testing.T) {
	gen, err := NewGenerator(1, 1)
	require.NoError(t, err)

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id, err := gen.NextID()
		require.NoError(t, err)
		require.NotEmpty(t, id)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestGeneratorRejectsBadNode(t *testing.T) {
	_, err := NewGenerator(32, 0)
	require.ErrorIs(t, err, errInvalidMachineID)

	_, err = NewGenerator(0, -1)
	require.ErrorIs(t, err, errInvalidDataCenter)
}

func TestNilGenerator(t *testing.T) {
	var gen *Generator
	_, err := gen.NextID()
	require.ErrorIs(t, err, errGeneratorUninitial)
}
