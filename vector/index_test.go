package vector_test

import (
	"path/filepath"
	"testing"

	"github.com/harvestlabs/webharvest"
	"github.com/harvestlabs/webharvest/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_Add(t *testing.T) {
	t.Parallel()

	t.Run("appends matching vectors", func(t *testing.T) {
		t.Parallel()

		x, err := vector.NewIndex(3)
		require.NoError(t, err)

		require.NoError(t, x.Add([][]float32{{1, 0, 0}, {0, 1, 0}}))
		assert.Equal(t, 2, x.Count())
	})

	t.Run("rejects dimension mismatch without partial append", func(t *testing.T) {
		t.Parallel()

		x, err := vector.NewIndex(3)
		require.NoError(t, err)

		err = x.Add([][]float32{{1, 0, 0}, {1, 0}})
		assert.Equal(t, webharvest.EINVALID, webharvest.ErrorCode(err))
		assert.Equal(t, 0, x.Count())
	})

	t.Run("rejects non-positive dimension", func(t *testing.T) {
		t.Parallel()

		_, err := vector.NewIndex(0)
		assert.Equal(t, webharvest.EINVALID, webharvest.ErrorCode(err))
	})
}

func TestIndex_Search(t *testing.T) {
	t.Parallel()

	t.Run("ranks by ascending distance", func(t *testing.T) {
		t.Parallel()

		x, err := vector.NewIndex(2)
		require.NoError(t, err)
		require.NoError(t, x.Add([][]float32{
			{10, 10}, // far
			{1, 1},   // nearest
			{3, 3},   // middle
		}))

		got, err := x.Search([]float32{1, 1}, 2)
		require.NoError(t, err)

		require.Len(t, got, 2)
		assert.Equal(t, 1, got[0].Position)
		assert.Equal(t, float32(0), got[0].Distance)
		assert.Equal(t, 2, got[1].Position)
		assert.Equal(t, float32(8), got[1].Distance)
	})

	t.Run("k larger than count returns all", func(t *testing.T) {
		t.Parallel()

		x, err := vector.NewIndex(2)
		require.NoError(t, err)
		require.NoError(t, x.Add([][]float32{{1, 1}}))

		got, err := x.Search([]float32{0, 0}, 10)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("empty index returns nothing", func(t *testing.T) {
		t.Parallel()

		x, err := vector.NewIndex(2)
		require.NoError(t, err)

		got, err := x.Search([]float32{0, 0}, 5)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("rejects query dimension mismatch", func(t *testing.T) {
		t.Parallel()

		x, err := vector.NewIndex(2)
		require.NoError(t, err)

		_, err = x.Search([]float32{0, 0, 0}, 5)
		assert.Equal(t, webharvest.EINVALID, webharvest.ErrorCode(err))
	})
}

func TestIndex_Persistence(t *testing.T) {
	t.Parallel()

	t.Run("round trips through the file format", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "index.bin")
		x, err := vector.NewIndex(3)
		require.NoError(t, err)
		require.NoError(t, x.Add([][]float32{{1.5, -2.25, 0}, {0.125, 3, -1}}))
		require.NoError(t, x.WriteFile(path))

		loaded, err := vector.ReadIndexFile(path, 3)
		require.NoError(t, err)
		assert.Equal(t, 2, loaded.Count())

		got, err := loaded.Search([]float32{1.5, -2.25, 0}, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 0, got[0].Position)
		assert.Equal(t, float32(0), got[0].Distance)
	})

	t.Run("rejects dimension mismatch on load", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "index.bin")
		x, err := vector.NewIndex(3)
		require.NoError(t, err)
		require.NoError(t, x.WriteFile(path))

		_, err = vector.ReadIndexFile(path, 4)
		assert.Equal(t, webharvest.EINVALID, webharvest.ErrorCode(err))
	})

	t.Run("rejects garbage files", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "index.bin")
		writeGarbage(t, path)

		_, err := vector.ReadIndexFile(path, 3)
		assert.Error(t, err)
	})
}
