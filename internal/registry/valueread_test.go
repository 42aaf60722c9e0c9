package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errShort = errors.New("more data is available")

// growingValue mimics RegQueryValueEx: it reports the required size with an
// error when buf is too small, and grows its data after each size query.
type growingValue struct {
	sizes []int
	reads int
}

func (g *growingValue) get(buf []byte) (int, uint32, error) {
	i := g.reads
	if i >= len(g.sizes) {
		i = len(g.sizes) - 1
	}
	g.reads++
	size := g.sizes[i]
	if size > len(buf) {
		return size, uint32(Binary), errShort
	}
	for j := 0; j < size; j++ {
		buf[j] = byte(j)
	}
	return size, uint32(Binary), nil
}

func TestReadSized(t *testing.T) {
	t.Run("stable value", func(t *testing.T) {
		g := &growingValue{sizes: []int{24}}
		data, kind, err := readSized(g.get)
		require.NoError(t, err)
		assert.Len(t, data, 24)
		assert.Equal(t, Binary, kind)
		assert.Equal(t, 2, g.reads)
	})

	t.Run("value grows between reads", func(t *testing.T) {
		g := &growingValue{sizes: []int{16, 24}}
		data, _, err := readSized(g.get)
		require.NoError(t, err)
		assert.Len(t, data, 24)
		assert.Equal(t, byte(23), data[23])
		assert.Equal(t, 3, g.reads)
	})

	t.Run("value keeps growing", func(t *testing.T) {
		g := &growingValue{sizes: []int{8, 16, 24, 32}}
		_, _, err := readSized(g.get)
		assert.ErrorContains(t, err, "still growing")
	})

	t.Run("empty value", func(t *testing.T) {
		g := &growingValue{sizes: []int{0}}
		data, _, err := readSized(g.get)
		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("read error", func(t *testing.T) {
		denied := errors.New("access denied")
		_, _, err := readSized(func([]byte) (int, uint32, error) { return 0, 0, denied })
		assert.ErrorIs(t, err, denied)
	})
}
