package tmframe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalarPDURoundTrip(t *testing.T) {
	for _, width := range []int{1, 2, 4, 8} {
		p := NewScalarPDU(width)
		p.Set(0x0102030405060708 & ((1 << (8 * width)) - 1))
		buf, err := p.Insert(nil)
		require.NoError(t, err)
		require.Len(t, buf, width)

		p2 := NewScalarPDU(width)
		rest, err := p2.Extract(buf)
		require.NoError(t, err)
		require.Empty(t, rest)
		require.Equal(t, p.Get(), p2.Get())
	}
}

func TestScalarPDUExtract_SizeMismatch(t *testing.T) {
	p := NewScalarPDU(4)
	_, err := p.Extract([]byte{0x01, 0x02})
	require.Error(t, err)
	require.True(t, IsErrSizeMismatch(err))
}

func TestArrayPDU(t *testing.T) {
	p := NewArrayPDU(4)
	require.NoError(t, p.Set([]byte{1, 2, 3, 4}))
	require.Error(t, p.Set([]byte{1, 2, 3}))

	buf, err := p.Insert(nil)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4}, buf)

	p2 := NewArrayPDU(4)
	rest, err := p2.Extract(buf)
	require.NoError(t, err)
	require.Empty(t, rest)
	require.Equal(t, []byte{1, 2, 3, 4}, p2.Get())
}

func TestNullPDU(t *testing.T) {
	var p NullPDU
	require.Equal(t, 0, p.Size())
	buf, err := p.Insert([]byte{0xAA})
	require.NoError(t, err)
	require.Equal(t, []byte{0xAA}, buf)

	rest, err := p.Extract([]byte{0xAA})
	require.NoError(t, err)
	require.Equal(t, []byte{0xAA}, rest)
}
