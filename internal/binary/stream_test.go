package binary

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-gridformat/field"
)

func TestStreamReadHeader(t *testing.T) {
	cfg := Config{ByteOrder: binary.BigEndian, HeaderSize: 4}
	data := cfg.AppendHeader(nil, 3, 7)
	data = append(data, 'a', 'b', 'c')

	s := NewStream(bytes.NewReader(data), cfg, int64(len(data)))
	words, err := s.ReadHeader(2)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 7}, words)
	assert.Equal(t, int64(3), s.Remaining())

	payload := make([]byte, words[0])
	require.NoError(t, s.ReadFull(payload))
	assert.Equal(t, "abc", string(payload))
	assert.Equal(t, int64(0), s.Remaining())
}

func TestStreamBounds(t *testing.T) {
	cfg := Config{ByteOrder: binary.LittleEndian, HeaderSize: 8}
	huge := cfg.AppendHeader(nil, 0xF000000000000000)

	s := NewStream(bytes.NewReader(huge), cfg, int64(len(huge)))
	_, err := s.ReadHeader(1)
	assert.ErrorIs(t, err, field.ErrValue)

	// The stream is never touched when the request exceeds the limit.
	s = NewStream(bytes.NewReader(huge), cfg, int64(len(huge)))
	_, err = s.ReadHeader(1 << 40)
	assert.ErrorIs(t, err, field.ErrSize)
	_, err = s.ReadHeader(-1)
	assert.ErrorIs(t, err, field.ErrSize)
	assert.Equal(t, int64(8), s.Remaining())

	err = s.ReadFull(make([]byte, 9))
	assert.ErrorIs(t, err, field.ErrSize)

	// A limit larger than the data fails on the short read.
	s = NewStream(bytes.NewReader([]byte{1, 2}), cfg, 100)
	err = s.ReadFull(make([]byte, 4))
	assert.ErrorIs(t, err, field.ErrSize)
}
