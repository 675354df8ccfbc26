package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlotEmptyRead(t *testing.T) {
	s := NewSlot()
	data, err := s.Read(context.Background())
	require.NoError(t, err)
	require.Nil(t, data)
}

func TestSlotWriteOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewSlot()

	require.NoError(t, s.Write(ctx, []byte("one")))
	require.NoError(t, s.Write(ctx, []byte("two")))

	data, err := s.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, "two", string(data))
	require.Equal(t, 2, s.Writes())
}

func TestSlotCopiesData(t *testing.T) {
	ctx := context.Background()
	s := NewSlot()

	buf := []byte("abc")
	require.NoError(t, s.Write(ctx, buf))
	buf[0] = 'x'

	data, err := s.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, "abc", string(data))
}

func TestSlotCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewSlot()
	require.Error(t, s.Write(ctx, []byte("x")))
	_, err := s.Read(ctx)
	require.Error(t, err)
	require.Error(t, s.Ping(ctx))
}
