package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/hxtree/lib/encoding"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Load(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(ctx, "sid", []byte("first")))
	got, err := s.Load(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), got)

	// last writer wins
	require.NoError(t, s.Save(ctx, "sid", []byte("second")))
	got, err = s.Load(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)

	require.NoError(t, s.Delete(ctx, "sid"))
	_, err = s.Load(ctx, "sid")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory(16, time.Minute))
}

func TestMemoryCopiesData(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0, 0)

	data := []byte("tree")
	require.NoError(t, m.Save(ctx, "sid", data))
	data[0] = 'X'

	got, err := m.Load(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, "tree", string(got))

	got[0] = 'Y'
	again, _ := m.Load(ctx, "sid")
	assert.Equal(t, "tree", string(again))
}

func TestMemoryEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(2, time.Minute)

	require.NoError(t, m.Save(ctx, "a", []byte("a")))
	require.NoError(t, m.Save(ctx, "b", []byte("b")))
	_, err := m.Load(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, m.Save(ctx, "c", []byte("c")))

	assert.Equal(t, 2, m.Len())
	_, err = m.Load(ctx, "b")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Load(ctx, "a")
	assert.NoError(t, err)
}

func TestSealed(t *testing.T) {
	enc, err := encoding.NewEncoder([]byte("test-key"))
	require.NoError(t, err)

	inner := NewMemory(16, time.Minute)
	s := NewSealed(inner, enc)
	exerciseStore(t, s)

	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "sid", []byte("plain widget state")))
	raw, err := inner.Load(ctx, "sid")
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "widget")
}

func TestRedis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	r := DialRedis(addr, "", 0, WithPrefix("hxtree:test:"), WithTTL(time.Minute))
	require.NoError(t, r.Ping(context.Background()))
	exerciseStore(t, r)
}
