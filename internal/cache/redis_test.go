package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	opts, err := options("localhost:6379")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)

	opts, err = options("redis://:secret@cache:6380/2")
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)

	_, err = options("http://cache:6379")
	assert.Error(t, err)
}

func TestConnect(t *testing.T) {
	ctx := context.Background()
	t.Cleanup(func() { SetClient(nil) })

	assert.Nil(t, Connect(ctx, ""))
	assert.Nil(t, Connect(ctx, "mysql://nope"))

	mr := miniredis.RunT(t)
	rdb := Connect(ctx, mr.Addr())
	require.NotNil(t, rdb)
	t.Cleanup(func() { _ = rdb.Close() })

	require.NoError(t, InvalidateUser(ctx, 1))
	require.NoError(t, mr.Set("user:1", "x"))
	require.NoError(t, InvalidateUser(ctx, 1))
	assert.False(t, mr.Exists("user:1"))
}

func TestConnectUnreachable(t *testing.T) {
	t.Cleanup(func() { SetClient(nil) })
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	assert.Nil(t, Connect(context.Background(), addr))
}
