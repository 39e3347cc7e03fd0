package mirror

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillpass/skillpass-server/internal/model"
)

func TestStore_Store(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	ref, err := s.Store(ctx, []byte("hello"))
	require.NoError(t, err)

	digest := sha256.Sum256([]byte("hello"))
	assert.Equal(t, RefPrefix+hex.EncodeToString(digest[:]), ref)

	again, err := s.Store(ctx, []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, ref, again)
}

func TestStore_Store_EmptyPayload(t *testing.T) {
	s := NewStore()

	_, err := s.Store(context.Background(), []byte{})
	assert.ErrorIs(t, err, model.ErrInvalidPayload)
}

func TestStore_Exists(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	ref, err := s.Store(ctx, []byte("hello"))
	require.NoError(t, err)

	ok, err := s.Exists(ctx, ref)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists(ctx, "0011aabb")
	require.NoError(t, err)
	assert.False(t, ok)
}
