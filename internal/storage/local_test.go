package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErr "github.com/ashokvas/flowspace/pkg/errors"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(t.TempDir(), "http://localhost:8080/api/v1/files")
	require.NoError(t, err)
	return s
}

func TestPutOpenRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ref := NewRef()

	n, err := s.Put(ctx, ref, "text/plain", strings.NewReader("hello blob"))
	require.NoError(t, err)
	assert.Equal(t, int64(10), n)

	rc, contentType, err := s.Open(ctx, ref)
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, "text/plain", contentType)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello blob", string(data))
}

func TestPutDefaultsContentType(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ref := NewRef()

	_, err := s.Put(ctx, ref, "", strings.NewReader("x"))
	require.NoError(t, err)

	rc, contentType, err := s.Open(ctx, ref)
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, "application/octet-stream", contentType)
}

func TestDeleteRemovesBlob(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ref := NewRef()

	_, err := s.Put(ctx, ref, "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, ref))

	_, _, err = s.Open(ctx, ref)
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	err = s.Delete(ctx, ref)
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestURL(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ref := NewRef()

	_, err := s.URL(ctx, ref)
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	_, err = s.Put(ctx, ref, "image/png", strings.NewReader("png"))
	require.NoError(t, err)

	url, err := s.URL(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/v1/files/"+ref, url)
}

func TestRejectsMalformedRefs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, ref := range []string{"", "../etc/passwd", "not-a-uuid", "a/b"} {
		_, err := s.Put(ctx, ref, "", strings.NewReader("x"))
		assert.True(t, appErr.IsCode(err, appErr.CodeInvalid), "ref %q", ref)
	}
}

func TestListSkipsMetaFiles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	refs := map[string]struct{}{}
	for i := 0; i < 3; i++ {
		ref := NewRef()
		refs[ref] = struct{}{}
		_, err := s.Put(ctx, ref, "text/plain", strings.NewReader("x"))
		require.NoError(t, err)
	}

	blobs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, blobs, 3)
	for _, b := range blobs {
		_, ok := refs[b.Ref]
		assert.True(t, ok, "unexpected blob %q", b.Ref)
		assert.Equal(t, int64(1), b.Size)
	}
}
