package client

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFSClient(t *testing.T) {

	ctx := context.Background()

	root := t.TempDir()

	err := os.MkdirAll(filepath.Join(root, "places", "A1"), 0755)
	require.NoError(t, err)

	err = os.WriteFile(filepath.Join(root, "places", "search.json"), []byte(`{"results": []}`), 0644)
	require.NoError(t, err)

	err = os.WriteFile(filepath.Join(root, "places", "A1", "tips.json"), []byte(`[]`), 0644)
	require.NoError(t, err)

	cl, err := NewClient(ctx, "fs://"+filepath.ToSlash(root))
	require.NoError(t, err)

	body, err := cl.Get(ctx, "places/search?query=hotel&limit=10")
	require.NoError(t, err)
	require.Equal(t, `{"results": []}`, string(body))

	body, err = cl.Get(ctx, TipsPath("A1"))
	require.NoError(t, err)
	require.Equal(t, `[]`, string(body))

	var status_err *StatusError

	_, err = cl.Get(ctx, TipsPath("B2"))
	require.ErrorAs(t, err, &status_err)
	require.Equal(t, http.StatusNotFound, status_err.StatusCode)

	_, err = cl.Get(ctx, "../secrets")
	require.ErrorAs(t, err, &status_err)
	require.Equal(t, http.StatusBadRequest, status_err.StatusCode)
}

func TestFSClientInvalidRoot(t *testing.T) {

	ctx := context.Background()

	_, err := NewClient(ctx, "fs://")
	require.Error(t, err)

	root := t.TempDir()
	path := filepath.Join(root, "file.json")

	err = os.WriteFile(path, []byte(`[]`), 0644)
	require.NoError(t, err)

	_, err = NewClient(ctx, "fs://"+filepath.ToSlash(path))
	require.Error(t, err)
}
