package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// FSClient replays API payloads stored on the local filesystem. The payload for a given
// path is read from {root}/{path}.json; the query string is ignored.
type FSClient struct {
	Client
	root string
}

func init() {

	ctx := context.Background()
	err := RegisterClient(ctx, "fs", NewFSClient)

	if err != nil {
		panic(err)
	}
}

// NewFSClient returns a new `FSClient` configured by 'uri' which is expected to take
// the form of:
//
//	fs:///path/to/payloads
func NewFSClient(ctx context.Context, uri string) (Client, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, err
	}

	root := filepath.FromSlash(u.Host + u.Path)

	if root == "" {
		return nil, fmt.Errorf("Missing root path")
	}

	info, err := os.Stat(root)

	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	cl := &FSClient{
		root: root,
	}

	return cl, nil
}

func (cl *FSClient) Get(ctx context.Context, path string) ([]byte, error) {

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	rel := path

	idx := strings.Index(rel, "?")

	if idx > -1 {
		rel = rel[:idx]
	}

	rel = strings.Trim(rel, "/")

	if rel == "" || strings.Contains(rel, "..") {
		return nil, &StatusError{Path: path, StatusCode: http.StatusBadRequest, Status: http.StatusText(http.StatusBadRequest)}
	}

	abs_path := filepath.Join(cl.root, filepath.FromSlash(rel)+".json")

	body, err := os.ReadFile(abs_path)

	if os.IsNotExist(err) {
		return nil, &StatusError{Path: path, StatusCode: http.StatusNotFound, Status: http.StatusText(http.StatusNotFound)}
	}

	if err != nil {
		return nil, fmt.Errorf("Failed to read %s, %w", abs_path, err)
	}

	return body, nil
}
