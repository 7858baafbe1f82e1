package storage

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes uploads below a directory that the router serves under
// urlPrefix.
type LocalStore struct {
	root      string
	urlPrefix string
}

func NewLocalStore(root, urlPrefix string) *LocalStore {
	return &LocalStore{
		root:      root,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
	}
}

// Root is the directory uploads are written to.
func (s *LocalStore) Root() string {
	return s.root
}

// URLPrefix is the path the root is served under.
func (s *LocalStore) URLPrefix() string {
	return s.urlPrefix
}

func (s *LocalStore) Put(ctx context.Context, folder, key string, body io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &UploadError{Folder: folder, Key: key, Err: err}
	}

	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &UploadError{Folder: folder, Key: key, Err: err}
	}

	path := filepath.Join(dir, key)
	dst, err := os.Create(path)
	if err != nil {
		return "", &UploadError{Folder: folder, Key: key, Err: err}
	}

	if _, err := io.Copy(dst, body); err != nil {
		dst.Close()
		os.Remove(path)
		return "", &UploadError{Folder: folder, Key: key, Err: err}
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", &UploadError{Folder: folder, Key: key, Err: err}
	}

	return s.urlPrefix + "/" + folder + "/" + url.PathEscape(key), nil
}
