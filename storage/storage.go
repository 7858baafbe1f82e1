// Package storage persists uploaded media and hands back public URLs. The
// backend is interchangeable: local disk, Cloudinary or S3.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"inkpress/config"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
)

// Logical folders, one per kind of upload.
const (
	FolderBlogs       = "blogs"
	FolderAuthors     = "authors"
	FolderDescription = "description"
)

// AuthorPrefix marks author pictures inside their object key.
const AuthorPrefix = "author_"

const (
	BackendLocal      = "local"
	BackendCloudinary = "cloudinary"
	BackendS3         = "s3"
)

// sniffLen is how much of a payload mimetype needs to classify it.
const sniffLen = 3072

// Store accepts bytes under a folder and key and returns a public URL.
type Store interface {
	Put(ctx context.Context, folder, key string, body io.Reader) (string, error)
}

// UploadError is returned by every backend when a file could not be stored.
type UploadError struct {
	Folder string
	Key    string
	Err    error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("uploading %s/%s: %v", e.Folder, e.Key, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

var whitespace = regexp.MustCompile(`\s+`)

// ObjectKey builds "<unix millis>_<prefix><filename>" with whitespace runs in
// the filename replaced by underscores. Collisions are improbable, not
// prevented.
func ObjectKey(prefix, filename string, now time.Time) string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" {
		name = "upload"
	}
	return fmt.Sprintf("%d_%s%s", now.UnixMilli(), prefix, whitespace.ReplaceAllString(name, "_"))
}

// Save stores a multipart upload in folder and returns its URL.
func Save(ctx context.Context, store Store, folder, prefix string, fh *multipart.FileHeader) (string, error) {
	key := ObjectKey(prefix, fh.Filename, time.Now())

	file, err := fh.Open()
	if err != nil {
		return "", &UploadError{Folder: folder, Key: key, Err: err}
	}
	defer file.Close()

	return store.Put(ctx, folder, key, file)
}

// New builds the backend selected by cfg.MediaBackend.
func New(cfg *config.Config) (Store, error) {
	switch strings.ToLower(cfg.MediaBackend) {
	case "", BackendLocal:
		return NewLocalStore(cfg.UploadDir, cfg.UploadURLPrefix), nil
	case BackendCloudinary:
		return NewCloudinaryStore(cfg.CloudinaryURL, cfg.CloudinaryFolder)
	case BackendS3:
		return NewS3Store(cfg.S3Region, cfg.S3Bucket)
	default:
		return nil, errors.Errorf("unknown media backend %q", cfg.MediaBackend)
	}
}

// sniff detects the content type of body without consuming it.
func sniff(body io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(body, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, err
	}
	head = head[:n]
	return mimetype.Detect(head).String(), io.MultiReader(bytes.NewReader(head), body), nil
}
