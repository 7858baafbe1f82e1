// Package testutil holds fakes and request builders shared by package tests.
// It must only be imported from _test.go files.
package testutil

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"inkpress/database"
	"inkpress/models"
	"inkpress/storage"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostStore is an in-memory handlers.PostStore. Setting Err makes every
// call fail with it.
type PostStore struct {
	mu    sync.Mutex
	posts []models.Post
	Err   error
}

func NewPostStore(posts ...models.Post) *PostStore {
	return &PostStore{posts: posts}
}

// Posts returns a snapshot of the stored documents.
func (s *PostStore) Posts() []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Post(nil), s.posts...)
}

func (s *PostStore) List(ctx context.Context) ([]models.Post, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Posts(), nil
}

func (s *PostStore) Get(ctx context.Context, id string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.posts {
		if s.posts[i].ID.Hex() == id {
			post := s.posts[i]
			return &post, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *PostStore) Create(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	post.ID = primitive.NewObjectID()
	post.Date = time.Now().UTC()
	s.posts = append(s.posts, *post)
	return nil
}

func (s *PostStore) Update(ctx context.Context, id string, u models.PostUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for i := range s.posts {
		p := &s.posts[i]
		if p.ID.Hex() != id {
			continue
		}
		set := func(dst *string, v string) {
			if v != "" {
				*dst = v
			}
		}
		set(&p.Title, u.Title)
		set(&p.Description, u.Description)
		set(&p.Category, u.Category)
		set(&p.Author, u.Author)
		set(&p.AuthorImg, u.AuthorImg)
		set(&p.Image, u.Image)
		return nil
	}
	return database.ErrNotFound
}

func (s *PostStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	kept := s.posts[:0]
	for _, p := range s.posts {
		if p.ID.Hex() != id {
			kept = append(kept, p)
		}
	}
	s.posts = kept
	return nil
}

// Pinger answers Ping with Err.
type Pinger struct {
	Err error
}

func (p Pinger) Ping(ctx context.Context) error {
	return p.Err
}

// MediaStore records uploads in memory. FailAfter > 0 makes the upload with
// that 1-based index and every later one fail.
type MediaStore struct {
	mu        sync.Mutex
	Keys      []string
	FailAfter int
}

func (m *MediaStore) Put(ctx context.Context, folder, key string, body io.Reader) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAfter > 0 && len(m.Keys)+1 >= m.FailAfter {
		return "", &storage.UploadError{Folder: folder, Key: key, Err: errors.New("storage unavailable")}
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", &storage.UploadError{Folder: folder, Key: key, Err: err}
	}
	m.Keys = append(m.Keys, folder+"/"+key)
	return "https://media.example/" + folder + "/" + key, nil
}

// Uploads returns the number of stored files.
func (m *MediaStore) Uploads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Keys)
}

// FormFile is a file part of a multipart request.
type FormFile struct {
	Field    string
	Filename string
	Content  []byte
}

// MultipartRequest builds a multipart/form-data request with string fields
// and file parts.
func MultipartRequest(t *testing.T, method, target string, fields map[string]string, files ...FormFile) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.Field, f.Filename)
		require.NoError(t, err)
		_, err = part.Write(f.Content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}
