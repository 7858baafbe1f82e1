package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/pkg/errors"
)

// CloudinaryStore uploads to Cloudinary under <folder>/<logical folder>.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cloudinaryURL, folder string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, errors.Wrap(err, "cloudinary configuration error")
	}
	return &CloudinaryStore{cld: cld, folder: folder}, nil
}

func (s *CloudinaryStore) Put(ctx context.Context, folder, key string, body io.Reader) (string, error) {
	uploadParams := uploader.UploadParams{
		Folder:   path.Join(s.folder, folder),
		PublicID: strings.TrimSuffix(key, path.Ext(key)),
	}

	uploadResult, err := s.cld.Upload.Upload(ctx, body, uploadParams)
	if err != nil {
		return "", &UploadError{Folder: folder, Key: key, Err: err}
	}
	if uploadResult.Error.Message != "" {
		return "", &UploadError{Folder: folder, Key: key, Err: errors.New(uploadResult.Error.Message)}
	}
	return uploadResult.SecureURL, nil
}
