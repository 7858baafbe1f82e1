package storage

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
)

// S3Store uploads public-read objects keyed "<folder>/<key>".
type S3Store struct {
	bucket   string
	uploader *s3manager.Uploader
}

// NewS3Store uses the default AWS credential chain.
func NewS3Store(region, bucket string) (*S3Store, error) {
	if bucket == "" {
		return nil, errors.New("S3_BUCKET is not defined")
	}
	sess, err := session.NewSession(aws.NewConfig().WithRegion(region))
	if err != nil {
		return nil, errors.Wrap(err, "creating aws session")
	}
	return &S3Store{bucket: bucket, uploader: s3manager.NewUploader(sess)}, nil
}

func (s *S3Store) Put(ctx context.Context, folder, key string, body io.Reader) (string, error) {
	contentType, body, err := sniff(body)
	if err != nil {
		return "", &UploadError{Folder: folder, Key: key, Err: err}
	}

	out, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(folder + "/" + key),
		Body:        body,
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		return "", &UploadError{Folder: folder, Key: key, Err: err}
	}
	return out.Location, nil
}
