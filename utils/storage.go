package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

var ErrBadDataURL = errors.New("malformed data URL")

// ImageUploader stores an object and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
}

type S3Uploader struct {
	client *s3.S3
	bucket string
	region string
}

// NewS3Uploader builds an uploader for bucket. Empty keys fall back to the
// default AWS credential chain.
func NewS3Uploader(region, accessKey, secretKey, bucket string) (*S3Uploader, error) {
	awsCfg := &aws.Config{Region: aws.String(region)}
	if accessKey != "" && secretKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(accessKey, secretKey, "")
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return &S3Uploader{client: s3.New(sess), bucket: bucket, region: region}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key), nil
}

// ParseDataURL decodes a base64 "data:<mime>;base64,<payload>" URL.
func ParseDataURL(raw string) (contentType string, body []byte, err error) {
	rest, ok := strings.CutPrefix(raw, "data:")
	if !ok {
		return "", nil, ErrBadDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return "", nil, ErrBadDataURL
	}
	contentType = strings.TrimSuffix(meta, ";base64")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	body, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrBadDataURL, err)
	}
	return contentType, body, nil
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// StoreImage uploads image when it is a data URL and an uploader is
// configured. Anything else is returned unchanged.
func StoreImage(ctx context.Context, uploader ImageUploader, image string) (string, error) {
	if uploader == nil || !strings.HasPrefix(image, "data:") {
		return image, nil
	}
	contentType, body, err := ParseDataURL(image)
	if err != nil {
		return "", err
	}
	key := "reviews/" + uuid.NewString() + imageExtensions[contentType]
	return uploader.Upload(ctx, key, contentType, body)
}
