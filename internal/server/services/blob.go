package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	sc "github.com/edusync/edusync/internal/server/config"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// Seams for testing the S3 wiring without a real backend.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// BlobService stores course media and URL-reference documents in an
// S3-compatible backend (MinIO in development).
type BlobService struct {
	config *sc.Config
}

func NewBlobService(config *sc.Config) *BlobService {
	return &BlobService{config: config}
}

// URLDocument is the JSON body stored for an external media link.
type URLDocument struct {
	OriginalURL string    `json:"originalUrl"`
	Title       string    `json:"title"`
	UploadedAt  time.Time `json:"uploadedAt"`
	Type        string    `json:"type"`
}

func (s *BlobService) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

// MakeStorageKey builds a collision-free object key preserving the original
// file extension, e.g. "20250901_120000_8a0f...e1.png".
func MakeStorageKey(fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("%s_%s%s", time.Now().UTC().Format("20060102_150405"), uuid.New(), ext)
}

// KeyFromURL extracts the object key from a full blob URL; a bare key passes
// through unchanged.
func KeyFromURL(fileURL string) string {
	if !strings.Contains(fileURL, "://") {
		return fileURL
	}
	u, err := url.Parse(fileURL)
	if err != nil {
		return fileURL
	}
	return path.Base(u.Path)
}

// ContentTypeFor maps a file name to the content type stored on the blob,
// falling back to the client-supplied type.
func ContentTypeFor(fileName string, fallback string) string {
	switch strings.ToLower(path.Ext(fileName)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".mp4":
		return "video/mp4"
	case ".avi":
		return "video/avi"
	case ".mov":
		return "video/quicktime"
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain"
	default:
		if fallback == "" {
			return "application/octet-stream"
		}
		return fallback
	}
}

func (s *BlobService) objectURL(key string) string {
	base := strings.TrimSuffix(s.config.S3BaseEndpoint, "/")
	return fmt.Sprintf("%s/%s/%s", base, s.config.S3Bucket, key)
}

// UploadFile stores the given content under a fresh storage key and returns
// the object URL.
func (s *BlobService) UploadFile(ctx context.Context, fileName string, contentType string, content io.Reader) (string, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}

	key := MakeStorageKey(fileName)
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.S3Bucket),
		Key:         aws.String(key),
		Body:        content,
		ContentType: aws.String(ContentTypeFor(fileName, contentType)),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading blob: %w", err)
	}

	return s.objectURL(key), nil
}

// UploadURLDocument stores an external link as a JSON document blob and
// returns the blob URL together with the generated file name.
func (s *BlobService) UploadURLDocument(ctx context.Context, originalURL string, title string) (string, string, error) {
	if title == "" {
		title = "External Media Link"
	}
	doc := URLDocument{
		OriginalURL: originalURL,
		Title:       title,
		UploadedAt:  time.Now().UTC(),
		Type:        "url-link",
	}

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", "", err
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return "", "", err
	}

	fileName := fmt.Sprintf("url-link_%s_%s.json", time.Now().UTC().Format("20060102_150405"), uuid.New())
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.S3Bucket),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", "", fmt.Errorf("error uploading url document: %w", err)
	}

	return s.objectURL(fileName), fileName, nil
}

// Exists reports whether the blob behind fileURL is present.
func (s *BlobService) Exists(ctx context.Context, fileURL string) (bool, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return false, err
	}

	_, err = client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(KeyFromURL(fileURL)),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("error checking blob: %w", err)
	}
	return true, nil
}

// Delete removes the blob behind fileURL. Deleting an absent blob is not an
// error.
func (s *BlobService) Delete(ctx context.Context, fileURL string) error {
	client, err := s.getClient(ctx)
	if err != nil {
		return err
	}

	_, err = client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(KeyFromURL(fileURL)),
	})
	if err != nil {
		return fmt.Errorf("error deleting blob: %w", err)
	}
	return nil
}

// GetURLDocument reads back a stored URL-reference document.
func (s *BlobService) GetURLDocument(ctx context.Context, blobURL string) (*URLDocument, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(KeyFromURL(blobURL)),
	})
	if err != nil {
		return nil, fmt.Errorf("error reading blob: %w", err)
	}
	defer out.Body.Close()

	doc := &URLDocument{}
	if err := json.NewDecoder(out.Body).Decode(doc); err != nil {
		return nil, fmt.Errorf("error decoding url document: %w", err)
	}
	return doc, nil
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchKey"
	}
	return false
}
