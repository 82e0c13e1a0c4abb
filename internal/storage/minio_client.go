package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"studiosite/internal/config"
)

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrEmptyFile       = errors.New("file is empty")
)

// supported avatar formats and the extension stored with each
var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type Storage interface {
	UploadAvatar(ctx context.Context, userID string, data []byte) (string, error)
	DeleteAvatar(ctx context.Context, userID, avatarURL string) error
}

type MinIOClient struct {
	client *minio.Client
	config config.MinIO
}

// DetectImage sniffs the content and returns its MIME type and file extension.
func DetectImage(data []byte) (string, string, error) {
	if len(data) == 0 {
		return "", "", ErrEmptyFile
	}

	contentType := normalizeMimeType(mimetype.Detect(data).String())
	ext, ok := imageTypes[contentType]
	if !ok {
		return contentType, "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	return contentType, ext, nil
}

func normalizeMimeType(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if separator := strings.Index(normalized, ";"); separator >= 0 {
		normalized = strings.TrimSpace(normalized[:separator])
	}
	return normalized
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinIO.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.MinIO.BucketName, err)
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIO.BucketName, minio.MakeBucketOptions{Region: cfg.MinIO.Region})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.MinIO.BucketName, err)
		}
		log.Printf("Created MinIO bucket %s", cfg.MinIO.BucketName)
	}

	return &MinIOClient{client: client, config: cfg.MinIO}, nil
}

// UploadAvatar stores the image under avatars/<user>/ and returns its public URL.
func (m *MinIOClient) UploadAvatar(ctx context.Context, userID string, data []byte) (string, error) {
	contentType, ext, err := DetectImage(data)
	if err != nil {
		return "", err
	}

	now := time.Now()
	objectName := avatarPrefix(userID) + uuid.New().String() + ext

	_, err = m.client.PutObject(ctx, m.config.BucketName, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"user-id":     userID,
				"uploaded-at": now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	return ObjectURL(m.config, objectName), nil
}

// DeleteAvatar removes an avatar previously uploaded for userID.
// URLs outside the user's avatar folder are ignored.
func (m *MinIOClient) DeleteAvatar(ctx context.Context, userID, avatarURL string) error {
	objectName, ok := AvatarObjectName(m.config, userID, avatarURL)
	if !ok {
		if _, inBucket := ObjectName(m.config, avatarURL); inBucket {
			log.Printf("Skipping delete of avatar %s not owned by user %s", avatarURL, userID)
		}
		return nil
	}

	err := m.client.RemoveObject(ctx, m.config.BucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete avatar: %w", err)
	}
	return nil
}

func baseURL(cfg config.MinIO) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/")
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, cfg.Endpoint)
}

func ObjectURL(cfg config.MinIO, objectName string) string {
	return fmt.Sprintf("%s/%s/%s", baseURL(cfg), cfg.BucketName, objectName)
}

func ObjectName(cfg config.MinIO, objectURL string) (string, bool) {
	prefix := fmt.Sprintf("%s/%s/", baseURL(cfg), cfg.BucketName)
	name, ok := strings.CutPrefix(objectURL, prefix)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

func avatarPrefix(userID string) string {
	return "avatars/" + userID + "/"
}

// AvatarObjectName resolves avatarURL to an object inside userID's avatar folder.
func AvatarObjectName(cfg config.MinIO, userID, avatarURL string) (string, bool) {
	if userID == "" {
		return "", false
	}
	name, ok := ObjectName(cfg, avatarURL)
	if !ok || strings.Contains(name, "..") {
		return "", false
	}
	file, ok := strings.CutPrefix(name, avatarPrefix(userID))
	if !ok || file == "" || strings.Contains(file, "/") {
		return "", false
	}
	return name, true
}
