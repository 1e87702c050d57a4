package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog/log"
)

// Storage keeps JSON exports of a user's data taken before a full reset.
type Storage interface {
	SaveBackup(ctx context.Context, name string, data []byte) (string, error)
}

type LocalStorage struct {
	backupDir string
}

type SpacesStorage struct {
	client   *s3.S3
	bucket   string
	cdnURL   string
	endpoint string
}

func NewLocalStorage(backupDir string) *LocalStorage {
	return &LocalStorage{backupDir: backupDir}
}

func NewSpacesStorage(endpoint, region, bucket, cdnURL, accessKey, secretKey string) (*SpacesStorage, error) {
	config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(false),
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &SpacesStorage{
		client:   s3.New(sess),
		bucket:   bucket,
		cdnURL:   cdnURL,
		endpoint: endpoint,
	}, nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// normalizeFilename creates a unique, normalized .json filename without spaces
func normalizeFilename(name string, at time.Time) string {
	baseName := strings.TrimSuffix(name, filepath.Ext(name))
	baseName = strings.ReplaceAll(baseName, " ", "_")
	baseName = unsafeChars.ReplaceAllString(baseName, "")
	if baseName == "" {
		baseName = "backup"
	}
	return fmt.Sprintf("%s_%s.json", baseName, at.UTC().Format("20060102_150405"))
}

func (ls *LocalStorage) SaveBackup(_ context.Context, name string, data []byte) (string, error) {
	filename := normalizeFilename(name, time.Now())
	path := filepath.Join(ls.backupDir, filename)

	if err := os.MkdirAll(ls.backupDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	log.Debug().Str("path", path).Int("bytes", len(data)).Msg("backup written")
	return path, nil
}

func (ss *SpacesStorage) SaveBackup(ctx context.Context, name string, data []byte) (string, error) {
	key := fmt.Sprintf("backups/%s", normalizeFilename(name, time.Now()))

	_, err := ss.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(ss.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
		ACL:         aws.String("private"),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to upload backup to Spaces")
		return "", fmt.Errorf("failed to upload to Spaces: %w", err)
	}

	if ss.cdnURL == "" {
		return fmt.Sprintf("s3://%s/%s", ss.bucket, key), nil
	}
	return fmt.Sprintf("%s/%s", strings.TrimSuffix(ss.cdnURL, "/"), key), nil
}
