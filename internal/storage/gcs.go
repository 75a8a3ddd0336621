package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCSMirror syncs background clips from a bucket into the local
// background directory so the assembler only ever reads local files.
type GCSMirror struct {
	client   *storage.Client
	bucket   string
	prefix   string
	localDir string
}

func NewGCSMirror(ctx context.Context, bucket, prefix, localDir string) (*GCSMirror, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create GCS client: %w", err)
	}

	return &GCSMirror{
		client:   client,
		bucket:   bucket,
		prefix:   prefix,
		localDir: localDir,
	}, nil
}

func (m *GCSMirror) Close() error {
	return m.client.Close()
}

// Sync downloads any background clips missing from the local directory.
// Clips already present are left untouched.
func (m *GCSMirror) Sync(ctx context.Context) error {
	clips, err := m.listClips(ctx)
	if err != nil {
		return err
	}

	for _, remotePath := range clips {
		localPath := filepath.Join(m.localDir, filepath.Base(remotePath))
		if _, err := os.Stat(localPath); err == nil {
			continue
		}

		slog.Info("Downloading background clip", "object", remotePath)
		if err := m.downloadFile(ctx, remotePath, localPath); err != nil {
			return fmt.Errorf("download %s: %w", remotePath, err)
		}
	}

	return nil
}

func (m *GCSMirror) listClips(ctx context.Context) ([]string, error) {
	bkt := m.client.Bucket(m.bucket)
	query := &storage.Query{Prefix: m.prefix}

	var clips []string
	it := bkt.Objects(ctx, query)
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}

		ext := strings.ToLower(filepath.Ext(attrs.Name))
		if ext == ".mp4" || ext == ".mov" || ext == ".mkv" {
			clips = append(clips, attrs.Name)
		}
	}

	return clips, nil
}

func (m *GCSMirror) downloadFile(ctx context.Context, remotePath, localPath string) error {
	if err := os.MkdirAll(filepath.Dir(localPath), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	obj := m.client.Bucket(m.bucket).Object(remotePath)
	r, err := obj.NewReader(ctx)
	if err != nil {
		return fmt.Errorf("create reader: %w", err)
	}
	defer func() { _ = r.Close() }()

	f, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("create local file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("download file: %w", err)
	}

	return nil
}
