package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
)

// MinIOBlob keeps objects under prefix in a single bucket.
type MinIOBlob struct {
	client *minio.Client
	bucket string
	prefix string
}

func NewMinIOBlob(client *minio.Client, bucket, prefix string) *MinIOBlob {
	return &MinIOBlob{client: client, bucket: bucket, prefix: prefix}
}

func (b *MinIOBlob) key(name string) string {
	return path.Join(b.prefix, name)
}

func (b *MinIOBlob) Put(ctx context.Context, name string, data []byte, contentType string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	_, err := b.client.PutObject(ctx, b.bucket, b.key(name), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload to MinIO: %w", err)
	}
	return nil
}

func (b *MinIOBlob) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	object, err := b.client.GetObject(ctx, b.bucket, b.key(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	return data, nil
}

func (b *MinIOBlob) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := b.client.RemoveObject(ctx, b.bucket, b.key(name), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// MinIODocument stores a JSON document as a single object.
type MinIODocument struct {
	blob *MinIOBlob
	name string
}

func NewMinIODocument(blob *MinIOBlob, name string) *MinIODocument {
	return &MinIODocument{blob: blob, name: name}
}

func (d *MinIODocument) Load(ctx context.Context, v any) (bool, error) {
	data, err := d.blob.Get(ctx, d.name)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", d.name, err)
	}
	return true, nil
}

func (d *MinIODocument) Save(ctx context.Context, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", d.name, err)
	}
	return d.blob.Put(ctx, d.name, data, "application/json")
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
