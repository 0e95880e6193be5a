package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"custody/internal/app/apperr"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

type MinIOClient struct {
	client     *minio.Client
	bucketName string
}

// NewMinIOClient connects and creates the bucket if it does not exist yet.
func NewMinIOClient(ctx context.Context, endpoint, accessKey, secretKey, bucketName string, useSSL bool) (*MinIOClient, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logrus.Infof("Bucket %s created successfully", bucketName)
	}

	return &MinIOClient{
		client:     client,
		bucketName: bucketName,
	}, nil
}

func (m *MinIOClient) Store(ctx context.Context, token string, data []byte) (string, error) {
	key := ArtifactKey(token)
	if err := m.put(ctx, key, data, pdfContentType); err != nil {
		return "", &apperr.StorageError{Op: "store", Err: err}
	}
	logrus.WithField("term", token).Infof("artifact %s stored", key)
	return key, nil
}

func (m *MinIOClient) Retrieve(ctx context.Context, ref string) ([]byte, error) {
	data, err := m.get(ctx, ref)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, fmt.Errorf("artifact %s: %w", ref, apperr.ErrNotFound)
		}
		return nil, &apperr.StorageError{Op: "retrieve", Err: err}
	}
	return data, nil
}

func (m *MinIOClient) UploadTemplate(ctx context.Context, templateID uint, data []byte) (string, error) {
	key := templateKey(templateID)
	if err := m.put(ctx, key, data, docxContentType); err != nil {
		return "", &apperr.StorageError{Op: "upload template", Err: err}
	}
	logrus.Infof("template %d uploaded as %s", templateID, key)
	return key, nil
}

func (m *MinIOClient) Blob(ctx context.Context, key string) ([]byte, error) {
	data, err := m.get(ctx, key)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, fmt.Errorf("template blob %s: %w", key, apperr.ErrNotFound)
		}
		return nil, &apperr.StorageError{Op: "read template", Err: err}
	}
	return data, nil
}

func (m *MinIOClient) put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucketName, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// get stats first: GetObject itself is lazy and would only fail on the first Read.
func (m *MinIOClient) get(ctx context.Context, key string) ([]byte, error) {
	object, err := m.client.GetObject(ctx, m.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer object.Close()

	if _, err := object.Stat(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	return data, nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
