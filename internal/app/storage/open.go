package storage

import (
	"context"
	"fmt"

	"custody/internal/app/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Store serves both documents and templates. Both backends implement it.
type Store interface {
	ArtifactStore
	TemplateStore
}

// Open builds the backend named by cfg.Storage.Driver: "minio" (default) or "local".
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Storage.Driver {
	case "local":
		logrus.WithField("root", cfg.Storage.LocalRoot).Info("using local artifact storage")
		return NewFileStore(afero.NewOsFs(), cfg.Storage.LocalRoot), nil
	case "minio", "":
		client, err := NewMinIOClient(ctx, cfg.MinIO.Endpoint, cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, cfg.MinIO.Bucket, cfg.MinIO.UseSSL)
		if err != nil {
			return nil, fmt.Errorf("minio: %w", err)
		}
		logrus.WithFields(logrus.Fields{"endpoint": cfg.MinIO.Endpoint, "bucket": cfg.MinIO.Bucket}).Info("using minio artifact storage")
		return client, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
