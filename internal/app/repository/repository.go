package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"custody/internal/app/apperr"
	"custody/internal/app/ds"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

// New opens the Postgres database. The schema is owned by the goose migrations
// (cmd/migrate); AutoMigrate is only used for throwaway databases.
func New(dsn string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	return &Repository{db: db}, nil
}

func NewWithDB(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AutoMigrate creates every table from the gorm models.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&ds.User{},
		&ds.DocumentTemplate{},
		&ds.Equipment{},
		&ds.Term{},
		&ds.CustodyItem{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (r *Repository) DB() *gorm.DB {
	return r.db
}

// Transaction runs fn against a Repository bound to one database transaction.
// Any error returned by fn rolls everything back.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func notFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf(format+": %w", append(args, apperr.ErrNotFound)...)
	}
	return err
}

// isDuplicate covers drivers that do not translate constraint errors.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
