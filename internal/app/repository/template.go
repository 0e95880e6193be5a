package repository

import (
	"context"
	"fmt"

	"custody/internal/app/apperr"
	"custody/internal/app/ds"
)

// ============ Document templates ============

func (r *Repository) CreateTemplate(ctx context.Context, t *ds.DocumentTemplate) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *Repository) GetTemplateByID(ctx context.Context, id uint) (*ds.DocumentTemplate, error) {
	var t ds.DocumentTemplate
	err := r.db.WithContext(ctx).First(&t, id).Error
	if err != nil {
		return nil, notFound(err, "template %d", id)
	}
	return &t, nil
}

func (r *Repository) ListActiveTemplates(ctx context.Context) ([]ds.DocumentTemplate, error) {
	var list []ds.DocumentTemplate
	err := r.db.WithContext(ctx).Where("active = ?", true).Order("title, version").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateTemplate rewrites title, version, body and the active flag. The attached blob stays.
func (r *Repository) UpdateTemplate(ctx context.Context, t *ds.DocumentTemplate) error {
	result := r.db.WithContext(ctx).Model(&ds.DocumentTemplate{}).
		Where("id = ?", t.ID).
		Updates(map[string]interface{}{
			"title":   t.Title,
			"version": t.Version,
			"content": t.Content,
			"active":  t.Active,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("template %d: %w", t.ID, apperr.ErrNotFound)
	}
	return nil
}

func (r *Repository) SetTemplateBlob(ctx context.Context, id uint, key string) error {
	return r.db.WithContext(ctx).Model(&ds.DocumentTemplate{}).
		Where("id = ?", id).
		Update("blob_key", key).Error
}
