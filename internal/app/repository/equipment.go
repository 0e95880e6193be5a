package repository

import (
	"context"
	"fmt"

	"custody/internal/app/apperr"
	"custody/internal/app/ds"
)

// ============ Equipment ============

func (r *Repository) CreateEquipment(ctx context.Context, e *ds.Equipment) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&ds.Equipment{}).
		Where("serial_number = ?", e.SerialNumber).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("serial %q: %w", e.SerialNumber, apperr.ErrDuplicateSerial)
	}

	if e.Status == "" {
		e.Status = ds.EquipmentAvailable
	}
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		// lost a race with a concurrent insert
		if isDuplicate(err) {
			return fmt.Errorf("serial %q: %w", e.SerialNumber, apperr.ErrDuplicateSerial)
		}
		return err
	}
	return nil
}

// UpdateEquipment rewrites the descriptive columns and the status of a unit. The holder
// only changes through custody events.
func (r *Repository) UpdateEquipment(ctx context.Context, e *ds.Equipment) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&ds.Equipment{}).
		Where("serial_number = ? AND id <> ?", e.SerialNumber, e.ID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("serial %q: %w", e.SerialNumber, apperr.ErrDuplicateSerial)
	}

	result := r.db.WithContext(ctx).Model(&ds.Equipment{}).
		Where("id = ?", e.ID).
		Updates(map[string]interface{}{
			"category":      e.Category,
			"make":          e.Make,
			"model":         e.Model,
			"serial_number": e.SerialNumber,
			"description":   e.Description,
			"value":         e.Value,
			"acquired_on":   e.AcquiredOn,
			"status":        e.Status,
			"notes":         e.Notes,
		})
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return fmt.Errorf("serial %q: %w", e.SerialNumber, apperr.ErrDuplicateSerial)
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("equipment %d: %w", e.ID, apperr.ErrNotFound)
	}
	return nil
}

func (r *Repository) GetEquipmentByID(ctx context.Context, id uint) (*ds.Equipment, error) {
	var e ds.Equipment
	err := r.db.WithContext(ctx).First(&e, id).Error
	if err != nil {
		return nil, notFound(err, "equipment %d", id)
	}
	return &e, nil
}

// GetEquipmentByIDs fails with ErrNotFound naming the first id that does not exist.
func (r *Repository) GetEquipmentByIDs(ctx context.Context, ids []uint) ([]ds.Equipment, error) {
	var found []ds.Equipment
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]ds.Equipment, len(found))
	for _, e := range found {
		byID[e.ID] = e
	}

	result := make([]ds.Equipment, 0, len(ids))
	for _, id := range ids {
		e, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("equipment %d: %w", id, apperr.ErrNotFound)
		}
		result = append(result, e)
	}
	return result, nil
}

// ListEquipment filters by status when one is given.
func (r *Repository) ListEquipment(ctx context.Context, status ds.EquipmentStatus) ([]ds.Equipment, error) {
	query := r.db.WithContext(ctx).Order("id")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var list []ds.Equipment
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
