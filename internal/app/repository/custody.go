package repository

import (
	"context"
	"fmt"
	"time"

	"custody/internal/app/apperr"
	"custody/internal/app/ds"
)

// ============ Custody ledger ============

// ItemsFor returns the term's custody items in creation order, each carrying its equipment.
func (r *Repository) ItemsFor(ctx context.Context, termID uint) ([]ds.CustodyItem, error) {
	var items []ds.CustodyItem
	err := r.db.WithContext(ctx).
		Preload("Equipment").
		Where("term_id = ?", termID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// RecordDelivery overwrites the condition-at-delivery of one item.
func (r *Repository) RecordDelivery(ctx context.Context, termID, equipmentID uint, condition string) error {
	result := r.db.WithContext(ctx).Model(&ds.CustodyItem{}).
		Where("term_id = ? AND equipment_id = ?", termID, equipmentID).
		Update("delivery_condition", condition)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("custody item term=%d equipment=%d: %w", termID, equipmentID, apperr.ErrNotFound)
	}
	return nil
}

// AssignCustody binds the unit to the signer and marks it in use.
func (r *Repository) AssignCustody(ctx context.Context, equipmentID, signerID uint) error {
	result := r.db.WithContext(ctx).Model(&ds.Equipment{}).
		Where("id = ?", equipmentID).
		Updates(map[string]interface{}{
			"holder_id": signerID,
			"status":    ds.EquipmentInUse,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("equipment %d: %w", equipmentID, apperr.ErrNotFound)
	}
	return nil
}

// ReturnItem closes one item: return date and condition are written once, and the unit is
// released back to the pool.
func (r *Repository) ReturnItem(ctx context.Context, termID, equipmentID uint, condition string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&ds.CustodyItem{}).
		Where("term_id = ? AND equipment_id = ? AND returned_on IS NULL", termID, equipmentID).
		Updates(map[string]interface{}{
			"returned_on":      at,
			"return_condition": condition,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&ds.CustodyItem{}).
			Where("term_id = ? AND equipment_id = ?", termID, equipmentID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("custody item term=%d equipment=%d: %w", termID, equipmentID, apperr.ErrNotFound)
		}
		return fmt.Errorf("equipment %d already returned: %w", equipmentID, apperr.ErrInvalidTransition)
	}

	return r.db.WithContext(ctx).Model(&ds.Equipment{}).
		Where("id = ?", equipmentID).
		Updates(map[string]interface{}{
			"holder_id": nil,
			"status":    ds.EquipmentAvailable,
		}).Error
}
