package repository

import (
	"context"
	"fmt"
	"time"

	"custody/internal/app/apperr"
	"custody/internal/app/ds"

	"gorm.io/gorm/clause"
)

// ============ Terms ============

type TermFilter struct {
	SignerID *uint
	Status   ds.TermStatus
}

// SignatureRecord is everything the signature commit writes onto the term row.
type SignatureRecord struct {
	SignedAt    time.Time
	SentAt      time.Time
	IP          string
	UserAgent   string
	Hash        string
	HashVersion string
	Notes       string
}

var signable = []ds.TermStatus{ds.TermDraft, ds.TermSent}

// CreateTerm inserts a draft term plus one custody item per unit. Run it inside Transaction.
func (r *Repository) CreateTerm(ctx context.Context, term *ds.Term, equipmentIDs []uint, deliveredOn time.Time) error {
	term.Status = ds.TermDraft
	if err := r.db.WithContext(ctx).Omit("Signer", "Template", "Items").Create(term).Error; err != nil {
		return err
	}
	return r.createItems(ctx, term.ID, equipmentIDs, deliveredOn)
}

func (r *Repository) createItems(ctx context.Context, termID uint, equipmentIDs []uint, deliveredOn time.Time) error {
	items := make([]ds.CustodyItem, 0, len(equipmentIDs))
	for _, id := range equipmentIDs {
		items = append(items, ds.CustodyItem{
			TermID:            termID,
			EquipmentID:       id,
			DeliveredOn:       deliveredOn,
			DeliveryCondition: ds.DefaultDeliveryCondition,
		})
	}
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit("Equipment").Create(&items).Error
}

func (r *Repository) GetTermByToken(ctx context.Context, token string) (*ds.Term, error) {
	var term ds.Term
	err := r.db.WithContext(ctx).
		Preload("Signer").
		Preload("Template").
		Where("token = ?", token).
		First(&term).Error
	if err != nil {
		return nil, notFound(err, "term %s", token)
	}
	return &term, nil
}

// LockTermByToken reads the term row with SELECT ... FOR UPDATE. Concurrent commits on the
// same term queue here until the holder's transaction ends.
func (r *Repository) LockTermByToken(ctx context.Context, token string) (*ds.Term, error) {
	var term ds.Term
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("token = ?", token).
		First(&term).Error
	if err != nil {
		return nil, notFound(err, "term %s", token)
	}
	return &term, nil
}

func (r *Repository) ListTerms(ctx context.Context, filter TermFilter) ([]ds.Term, error) {
	query := r.db.WithContext(ctx).
		Preload("Signer").
		Preload("Template").
		Order("created_at DESC, id DESC")
	if filter.SignerID != nil {
		query = query.Where("signer_id = ?", *filter.SignerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var terms []ds.Term
	if err := query.Find(&terms).Error; err != nil {
		return nil, err
	}
	return terms, nil
}

// ListSignedWithoutArtifact feeds the re-render sweep. Terms never attempted come first by
// signature time; a failed attempt moves the term behind everything attempted earlier.
func (r *Repository) ListSignedWithoutArtifact(ctx context.Context, limit int) ([]ds.Term, error) {
	var terms []ds.Term
	err := r.db.WithContext(ctx).
		Where("status = ? AND (artifact_ref IS NULL OR artifact_ref = '')", ds.TermSigned).
		Order("COALESCE(render_attempted_at, signed_at), id").
		Limit(limit).
		Find(&terms).Error
	if err != nil {
		return nil, err
	}
	return terms, nil
}

// MarkSent moves a draft to ENVIADO. sent_at keeps its first value.
func (r *Repository) MarkSent(ctx context.Context, id uint, at time.Time) error {
	var term ds.Term
	if err := r.db.WithContext(ctx).Select("id", "sent_at").First(&term, id).Error; err != nil {
		return notFound(err, "term %d", id)
	}

	updates := map[string]interface{}{"status": ds.TermSent}
	if term.SentAt == nil {
		updates["sent_at"] = at
	}

	result := r.db.WithContext(ctx).Model(&ds.Term{}).
		Where("id = ? AND status = ?", id, ds.TermDraft).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("term %d is not a draft: %w", id, apperr.ErrInvalidTransition)
	}
	return nil
}

// CloseTerm moves a draft or sent term into a terminal non-signed status.
func (r *Repository) CloseTerm(ctx context.Context, id uint, status ds.TermStatus, notes string) error {
	if status != ds.TermDeclined && status != ds.TermCancelled {
		return fmt.Errorf("close term %d as %s: %w", id, status, apperr.ErrInvalidTransition)
	}

	result := r.db.WithContext(ctx).Model(&ds.Term{}).
		Where("id = ? AND status IN ?", id, signable).
		Updates(map[string]interface{}{
			"status": status,
			"notes":  notes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("term %d is already closed: %w", id, apperr.ErrInvalidTransition)
	}
	return nil
}

// MarkSigned writes the signature evidence. The status guard makes a second commit a no-op
// that reports ErrAlreadySigned.
func (r *Repository) MarkSigned(ctx context.Context, id uint, rec SignatureRecord) error {
	result := r.db.WithContext(ctx).Model(&ds.Term{}).
		Where("id = ? AND status IN ?", id, signable).
		Updates(map[string]interface{}{
			"status":               ds.TermSigned,
			"signed_at":            rec.SignedAt,
			"sent_at":              rec.SentAt,
			"signature_ip":         rec.IP,
			"signature_user_agent": rec.UserAgent,
			"signature_hash":       rec.Hash,
			"hash_version":         rec.HashVersion,
			"notes":                rec.Notes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("term %d: %w", id, apperr.ErrAlreadySigned)
	}
	return nil
}

// DraftChanges lists what an administrator may rewrite on a draft. Nil keeps the stored value.
type DraftChanges struct {
	SignerID   *uint
	TemplateID *uint
	Notes      *string
}

// UpdateDraft rewrites the administrative columns of a PENDENTE term. The evidence columns
// are not part of the update, and any other status reports ErrInvalidTransition.
func (r *Repository) UpdateDraft(ctx context.Context, id uint, changes DraftChanges, at time.Time) error {
	updates := map[string]interface{}{"updated_at": at}
	if changes.SignerID != nil {
		updates["signer_id"] = *changes.SignerID
	}
	if changes.TemplateID != nil {
		updates["template_id"] = *changes.TemplateID
	}
	if changes.Notes != nil {
		updates["notes"] = *changes.Notes
	}

	result := r.db.WithContext(ctx).Model(&ds.Term{}).
		Where("id = ? AND status = ?", id, ds.TermDraft).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("term %d is not a draft: %w", id, apperr.ErrInvalidTransition)
	}
	return nil
}

// ReplaceItems swaps the custody items of a draft for one new item per unit.
func (r *Repository) ReplaceItems(ctx context.Context, termID uint, equipmentIDs []uint, deliveredOn time.Time) error {
	if err := r.db.WithContext(ctx).Where("term_id = ?", termID).Delete(&ds.CustodyItem{}).Error; err != nil {
		return err
	}
	return r.createItems(ctx, termID, equipmentIDs, deliveredOn)
}

func (r *Repository) SetNotes(ctx context.Context, id uint, notes string) error {
	return r.db.WithContext(ctx).Model(&ds.Term{}).
		Where("id = ?", id).
		Update("notes", notes).Error
}

func (r *Repository) MarkRenderAttempt(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&ds.Term{}).
		Where("id = ?", id).
		UpdateColumn("render_attempted_at", at).Error
}

func (r *Repository) SetArtifactRef(ctx context.Context, id uint, ref string) error {
	result := r.db.WithContext(ctx).Model(&ds.Term{}).
		Where("id = ?", id).
		Update("artifact_ref", ref)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("term %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}
