package service

import (
	"context"
	"fmt"
	"strings"

	"custody/internal/app/apperr"
	"custody/internal/app/ds"
	"custody/internal/app/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ============ Term administration ============

type DraftRequest struct {
	SignerID     uint
	TemplateID   uint
	EquipmentIDs []uint
	Notes        string
}

// CreateDraft opens a term with one custody item per unit, delivered now in condition "Novo".
func (s *Service) CreateDraft(ctx context.Context, req DraftRequest) (*ds.Term, error) {
	ids := uniqueIDs(req.EquipmentIDs)
	if len(ids) == 0 {
		return nil, apperr.Required("equipment_ids")
	}

	if _, err := s.repo.GetUserByID(ctx, req.SignerID); err != nil {
		return nil, err
	}
	if err := checkTemplate(ctx, s.repo, req.TemplateID); err != nil {
		return nil, err
	}
	if err := checkUnits(ctx, s.repo, ids); err != nil {
		return nil, err
	}

	term := &ds.Term{
		Token:      uuid.NewString(),
		SignerID:   req.SignerID,
		TemplateID: req.TemplateID,
		Notes:      strings.TrimSpace(req.Notes),
	}
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		return tx.CreateTerm(ctx, term, ids, s.now())
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"term": term.Token, "signer": req.SignerID, "units": len(ids)}).Info("term drafted")
	return s.repo.GetTermByToken(ctx, term.Token)
}

// DraftUpdate carries the edits to a draft. Nil fields keep their value; a non-nil
// EquipmentIDs replaces the custody items.
type DraftUpdate struct {
	SignerID     *uint
	TemplateID   *uint
	EquipmentIDs []uint
	Notes        *string
}

// UpdateDraft edits a term that was not sent yet. Sent and closed terms are frozen.
func (s *Service) UpdateDraft(ctx context.Context, token string, req DraftUpdate) (*ds.Term, error) {
	var ids []uint
	if req.EquipmentIDs != nil {
		if ids = uniqueIDs(req.EquipmentIDs); len(ids) == 0 {
			return nil, apperr.Required("equipment_ids")
		}
	}

	changes := repository.DraftChanges{SignerID: req.SignerID, TemplateID: req.TemplateID}
	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		changes.Notes = &notes
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		term, err := tx.LockTermByToken(ctx, token)
		if err != nil {
			return err
		}
		if term.Status != ds.TermDraft {
			return fmt.Errorf("term %s is %s: %w", token, term.Status, apperr.ErrInvalidTransition)
		}

		if req.SignerID != nil {
			if _, err := tx.GetUserByID(ctx, *req.SignerID); err != nil {
				return err
			}
		}
		if req.TemplateID != nil && *req.TemplateID != term.TemplateID {
			if err := checkTemplate(ctx, tx, *req.TemplateID); err != nil {
				return err
			}
		}

		if err := tx.UpdateDraft(ctx, term.ID, changes, s.now()); err != nil {
			return err
		}
		if ids == nil {
			return nil
		}
		if err := checkUnits(ctx, tx, ids); err != nil {
			return err
		}
		return tx.ReplaceItems(ctx, term.ID, ids, s.now())
	})
	if err != nil {
		return nil, err
	}

	s.log.WithField("term", token).Info("draft updated")
	return s.detail(ctx, token, nil)
}

func checkTemplate(ctx context.Context, repo *repository.Repository, id uint) error {
	tpl, err := repo.GetTemplateByID(ctx, id)
	if err != nil {
		return err
	}
	if !tpl.Active {
		return &apperr.ValidationError{Field: "template_id", Reason: "template is not active"}
	}
	return nil
}

func checkUnits(ctx context.Context, repo *repository.Repository, ids []uint) error {
	units, err := repo.GetEquipmentByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, u := range units {
		if u.Status == ds.EquipmentInactive {
			return &apperr.ValidationError{Field: "equipment_ids", Reason: fmt.Sprintf("equipment %s is inactive", u.SerialNumber)}
		}
	}
	return nil
}

func (s *Service) Send(ctx context.Context, token string) (*ds.Term, error) {
	term, err := s.repo.GetTermByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.repo.MarkSent(ctx, term.ID, s.now()); err != nil {
		return nil, err
	}
	s.log.WithField("term", token).Info("term sent")
	return s.repo.GetTermByToken(ctx, token)
}

func (s *Service) Cancel(ctx context.Context, token, reason string) (*ds.Term, error) {
	return s.close(ctx, token, ds.TermCancelled, "Cancelado", reason, nil)
}

// Decline is reserved to the bound signer.
func (s *Service) Decline(ctx context.Context, token string, actor Actor, reason string) (*ds.Term, error) {
	return s.close(ctx, token, ds.TermDeclined, "Recusado", reason, &actor)
}

func (s *Service) close(ctx context.Context, token string, status ds.TermStatus, label, reason string, signer *Actor) (*ds.Term, error) {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		term, err := tx.LockTermByToken(ctx, token)
		if err != nil {
			return err
		}
		if signer != nil && term.SignerID != signer.UserID {
			return fmt.Errorf("user %d on term %s: %w", signer.UserID, token, apperr.ErrPermission)
		}

		note := fmt.Sprintf("[%s] %s", s.renderer.Formatter().DateTime(s.now()), label)
		if reason = strings.TrimSpace(reason); reason != "" {
			note += ": " + reason
		}
		return tx.CloseTerm(ctx, term.ID, status, appendNote(term.Notes, note))
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"term": token, "status": status}).Info("term closed")
	return s.repo.GetTermByToken(ctx, token)
}

// AppendNote adds an administrative note. Notes are never rewritten.
func (s *Service) AppendNote(ctx context.Context, token, note string) (*ds.Term, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, apperr.Required("note")
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		term, err := tx.LockTermByToken(ctx, token)
		if err != nil {
			return err
		}
		stamped := fmt.Sprintf("[%s] %s", s.renderer.Formatter().DateTime(s.now()), note)
		return tx.SetNotes(ctx, term.ID, appendNote(term.Notes, stamped))
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetTermByToken(ctx, token)
}

// ReturnEquipment closes the custody of one unit of a signed term and releases the unit.
func (s *Service) ReturnEquipment(ctx context.Context, token string, equipmentID uint, condition string) (*ds.Term, error) {
	condition = strings.TrimSpace(condition)
	if condition == "" {
		return nil, apperr.Required("condition")
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		term, err := tx.LockTermByToken(ctx, token)
		if err != nil {
			return err
		}
		if !term.IsSigned() {
			return fmt.Errorf("term %s is %s: %w", token, term.Status, apperr.ErrInvalidTransition)
		}
		return tx.ReturnItem(ctx, term.ID, equipmentID, condition, s.now())
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"term": token, "equipment": equipmentID}).Info("equipment returned")
	return s.detail(ctx, token, nil)
}

// List returns every term to administrators and only their own to employees.
func (s *Service) List(ctx context.Context, actor Actor, status ds.TermStatus) ([]ds.Term, error) {
	if status != "" && !status.Valid() {
		return nil, &apperr.ValidationError{Field: "status", Reason: "unknown status"}
	}

	filter := repository.TermFilter{Status: status}
	if !actor.IsAdmin() {
		filter.SignerID = &actor.UserID
	}
	return s.repo.ListTerms(ctx, filter)
}

// Get loads a term with its custody items.
func (s *Service) Get(ctx context.Context, token string, actor Actor) (*ds.Term, error) {
	return s.detail(ctx, token, &actor)
}

func (s *Service) detail(ctx context.Context, token string, actor *Actor) (*ds.Term, error) {
	term, err := s.repo.GetTermByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if actor != nil && !canAccess(term, *actor) {
		return nil, fmt.Errorf("user %d on term %s: %w", actor.UserID, token, apperr.ErrPermission)
	}

	items, err := s.repo.ItemsFor(ctx, term.ID)
	if err != nil {
		return nil, err
	}
	term.Items = items
	return term, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
